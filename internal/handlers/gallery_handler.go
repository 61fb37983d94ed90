package handlers

import (
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanFreecss/celebrity-salon/internal/gallery"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/httpresp"
)

type GalleryHandler struct {
	svc *gallery.Service
}

func NewGalleryHandler(svc *gallery.Service) *GalleryHandler {
	return &GalleryHandler{svc: svc}
}

func (h *GalleryHandler) List(c *gin.Context) {
	images, err := h.svc.List(c.Request.Context(), c.Query("service"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.List(c, images)
}

// Upload takes a multipart form with "before" and "after" image files plus
// "title" and "service" fields.
func (h *GalleryHandler) Upload(c *gin.Context) {
	before, closeBefore := formFile(c, "before")
	defer closeBefore()
	after, closeAfter := formFile(c, "after")
	defer closeAfter()

	img, err := h.svc.Upload(c.Request.Context(), gallery.UploadInput{
		Title:   c.PostForm("title"),
		Service: c.PostForm("service"),
		Before:  before,
		After:   after,
		ActorID: actorIDFrom(c),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, img)
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id, actorIDFrom(c)); err != nil {
		httperr.Respond(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// formFile returns a nil reader when the part is missing.
func formFile(c *gin.Context, name string) (io.Reader, func()) {
	fh, err := c.FormFile(name)
	if err != nil {
		return nil, func() {}
	}
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}
	}
	return f, func() { closeFile(f) }
}

func closeFile(f multipart.File) { _ = f.Close() }
