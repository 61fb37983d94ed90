package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/httpresp"
	"github.com/thanFreecss/celebrity-salon/internal/middleware"
	ucBooking "github.com/thanFreecss/celebrity-salon/internal/usecase/booking"
)

type AdminBookingHandler struct {
	listUC   *ucBooking.ListBookings
	statusUC *ucBooking.UpdateBookingStatus
	purgeUC  *ucBooking.PurgeBooking
	statsUC  *ucBooking.GetStats
}

func NewAdminBookingHandler(
	listUC *ucBooking.ListBookings,
	statusUC *ucBooking.UpdateBookingStatus,
	purgeUC *ucBooking.PurgeBooking,
	statsUC *ucBooking.GetStats,
) *AdminBookingHandler {
	return &AdminBookingHandler{
		listUC:   listUC,
		statusUC: statusUC,
		purgeUC:  purgeUC,
		statsUC:  statsUC,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminBookingHandler) List(c *gin.Context) {
	res, err := h.listUC.Execute(c.Request.Context(), ucBooking.ListBookingsInput{
		Status: c.Query("status"),
		Date:   c.Query("date"),
		Email:  c.Query("email"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", 50),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, res.Items, res.Total, res.Page, res.Limit)
}

func (h *AdminBookingHandler) UpdateStatus(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}
	actor, _ := middleware.ActorFrom(c)

	res, err := h.statusUC.Execute(c.Request.Context(), id, req.Status, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *AdminBookingHandler) Delete(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.ActorFrom(c)

	if err := h.purgeUC.Execute(c.Request.Context(), id, actor); err != nil {
		httperr.Respond(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AdminBookingHandler) Stats(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, stats)
}
