package gallery

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	"github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/models"
)

var (
	ErrImageNotFound = httperr.NotFoundErr("gallery_image_not_found", "Gallery image not found.")
	errBadImage      = httperr.Validation("invalid_image", "Images must be JPEG, PNG or WebP.", nil)
)

type UploadInput struct {
	Title   string
	Service string
	Before  io.Reader
	After   io.Reader
	ActorID *uint
}

type Service struct {
	db    *gorm.DB
	store ObjectStore
	audit *audit.Dispatcher
}

func NewService(db *gorm.DB, store ObjectStore, audit *audit.Dispatcher) *Service {
	return &Service{db: db, store: store, audit: audit}
}

func (s *Service) List(ctx context.Context, service string) ([]models.GalleryImage, error) {
	q := s.db.WithContext(ctx).Order("created_at DESC")
	if service != "" {
		q = q.Where("service = ?", service)
	}
	out := []models.GalleryImage{}
	if err := q.Find(&out).Error; err != nil {
		return nil, httperr.Unavailable("storage_unavailable", err)
	}
	return out, nil
}

// Upload converts both images, stores them, then records the pair. Objects
// already stored are removed again when a later step fails.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*models.GalleryImage, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Service = strings.TrimSpace(in.Service)

	fields := map[string]string{}
	if in.Title == "" {
		fields["title"] = "is required"
	}
	if _, ok := booking.LookupService(in.Service); !ok {
		fields["service"] = "is not a service we offer"
	}
	if in.Before == nil {
		fields["before"] = "is required"
	}
	if in.After == nil {
		fields["after"] = "is required"
	}
	if len(fields) > 0 {
		return nil, httperr.Validation("invalid_gallery_upload", "Please correct the highlighted fields.", fields)
	}

	before, err := Process(in.Before)
	if err != nil {
		return nil, errBadImage
	}
	after, err := Process(in.After)
	if err != nil {
		return nil, errBadImage
	}

	id := uuid.NewString()
	img := &models.GalleryImage{
		Title:     in.Title,
		Service:   in.Service,
		BeforeKey: "gallery/" + id + "-before.webp",
		AfterKey:  "gallery/" + id + "-after.webp",
	}

	if img.BeforeURL, err = s.store.Put(ctx, img.BeforeKey, "image/webp", before); err != nil {
		return nil, httperr.Unavailable("object_store_unavailable", err)
	}
	if img.AfterURL, err = s.store.Put(ctx, img.AfterKey, "image/webp", after); err != nil {
		s.cleanup(ctx, img.BeforeKey)
		return nil, httperr.Unavailable("object_store_unavailable", err)
	}

	if err := s.db.WithContext(ctx).Create(img).Error; err != nil {
		s.cleanup(ctx, img.BeforeKey, img.AfterKey)
		return nil, httperr.Unavailable("storage_unavailable", err)
	}

	entityID := int64(img.ID)
	s.audit.Dispatch(audit.Event{
		ActorID:  in.ActorID,
		Action:   "gallery_image_added",
		Entity:   "gallery_image",
		EntityID: &entityID,
		Metadata: map[string]string{"service": img.Service},
	})

	return img, nil
}

func (s *Service) Delete(ctx context.Context, id uint, actorID *uint) error {
	var img models.GalleryImage
	if err := s.db.WithContext(ctx).First(&img, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrImageNotFound
		}
		return httperr.Unavailable("storage_unavailable", err)
	}

	if err := s.db.WithContext(ctx).Delete(&img).Error; err != nil {
		return httperr.Unavailable("storage_unavailable", err)
	}
	s.cleanup(ctx, img.BeforeKey, img.AfterKey)

	entityID := int64(img.ID)
	s.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "gallery_image_deleted",
		Entity:   "gallery_image",
		EntityID: &entityID,
	})
	return nil
}

func (s *Service) cleanup(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			log.WithError(err).WithField("key", key).Warn("orphaned gallery object")
		}
	}
}
