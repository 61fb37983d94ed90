package booking

import (
	"context"
	"strings"

	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/models"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

// ======================================================
// CUSTOMER
// ======================================================

type ListCustomerBookings struct {
	repo domain.Repository
}

func NewListCustomerBookings(repo domain.Repository) *ListCustomerBookings {
	return &ListCustomerBookings{repo: repo}
}

// Execute returns bookings made while logged in plus guest bookings made
// with the account's email. A booking matching both appears once.
func (uc *ListCustomerBookings) Execute(
	ctx context.Context,
	customerID uint,
	email string,
) ([]models.Booking, error) {

	byAccount, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var byEmail []models.Booking
	if email = strings.TrimSpace(email); email != "" {
		byEmail, err = uc.repo.ListByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
	}

	seen := make(map[uint]struct{}, len(byAccount)+len(byEmail))
	out := make([]models.Booking, 0, len(byAccount)+len(byEmail))
	for _, group := range [][]models.Booking{byAccount, byEmail} {
		for _, b := range group {
			if _, dup := seen[b.ID]; dup {
				continue
			}
			seen[b.ID] = struct{}{}
			out = append(out, b)
		}
	}

	newestFirst(out)
	return out, nil
}

// ======================================================
// ADMIN
// ======================================================

type ListBookingsInput struct {
	Status string
	Date   string
	Email  string
	Page   int
	Limit  int
}

type ListBookingsResult struct {
	Items []models.Booking `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

func (uc *ListBookings) Execute(
	ctx context.Context,
	in ListBookingsInput,
) (*ListBookingsResult, error) {

	page := in.Page
	if page <= 0 {
		page = 1
	}
	limit := in.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	filter := domain.ListFilter{
		Email:  strings.TrimSpace(in.Email),
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if in.Status != "" {
		st, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = &st
	}
	if in.Date != "" {
		d, err := timezone.ParseDate(in.Date)
		if err != nil {
			return nil, errInvalidDate
		}
		filter.Date = timezone.FormatDate(d)
	}

	items, total, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Booking{}
	}

	return &ListBookingsResult{Items: items, Total: total, Page: page, Limit: limit}, nil
}
