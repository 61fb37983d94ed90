package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/dto"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/httpresp"
	"github.com/thanFreecss/celebrity-salon/internal/middleware"
	ucBooking "github.com/thanFreecss/celebrity-salon/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC       *ucBooking.CreateBooking
	cancelUC       *ucBooking.CancelBooking
	rescheduleUC   *ucBooking.RescheduleBooking
	listMineUC     *ucBooking.ListCustomerBookings
	availabilityUC *ucBooking.GetAvailability
}

func NewBookingHandler(
	createUC *ucBooking.CreateBooking,
	cancelUC *ucBooking.CancelBooking,
	rescheduleUC *ucBooking.RescheduleBooking,
	listMineUC *ucBooking.ListCustomerBookings,
	availabilityUC *ucBooking.GetAvailability,
) *BookingHandler {
	return &BookingHandler{
		createUC:       createUC,
		cancelUC:       cancelUC,
		rescheduleUC:   rescheduleUC,
		listMineUC:     listMineUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// Field checks live in the use case so every rule reports per field.
type CreateBookingRequest struct {
	FullName         string `json:"fullName"`
	MobileNumber     string `json:"mobileNumber"`
	Email            string `json:"email"`
	Service          string `json:"service"`
	SelectedEmployee string `json:"selectedEmployee"`
	AppointmentDate  string `json:"appointmentDate"`
	SelectedTime     string `json:"selectedTime"`
	ClientNotes      string `json:"clientNotes"`
}

type RescheduleRequest struct {
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	SelectedTime    string `json:"selectedTime" binding:"required"`
}

// ======================================================
// CATALOG / AVAILABILITY
// ======================================================

func (h *BookingHandler) Services(c *gin.Context) {
	services := booking.Catalog()
	if category := c.Query("category"); category != "" {
		filtered := services[:0]
		for _, s := range services {
			if s.Category == category {
				filtered = append(filtered, s)
			}
		}
		services = filtered
	}
	httpresp.List(c, services)
}

func (h *BookingHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	slots, err := h.availabilityUC.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}

	in := ucBooking.CreateBookingInput{
		FullName:        req.FullName,
		MobileNumber:    req.MobileNumber,
		Email:           req.Email,
		Service:         req.Service,
		Employee:        req.SelectedEmployee,
		AppointmentDate: req.AppointmentDate,
		SelectedTime:    req.SelectedTime,
		ClientNotes:     req.ClientNotes,
	}
	if actor, ok := middleware.ActorFrom(c); ok {
		id := actor.UserID
		in.CustomerID = &id
	}

	b, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, b)
}

// ======================================================
// CUSTOMER SELF-SERVICE
// ======================================================

func (h *BookingHandler) ListMine(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)

	items, err := h.listMineUC.Execute(c.Request.Context(), actor.UserID, actor.Email)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.BookingList(items))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}
	actor, _ := middleware.ActorFrom(c)

	res, err := h.cancelUC.Execute(c.Request.Context(), id, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *BookingHandler) Reschedule(c *gin.Context) {
	id, ok := int64Param(c, "id")
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}
	actor, _ := middleware.ActorFrom(c)

	b, err := h.rescheduleUC.Execute(c.Request.Context(), ucBooking.RescheduleInput{
		BookingID:       id,
		AppointmentDate: req.AppointmentDate,
		SelectedTime:    req.SelectedTime,
	}, actor)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, b)
}
