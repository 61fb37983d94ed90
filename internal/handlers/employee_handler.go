package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	"github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/domain/employee"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/httpresp"
	"github.com/thanFreecss/celebrity-salon/internal/infra/repository"
	"github.com/thanFreecss/celebrity-salon/internal/models"
	ucEmployee "github.com/thanFreecss/celebrity-salon/internal/usecase/employee"
	"github.com/thanFreecss/celebrity-salon/internal/validators"
)

var errEmployeeCodeTaken = httperr.Conflict("employee_code_taken", "Another employee already uses this code.")

type EmployeeHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	addLeave *ucEmployee.AddLeaveDates
	rmLeave  *ucEmployee.RemoveLeaveDates
}

func NewEmployeeHandler(
	db *gorm.DB,
	audit *audit.Dispatcher,
	addLeave *ucEmployee.AddLeaveDates,
	rmLeave *ucEmployee.RemoveLeaveDates,
) *EmployeeHandler {
	return &EmployeeHandler{db: db, audit: audit, addLeave: addLeave, rmLeave: rmLeave}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	Name         string   `json:"name" binding:"required,max=100"`
	EmployeeCode string   `json:"employeeCode" binding:"required,max=20"`
	Email        string   `json:"email" binding:"omitempty,email"`
	Phone        string   `json:"phone"`
	Position     string   `json:"position" binding:"required"`
	Specialties  []string `json:"specialties"`
	WorkStart    string   `json:"workStart"`
	WorkEnd      string   `json:"workEnd"`
}

type UpdateEmployeeRequest struct {
	Name        *string   `json:"name,omitempty"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	Position    *string   `json:"position,omitempty"`
	Specialties *[]string `json:"specialties,omitempty"`
	IsActive    *bool     `json:"isActive,omitempty"`
	WorkStart   *string   `json:"workStart,omitempty"`
	WorkEnd     *string   `json:"workEnd,omitempty"`
}

type LeaveDatesRequest struct {
	LeaveDates []string `json:"leaveDates" binding:"required"`
}

// --------- Helpers ---------

func (h *EmployeeHandler) load(c *gin.Context) (*models.Employee, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}
	var emp models.Employee
	if err := h.db.WithContext(c.Request.Context()).First(&emp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, employee.ErrEmployeeNotFound)
			return nil, false
		}
		httperr.Respond(c, httperr.Unavailable("storage_unavailable", err))
		return nil, false
	}
	return &emp, true
}

// validateEmployee checks the profile rules shared by create and update.
func validateEmployee(emp *models.Employee) error {
	fields := map[string]string{}

	if !booking.IsValidPosition(emp.Position) {
		fields["position"] = "must be one of " + strings.Join(booking.Positions(), ", ")
	} else {
		for _, s := range emp.Specialties {
			if !booking.PositionAllows(emp.Position, s) {
				fields["specialties"] = s + " is not offered by a " + emp.Position
				break
			}
		}
	}
	if emp.Email != "" && !validators.IsEmail(emp.Email) {
		fields["email"] = "must be a valid email"
	}
	if emp.WorkStart != "" && !validators.IsClock(emp.WorkStart) {
		fields["workStart"] = "must be HH:MM"
	}
	if emp.WorkEnd != "" && !validators.IsClock(emp.WorkEnd) {
		fields["workEnd"] = "must be HH:MM"
	}
	if emp.WorkStart != "" && emp.WorkEnd != "" && emp.WorkStart >= emp.WorkEnd {
		fields["workEnd"] = "must be after workStart"
	}

	if len(fields) > 0 {
		return httperr.Validation("invalid_employee", "Please correct the highlighted fields.", fields)
	}
	return nil
}

func (h *EmployeeHandler) record(c *gin.Context, action string, emp *models.Employee) {
	id := int64(emp.ID)
	h.audit.Dispatch(audit.Event{
		ActorID:  actorIDFrom(c),
		Action:   action,
		Entity:   "employee",
		EntityID: &id,
	})
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context())

	switch c.DefaultQuery("active", "true") {
	case "true":
		q = q.Where("is_active = ?", true)
	case "false":
		q = q.Where("is_active = ?", false)
	}
	if position := strings.TrimSpace(c.Query("position")); position != "" {
		q = q.Where("position = ?", position)
	}

	var employees []models.Employee
	if err := q.Order("name ASC").Find(&employees).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("storage_unavailable", err))
		return
	}

	httpresp.List(c, employees)
}

func (h *EmployeeHandler) Get(c *gin.Context) {
	emp, ok := h.load(c)
	if !ok {
		return
	}
	httpresp.OK(c, emp)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}

	emp := models.Employee{
		Name:         strings.TrimSpace(req.Name),
		EmployeeCode: strings.ToUpper(strings.TrimSpace(req.EmployeeCode)),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		Position:     strings.TrimSpace(req.Position),
		Specialties:  datatypes.JSONSlice[string](req.Specialties),
		IsActive:     true,
		WorkStart:    req.WorkStart,
		WorkEnd:      req.WorkEnd,
		LeaveDates:   datatypes.JSONSlice[string]{},
	}
	if emp.Specialties == nil {
		emp.Specialties = datatypes.JSONSlice[string]{}
	}
	if err := validateEmployee(&emp); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&emp).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			httperr.Respond(c, errEmployeeCodeTaken)
			return
		}
		httperr.Respond(c, httperr.Unavailable("storage_unavailable", err))
		return
	}

	h.record(c, "employee_created", &emp)
	c.JSON(http.StatusCreated, emp)
}

// Update never touches leave dates; those go through the leave endpoints.
func (h *EmployeeHandler) Update(c *gin.Context) {
	emp, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}

	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		emp.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		emp.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Position != nil {
		emp.Position = strings.TrimSpace(*req.Position)
	}
	if req.Specialties != nil {
		emp.Specialties = datatypes.JSONSlice[string](*req.Specialties)
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}
	if req.WorkStart != nil {
		emp.WorkStart = *req.WorkStart
	}
	if req.WorkEnd != nil {
		emp.WorkEnd = *req.WorkEnd
	}
	if emp.Name == "" {
		httperr.Respond(c, httperr.Validation("invalid_employee", "Please correct the highlighted fields.",
			map[string]string{"name": "is required"}))
		return
	}
	if err := validateEmployee(emp); err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(emp).
		Select("name", "email", "phone", "position", "specialties", "is_active", "work_start", "work_end").
		Updates(emp).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("storage_unavailable", err))
		return
	}

	h.record(c, "employee_updated", emp)
	httpresp.OK(c, emp)
}

// Deactivate keeps the row so existing bookings still name the employee.
func (h *EmployeeHandler) Deactivate(c *gin.Context) {
	emp, ok := h.load(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Model(emp).
		Update("is_active", false).Error; err != nil {
		httperr.Respond(c, httperr.Unavailable("storage_unavailable", err))
		return
	}
	emp.IsActive = false

	h.record(c, "employee_deactivated", emp)
	httpresp.OK(c, emp)
}

// --------- Leave dates ---------

func (h *EmployeeHandler) AddLeaveDates(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req LeaveDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}

	res, err := h.addLeave.Execute(c.Request.Context(), id, req.LeaveDates, actorIDFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}

func (h *EmployeeHandler) RemoveLeaveDates(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var req LeaveDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Respond(c, httperr.FromBinding(err))
		return
	}

	res, err := h.rmLeave.Execute(c.Request.Context(), id, req.LeaveDates, actorIDFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}
	httpresp.OK(c, res)
}
