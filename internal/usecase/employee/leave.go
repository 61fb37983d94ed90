package employee

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/thanFreecss/celebrity-salon/internal/audit"
	domain "github.com/thanFreecss/celebrity-salon/internal/domain/employee"
	"github.com/thanFreecss/celebrity-salon/internal/httperr"
	"github.com/thanFreecss/celebrity-salon/internal/metrics"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

// maxWriteAttempts bounds the read-evaluate-write loop when another writer
// bumps the employee version in between.
const maxWriteAttempts = 3

type AddLeaveResult struct {
	AddedCount    int                `json:"addedCount"`
	RejectedCount int                `json:"rejectedCount"`
	Added         []string           `json:"added"`
	Rejected      []domain.Rejection `json:"rejected"`
	LeaveDates    []string           `json:"leaveDates"`
}

type RemoveLeaveResult struct {
	RemovedCount int      `json:"removedCount"`
	LeaveDates   []string `json:"leaveDates"`
}

var errNoDates = httperr.Validation(
	"leave_dates_required",
	"Provide at least one leave date.",
	map[string]string{"leaveDates": "is required"},
)

// ======================================================
// ADD
// ======================================================

type AddLeaveDates struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	clock    timezone.Clock
	loc      *time.Location
	leadDays int
}

func NewAddLeaveDates(
	repo domain.Repository,
	audit *audit.Dispatcher,
	clock timezone.Clock,
	loc *time.Location,
	leadDays int,
) *AddLeaveDates {
	if leadDays <= 0 {
		leadDays = domain.DefaultLeadDays
	}
	return &AddLeaveDates{
		repo:     repo,
		audit:    audit,
		clock:    clock,
		loc:      loc,
		leadDays: leadDays,
	}
}

func (uc *AddLeaveDates) Execute(
	ctx context.Context,
	employeeID uint,
	dates []string,
	actorID *uint,
) (*AddLeaveResult, error) {

	if len(dates) == 0 {
		return nil, errNoDates
	}
	today := timezone.Today(uc.clock(), uc.loc)

	for attempt := 1; ; attempt++ {
		emp, err := uc.repo.GetEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}

		ev := domain.EvaluateLeave(emp.LeaveDates, dates, today, uc.leadDays)
		if len(ev.Accepted) == 0 {
			metrics.LeaveDates.WithLabelValues("rejected").Add(float64(len(ev.Rejected)))
			return nil, rejectAll(ev.Rejected)
		}

		err = uc.repo.ReplaceLeaveDates(ctx, emp.ID, emp.Version, ev.Merged)
		if errors.Is(err, domain.ErrStaleVersion) {
			if attempt >= maxWriteAttempts {
				return nil, domain.ErrConcurrentEdit
			}
			logrus.WithFields(logrus.Fields{
				"employee_id": employeeID,
				"attempt":     attempt,
			}).Debug("leave dates changed underneath, retrying")
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.LeaveDates.WithLabelValues("accepted").Add(float64(len(ev.Accepted)))
		metrics.LeaveDates.WithLabelValues("rejected").Add(float64(len(ev.Rejected)))

		id := int64(emp.ID)
		uc.audit.Dispatch(audit.Event{
			ActorID:  actorID,
			Action:   "employee_leave_added",
			Entity:   "employee",
			EntityID: &id,
			Metadata: map[string]any{"added": ev.Accepted, "rejected": ev.Rejected},
		})

		rejected := ev.Rejected
		if rejected == nil {
			rejected = []domain.Rejection{}
		}
		return &AddLeaveResult{
			AddedCount:    len(ev.Accepted),
			RejectedCount: len(rejected),
			Added:         ev.Accepted,
			Rejected:      rejected,
			LeaveDates:    ev.Merged,
		}, nil
	}
}

// rejectAll turns a fully rejected request into one error. Clashing with
// existing leave is a conflict; anything else is bad input.
func rejectAll(rejected []domain.Rejection) error {
	details := map[string]any{"rejected": rejected}
	for _, r := range rejected {
		if r.IsConflict() {
			return httperr.WithDetails(
				httperr.Conflict("leave_dates_conflict", "None of the leave dates could be added."),
				details,
			)
		}
	}
	return httperr.WithDetails(
		httperr.Validation("leave_dates_invalid", "None of the leave dates could be added.", nil),
		details,
	)
}

// ======================================================
// REMOVE
// ======================================================

type RemoveLeaveDates struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRemoveLeaveDates(repo domain.Repository, audit *audit.Dispatcher) *RemoveLeaveDates {
	return &RemoveLeaveDates{repo: repo, audit: audit}
}

func (uc *RemoveLeaveDates) Execute(
	ctx context.Context,
	employeeID uint,
	dates []string,
	actorID *uint,
) (*RemoveLeaveResult, error) {

	if len(dates) == 0 {
		return nil, errNoDates
	}

	for attempt := 1; ; attempt++ {
		emp, err := uc.repo.GetEmployee(ctx, employeeID)
		if err != nil {
			return nil, err
		}

		kept, removed := domain.RemoveLeave(emp.LeaveDates, dates)
		if removed == 0 {
			return &RemoveLeaveResult{RemovedCount: 0, LeaveDates: kept}, nil
		}

		err = uc.repo.ReplaceLeaveDates(ctx, emp.ID, emp.Version, kept)
		if errors.Is(err, domain.ErrStaleVersion) {
			if attempt >= maxWriteAttempts {
				return nil, domain.ErrConcurrentEdit
			}
			continue
		}
		if err != nil {
			return nil, err
		}

		id := int64(emp.ID)
		uc.audit.Dispatch(audit.Event{
			ActorID:  actorID,
			Action:   "employee_leave_removed",
			Entity:   "employee",
			EntityID: &id,
			Metadata: map[string]any{"dates": dates, "removed": removed},
		})

		return &RemoveLeaveResult{RemovedCount: removed, LeaveDates: kept}, nil
	}
}
