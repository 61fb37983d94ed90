package booking

import (
	"context"
	"time"

	domain "github.com/thanFreecss/celebrity-salon/internal/domain/booking"
	"github.com/thanFreecss/celebrity-salon/internal/timezone"
)

type Stats struct {
	Total    int64                   `json:"total"`
	ByStatus map[domain.Status]int64 `json:"byStatus"`
	Today    int64                   `json:"today"`
	Date     string                  `json:"date"`
}

type GetStats struct {
	repo  domain.Repository
	clock timezone.Clock
	loc   *time.Location
}

func NewGetStats(repo domain.Repository, clock timezone.Clock, loc *time.Location) *GetStats {
	return &GetStats{repo: repo, clock: clock, loc: loc}
}

func (uc *GetStats) Execute(ctx context.Context) (*Stats, error) {
	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	var total int64
	for _, n := range counts {
		total += n
	}

	today := timezone.FormatDate(timezone.Today(uc.clock(), uc.loc))
	_, todayTotal, err := uc.repo.List(ctx, domain.ListFilter{Date: today, Limit: 1})
	if err != nil {
		return nil, err
	}

	return &Stats{
		Total:    total,
		ByStatus: counts,
		Today:    todayTotal,
		Date:     today,
	}, nil
}
