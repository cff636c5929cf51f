package services

import (
	"context"
	"fmt"
	"time"

	"rate/internal/core"
	"rate/internal/store"
)

// ScheduleService computes the payment timeline and summary figures from a
// consistent snapshot of both records. It is stateless; everything is derived
// on each call.
type ScheduleService struct {
	snapshots   store.SnapshotReader
	creditLimit core.Money
	now         func() time.Time
}

func NewScheduleService(snapshots store.SnapshotReader, creditLimit core.Money) *ScheduleService {
	return &ScheduleService{
		snapshots:   snapshots,
		creditLimit: creditLimit,
		now:         time.Now,
	}
}

// ScheduleView bundles the timeline with its summary so both come from the
// same snapshot.
type ScheduleView struct {
	Rows    []core.ScheduleRow `json:"schedule"`
	Summary core.Summary       `json:"summary"`
}

// BuildSchedule projects the full timeline and summary for the current state.
func (s *ScheduleService) BuildSchedule(ctx context.Context) (ScheduleView, error) {
	purchases, ledger, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return ScheduleView{}, fmt.Errorf("read snapshot: %w", err)
	}

	return ScheduleView{
		Rows:    core.BuildSchedule(purchases, ledger, s.now()),
		Summary: core.Summarize(purchases, ledger, s.creditLimit),
	}, nil
}
