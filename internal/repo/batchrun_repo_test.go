package repo

import (
	"context"
	"testing"
	"time"

	"github.com/forborealis/mindful-map-backend/internal/domain"
)

func TestCreateBatchRun(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	run := &domain.BatchRun{
		Kind:          domain.BatchKindPredictions,
		WeekStartDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Total:         5,
		Succeeded:     4,
		Failed:        1,
		FailureDetail: "u3: history read timed out",
		Duration:      1200 * time.Millisecond,
	}
	if err := CreateBatchRun(ctx, db, run); err != nil {
		t.Fatalf("create: %v", err)
	}
	if run.ID == "" {
		t.Fatal("expected generated ID")
	}
	if run.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}
}

func TestListBatchRuns(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	week := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		run := &domain.BatchRun{
			Kind:          domain.BatchKindPredictions,
			WeekStartDate: week,
			Total:         i + 1,
			Succeeded:     i + 1,
		}
		if err := CreateBatchRun(ctx, db, run); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		time.Sleep(5 * time.Millisecond)
	}
	actuals := &domain.BatchRun{
		Kind:          domain.BatchKindActuals,
		WeekStartDate: week,
		Total:         2,
		Succeeded:     2,
	}
	if err := CreateBatchRun(ctx, db, actuals); err != nil {
		t.Fatalf("create actuals: %v", err)
	}

	runs, err := ListBatchRuns(ctx, db, domain.BatchKindPredictions, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 prediction runs, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Kind != domain.BatchKindPredictions {
			t.Fatalf("unexpected kind %q in filtered list", r.Kind)
		}
	}
	// Newest first.
	if runs[0].Total != 3 || runs[2].Total != 1 {
		t.Fatalf("expected newest-first ordering, got totals %d,%d,%d",
			runs[0].Total, runs[1].Total, runs[2].Total)
	}

	limited, err := ListBatchRuns(ctx, db, domain.BatchKindPredictions, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit to apply, got %d rows", len(limited))
	}
}
