package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/medgear/medgear_api/internal/models"
)

type fakeVisitStore struct {
	visits    []models.Visit
	insertErr error
	readErr   error
}

func (f *fakeVisitStore) Insert(v *models.Visit) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	v.ID = len(f.visits) + 1
	f.visits = append(f.visits, *v)
	return nil
}

func (f *fakeVisitStore) CountDistinctVisitors() (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	seen := map[string]bool{}
	for _, v := range f.visits {
		seen[v.VisitorID] = true
	}
	return len(seen), nil
}

func (f *fakeVisitStore) CountAll() (int, error) {
	if f.readErr != nil {
		return 0, f.readErr
	}
	return len(f.visits), nil
}

func (f *fakeVisitStore) CountByPage() ([]models.PageViewCount, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	counts := map[string]int{}
	for _, v := range f.visits {
		counts[v.Page]++
	}
	var out []models.PageViewCount
	for page, n := range counts {
		out = append(out, models.PageViewCount{Page: page, Count: n})
	}
	return out, nil
}

func (f *fakeVisitStore) Recent(limit int) ([]models.Visit, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	n := len(f.visits)
	if n > limit {
		n = limit
	}
	out := make([]models.Visit, 0, n)
	for i := len(f.visits) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.visits[i])
	}
	return out, nil
}

func (f *fakeVisitStore) DailyCounts(since time.Time) (map[string]int, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	counts := map[string]int{}
	for _, v := range f.visits {
		if !v.CreatedAt.Before(since) {
			counts[v.CreatedAt.Format("2006-01-02")]++
		}
	}
	return counts, nil
}

func analyticsFixture(store *fakeVisitStore, now time.Time) *AnalyticsService {
	svc := NewAnalyticsService(store, nil, "/admin")
	svc.now = func() time.Time { return now }
	return svc
}

func TestRecordVisitSkipsAdminPages(t *testing.T) {
	store := &fakeVisitStore{}
	svc := analyticsFixture(store, time.Now())

	if got := svc.RecordVisit("v1", "/admin/orders", "agent"); got != VisitSkipped {
		t.Fatalf("admin page: got %q, want skipped", got)
	}
	if got := svc.RecordVisit("v1", "/admin", "agent"); got != VisitSkipped {
		t.Fatalf("admin root: got %q, want skipped", got)
	}
	if len(store.visits) != 0 {
		t.Fatalf("admin visits recorded: %d", len(store.visits))
	}

	if got := svc.RecordVisit("v1", "/products/3", "agent"); got != VisitRecorded {
		t.Fatalf("public page: got %q, want recorded", got)
	}
	if len(store.visits) != 1 {
		t.Fatalf("visit count = %d, want 1", len(store.visits))
	}
}

func TestRecordVisitSwallowsStorageFailure(t *testing.T) {
	store := &fakeVisitStore{insertErr: errors.New("connection refused")}
	svc := analyticsFixture(store, time.Now())

	if got := svc.RecordVisit("v1", "/products", "agent"); got != VisitFailed {
		t.Fatalf("got %q, want failed", got)
	}
}

func TestComputeStatsAggregation(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 0, 0, 0, time.UTC)
	store := &fakeVisitStore{visits: []models.Visit{
		{VisitorID: "a", Page: "/", CreatedAt: now},
		{VisitorID: "a", Page: "/products/1", CreatedAt: now},
		{VisitorID: "b", Page: "/", CreatedAt: now.AddDate(0, 0, -2)},
	}}
	svc := analyticsFixture(store, now)

	stats := svc.ComputeStats(context.Background())
	if !stats.Success {
		t.Fatal("expected success")
	}
	if stats.UniqueVisitorCount != 2 {
		t.Fatalf("unique = %d, want 2", stats.UniqueVisitorCount)
	}
	if stats.TotalPageViews != 3 {
		t.Fatalf("total = %d, want 3", stats.TotalPageViews)
	}
	if stats.PageViewsByPage["/"] != 2 || stats.PageViewsByPage["/products/1"] != 1 {
		t.Fatalf("per-page counts wrong: %v", stats.PageViewsByPage)
	}
}

func TestComputeStatsDailySeriesShape(t *testing.T) {
	now := time.Date(2026, 8, 31, 23, 59, 0, 0, time.UTC)
	store := &fakeVisitStore{visits: []models.Visit{
		{VisitorID: "a", Page: "/", CreatedAt: now},
		{VisitorID: "a", Page: "/", CreatedAt: now},
		{VisitorID: "b", Page: "/", CreatedAt: now.AddDate(0, 0, -6)},
		// Outside the 7-day window; must not appear.
		{VisitorID: "c", Page: "/", CreatedAt: now.AddDate(0, 0, -10)},
	}}
	svc := analyticsFixture(store, now)

	stats := svc.ComputeStats(context.Background())
	if len(stats.DailyVisits) != 7 {
		t.Fatalf("series length = %d, want 7", len(stats.DailyVisits))
	}
	if stats.DailyVisits[0].Date != "2026-08-25" {
		t.Fatalf("series start = %s, want 2026-08-25", stats.DailyVisits[0].Date)
	}
	if stats.DailyVisits[6].Date != "2026-08-31" {
		t.Fatalf("series end = %s, want 2026-08-31", stats.DailyVisits[6].Date)
	}
	for i := 1; i < len(stats.DailyVisits); i++ {
		if stats.DailyVisits[i].Date <= stats.DailyVisits[i-1].Date {
			t.Fatal("series not in chronological order")
		}
	}

	if stats.DailyVisits[0].Count != 1 {
		t.Fatalf("oldest day count = %d, want 1", stats.DailyVisits[0].Count)
	}
	if stats.DailyVisits[6].Count != 2 {
		t.Fatalf("today count = %d, want 2", stats.DailyVisits[6].Count)
	}
	// Days in between are zero-filled, never omitted.
	for i := 1; i < 6; i++ {
		if stats.DailyVisits[i].Count != 0 {
			t.Fatalf("day %s count = %d, want 0", stats.DailyVisits[i].Date, stats.DailyVisits[i].Count)
		}
	}
}

func TestComputeStatsReadFailure(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	store := &fakeVisitStore{readErr: errors.New("relation does not exist")}
	svc := analyticsFixture(store, now)

	stats := svc.ComputeStats(context.Background())
	if stats.Success {
		t.Fatal("expected Success=false on read failure")
	}
	if stats.UniqueVisitorCount != 0 || stats.TotalPageViews != 0 {
		t.Fatal("failed snapshot must not carry partial counts")
	}
	if len(stats.DailyVisits) != 7 {
		t.Fatalf("failed snapshot series length = %d, want 7", len(stats.DailyVisits))
	}
}
