package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medgear/medgear_api/internal/cache"
	"github.com/medgear/medgear_api/internal/models"
)

// VisitStore is the persistence surface for the visit event log.
type VisitStore interface {
	Insert(v *models.Visit) error
	CountDistinctVisitors() (int, error)
	CountAll() (int, error)
	CountByPage() ([]models.PageViewCount, error)
	Recent(limit int) ([]models.Visit, error)
	DailyCounts(since time.Time) (map[string]int, error)
}

// RecordResult distinguishes the outcomes of a visit recording attempt.
// Failures are deliberately indistinguishable from the caller's point of
// view only in severity: recording never blocks page rendering.
type RecordResult string

const (
	VisitRecorded RecordResult = "recorded"
	VisitSkipped  RecordResult = "skipped"
	VisitFailed   RecordResult = "failed"
)

const recentVisitLimit = 10

// dailyWindowDays is the fixed width of the dashboard time series:
// 6 days ago through today inclusive.
const dailyWindowDays = 7

// DailyVisitCount is one calendar day in the fixed-width series.
type DailyVisitCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// VisitorStats is the aggregated dashboard snapshot. Success is false when
// any underlying read failed; counts are then zero/empty and must not be
// trusted.
type VisitorStats struct {
	Success            bool              `json:"success"`
	UniqueVisitorCount int               `json:"uniqueVisitorCount"`
	TotalPageViews     int               `json:"totalPageViews"`
	PageViewsByPage    map[string]int    `json:"pageViewsByPage"`
	RecentVisits       []models.Visit    `json:"recentVisits"`
	DailyVisits        []DailyVisitCount `json:"dailyVisits"`
}

// AnalyticsService derives visitor statistics from the append-only visit
// log. There is no counters table: counts are always recomputed from
// events, trading query cost for the absence of update-consistency bugs.
type AnalyticsService struct {
	visits          VisitStore
	statsCache      *cache.StatsCache
	adminPathPrefix string
	now             func() time.Time
}

// NewAnalyticsService creates a new AnalyticsService. statsCache may be nil
// to disable snapshot caching.
func NewAnalyticsService(visits VisitStore, statsCache *cache.StatsCache, adminPathPrefix string) *AnalyticsService {
	return &AnalyticsService{
		visits:          visits,
		statsCache:      statsCache,
		adminPathPrefix: adminPathPrefix,
		now:             time.Now,
	}
}

// RecordVisit appends one visit event. Back-office paths are skipped so
// admin traffic never pollutes public analytics. Storage failures are
// logged and reported as VisitFailed, never raised to the caller.
func (s *AnalyticsService) RecordVisit(visitorID, page, userAgent string) RecordResult {
	if strings.HasPrefix(page, s.adminPathPrefix) {
		return VisitSkipped
	}

	visit := &models.Visit{
		VisitorID: visitorID,
		Page:      page,
		UserAgent: userAgent,
	}
	if err := s.visits.Insert(visit); err != nil {
		log.Error().Err(err).Str("page", page).Msg("failed to record visit")
		return VisitFailed
	}
	return VisitRecorded
}

// ComputeStats aggregates the visit log into a dashboard snapshot. The
// daily series always has exactly 7 entries, 6 days ago through today, in
// chronological order, zero-filled for days without events. Any read
// failure yields Success=false with empty fields rather than a partially
// populated result.
func (s *AnalyticsService) ComputeStats(ctx context.Context) VisitorStats {
	if s.statsCache != nil {
		var cached VisitorStats
		if hit, err := s.statsCache.Get(ctx, &cached); err == nil && hit {
			return cached
		}
	}

	stats, err := s.computeStats()
	if err != nil {
		log.Error().Err(err).Msg("visitor stats aggregation failed")
		return VisitorStats{Success: false, PageViewsByPage: map[string]int{}, RecentVisits: []models.Visit{}, DailyVisits: emptyDailySeries(s.now())}
	}

	if s.statsCache != nil {
		if err := s.statsCache.Set(ctx, stats); err != nil {
			log.Warn().Err(err).Msg("failed to cache visitor stats")
		}
	}
	return stats
}

func (s *AnalyticsService) computeStats() (VisitorStats, error) {
	unique, err := s.visits.CountDistinctVisitors()
	if err != nil {
		return VisitorStats{}, err
	}
	total, err := s.visits.CountAll()
	if err != nil {
		return VisitorStats{}, err
	}
	byPage, err := s.visits.CountByPage()
	if err != nil {
		return VisitorStats{}, err
	}
	recent, err := s.visits.Recent(recentVisitLimit)
	if err != nil {
		return VisitorStats{}, err
	}

	today := s.now()
	windowStart := startOfDay(today).AddDate(0, 0, -(dailyWindowDays - 1))
	daily, err := s.visits.DailyCounts(windowStart)
	if err != nil {
		return VisitorStats{}, err
	}

	pageViews := make(map[string]int, len(byPage))
	for _, pc := range byPage {
		pageViews[pc.Page] = pc.Count
	}

	series := emptyDailySeries(today)
	for i := range series {
		if n, ok := daily[series[i].Date]; ok {
			series[i].Count = n
		}
	}

	if recent == nil {
		recent = []models.Visit{}
	}

	return VisitorStats{
		Success:            true,
		UniqueVisitorCount: unique,
		TotalPageViews:     total,
		PageViewsByPage:    pageViews,
		RecentVisits:       recent,
		DailyVisits:        series,
	}, nil
}

// emptyDailySeries builds the zero-filled fixed-width series ending today.
func emptyDailySeries(today time.Time) []DailyVisitCount {
	series := make([]DailyVisitCount, dailyWindowDays)
	start := startOfDay(today).AddDate(0, 0, -(dailyWindowDays - 1))
	for i := 0; i < dailyWindowDays; i++ {
		series[i] = DailyVisitCount{Date: start.AddDate(0, 0, i).Format("2006-01-02")}
	}
	return series
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
