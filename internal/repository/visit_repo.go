package repository

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/medgear/medgear_api/internal/models"
)

// VisitRepository handles the append-only visit event log.
type VisitRepository struct {
	db *sqlx.DB
}

// NewVisitRepository creates a new VisitRepository.
func NewVisitRepository(db *sqlx.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

// Insert appends one visit event.
func (r *VisitRepository) Insert(v *models.Visit) error {
	const q = `
		INSERT INTO visits (visitor_id, page, user_agent)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`
	return r.db.QueryRow(q, v.VisitorID, v.Page, v.UserAgent).Scan(&v.ID, &v.CreatedAt)
}

// CountDistinctVisitors returns the all-time unique visitor count.
func (r *VisitRepository) CountDistinctVisitors() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(DISTINCT visitor_id) FROM visits`)
	return n, err
}

// CountAll returns the total number of recorded page views.
func (r *VisitRepository) CountAll() (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM visits`)
	return n, err
}

// CountByPage returns view counts grouped by page path.
func (r *VisitRepository) CountByPage() ([]models.PageViewCount, error) {
	const q = `SELECT page, COUNT(*) AS count FROM visits GROUP BY page ORDER BY count DESC`
	var counts []models.PageViewCount
	if err := r.db.Select(&counts, q); err != nil {
		return nil, err
	}
	return counts, nil
}

// Recent returns the newest visit events, newest first.
func (r *VisitRepository) Recent(limit int) ([]models.Visit, error) {
	const q = `SELECT * FROM visits ORDER BY created_at DESC LIMIT $1`
	var visits []models.Visit
	if err := r.db.Select(&visits, q, limit); err != nil {
		return nil, err
	}
	return visits, nil
}

// DailyCounts returns visits per calendar day since the given time, keyed
// by YYYY-MM-DD. Days without events are absent; the aggregator zero-fills.
func (r *VisitRepository) DailyCounts(since time.Time) (map[string]int, error) {
	const q = `
		SELECT TO_CHAR(created_at, 'YYYY-MM-DD') AS date, COUNT(*) AS count
		FROM visits
		WHERE created_at >= $1
		GROUP BY 1`

	rows, err := r.db.Queryx(q, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var date string
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, err
		}
		counts[date] = count
	}
	return counts, rows.Err()
}
