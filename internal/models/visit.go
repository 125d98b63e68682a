package models

import "time"

// Visit is one recorded page view. Rows are append-only: analytics are
// always recomputed from the log rather than kept in counter tables.
type Visit struct {
	ID        int       `db:"id" json:"id"`
	VisitorID string    `db:"visitor_id" json:"visitorId"`
	Page      string    `db:"page" json:"page"`
	UserAgent string    `db:"user_agent" json:"userAgent"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// PageViewCount is the per-path breakdown used by the statistics dashboard.
type PageViewCount struct {
	Page  string `db:"page" json:"page"`
	Count int    `db:"count" json:"count"`
}
