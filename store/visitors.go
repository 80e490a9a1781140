package store

import (
	"context"
	"fmt"
	"time"
)

// Visit is one tracked page view. The client IP is never stored, only its
// salted hash.
type Visit struct {
	ID        string    `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

type PathStat struct {
	Path   string `json:"path"`
	Visits int64  `json:"visits"`
}

type Stats struct {
	TotalVisitors    int64            `json:"total_visitors"`
	UniqueVisitors   int64            `json:"unique_visitors"`
	VisitorsToday    int64            `json:"visitors_today"`
	VisitorsThisWeek int64            `json:"visitors_this_week"`
	TotalContacts    int64            `json:"total_contacts"`
	FailedContacts   int64            `json:"failed_contacts"`
	TopPaths         []PathStat       `json:"top_paths"`
	RecentVisitors   []Visit          `json:"recent_visitors"`
	RecentContacts   []ContactMessage `json:"recent_contacts"`
}

func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.ID == "" {
		v.ID = newID()
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = s.timestamp()
	}
	_, err := s.exec(ctx, `
		INSERT INTO visitors (id, hashed_ip, user_agent, path, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, v.ID, v.HashedIP, v.UserAgent, v.Path, v.Timestamp.UTC())
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// RecentVisitors returns up to limit visits, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.query(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), timestamp
		FROM visitors
		ORDER BY timestamp DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load visitors: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan visitor: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// CleanupVisitors deletes visits older than the retention window and
// returns how many were removed.
func (s *Store) CleanupVisitors(ctx context.Context) (int64, error) {
	cutoff := s.timestamp().Add(-VisitorRetention)
	result, err := s.exec(ctx, `DELETE FROM visitors WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to clean up visitors: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}

// Stats gathers the admin dashboard numbers.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}
	now := s.timestamp()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{today}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE timestamp >= ?`, []any{now.Add(-7 * 24 * time.Hour)}},
		{&stats.TotalContacts, `SELECT COUNT(*) FROM contact_messages`, nil},
		{&stats.FailedContacts, `SELECT COUNT(*) FROM contact_messages WHERE status <> 'sent'`, nil},
	}
	for _, c := range counts {
		if err := s.queryRow(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("failed to count: %w", err)
		}
	}

	rows, err := s.query(ctx, `
		SELECT COALESCE(path, ''), COUNT(*) AS visits
		FROM visitors
		GROUP BY path
		ORDER BY visits DESC, path
		LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load top paths: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p PathStat
		if err := rows.Scan(&p.Path, &p.Visits); err != nil {
			return nil, fmt.Errorf("failed to scan path: %w", err)
		}
		stats.TopPaths = append(stats.TopPaths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.RecentVisitors, err = s.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentContacts, err = s.RecentContacts(ctx, 20); err != nil {
		return nil, err
	}
	return stats, nil
}
