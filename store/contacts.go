package store

import (
	"context"
	"fmt"
	"time"
)

// Contact message outcomes.
const (
	ContactSent     = "sent"
	ContactRejected = "rejected"
	ContactFailed   = "failed"
)

type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Store) RecordContact(ctx context.Context, m ContactMessage) error {
	if m.ID == "" {
		m.ID = newID()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = s.timestamp()
	}
	_, err := s.exec(ctx, `
		INSERT INTO contact_messages (id, name, email, message, status, detail, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, m.ID, m.Name, m.Email, m.Message, m.Status, m.Detail, m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record contact message: %w", err)
	}
	return nil
}

// RecentContacts returns up to limit messages, newest first.
func (s *Store) RecentContacts(ctx context.Context, limit int) ([]ContactMessage, error) {
	rows, err := s.query(ctx, `
		SELECT id, name, email, message, status, COALESCE(detail, ''), created_at
		FROM contact_messages
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact messages: %w", err)
	}
	defer rows.Close()

	var msgs []ContactMessage
	for rows.Next() {
		var m ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.Status, &m.Detail, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
