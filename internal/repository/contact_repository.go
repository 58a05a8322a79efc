package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/osa911/folio/internal/models"

	"github.com/google/uuid"
)

// PgContactRepository is the PostgreSQL implementation of ContactRepository
type PgContactRepository struct {
	db *sql.DB
}

// NewPgContactRepository creates a PgContactRepository backed by db
func NewPgContactRepository(db *sql.DB) *PgContactRepository {
	return &PgContactRepository{db: db}
}

var _ ContactRepository = (*PgContactRepository)(nil)

const contactColumns = `id, name, email, message, status, ip_address, user_agent, referrer, created_at, updated_at`

// Save inserts a new contact_messages row
func (r *PgContactRepository) Save(ctx context.Context, msg *models.ContactMessage) error {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO contact_messages (id, name, email, message, status, ip_address, user_agent, referrer, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		msg.ID, msg.Name, msg.Email, msg.Message, string(msg.Status),
		msg.IPAddress, msg.UserAgent, msg.Referrer, msg.CreatedAt, msg.UpdatedAt,
	).Scan(&msg.CreatedAt, &msg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save contact message: %w", err)
	}
	return nil
}

// List returns contact messages filtered by status, newest first
func (r *PgContactRepository) List(ctx context.Context, opts models.ContactListOptions) ([]*models.ContactMessage, error) {
	opts = opts.Normalize()

	var conditions []string
	var args []any

	if status := strings.TrimSpace(opts.Status); status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, opts.Limit, opts.Offset)
	query := fmt.Sprintf(
		`SELECT %s FROM contact_messages%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		contactColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UpdateStatus changes the status of a message
func (r *PgContactRepository) UpdateStatus(ctx context.Context, id string, status models.ContactStatus) (*models.ContactMessage, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE contact_messages SET status = $2, updated_at = $3 WHERE id = $1 RETURNING `+contactColumns,
		id, string(status), time.Now().UTC(),
	)
	m, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return m, err
}

// DeleteReadBefore removes read messages that were last updated before t
func (r *PgContactRepository) DeleteReadBefore(ctx context.Context, t time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM contact_messages WHERE status = $1 AND updated_at < $2`,
		string(models.ContactStatusRead), t,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete read contact messages: %w", err)
	}
	return res.RowsAffected()
}

// Ping checks the database connection
func (r *PgContactRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanContact(s scanner) (*models.ContactMessage, error) {
	var m models.ContactMessage
	var status string
	if err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &status,
		&m.IPAddress, &m.UserAgent, &m.Referrer, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Status = models.ContactStatus(status)
	return &m, nil
}
