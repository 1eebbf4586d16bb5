package store

import (
	"context"
	"strings"
	"time"

	"portfolio-go/internal/model"
)

const messageColumns = `id, name, email, subject, message, status, ip_address,
	user_agent, created_at, updated_at`

func scanMessage(row interface{ Scan(...any) error }) (model.ContactMessage, error) {
	var m model.ContactMessage
	err := row.Scan(
		&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.Status,
		&m.IPAddress, &m.UserAgent, &m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

// CreateMessageParams holds the fields for recording a contact message.
type CreateMessageParams struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	Status    string
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateMessage inserts a new contact message and returns the stored record.
func (q *Queries) CreateMessage(ctx context.Context, arg CreateMessageParams) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (name, email, subject, message, status, ip_address, user_agent, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+messageColumns,
		arg.Name, arg.Email, arg.Subject, arg.Message, arg.Status,
		arg.IPAddress, arg.UserAgent, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanMessage(row)
}

// GetMessageByID returns the contact message with the given ID.
func (q *Queries) GetMessageByID(ctx context.Context, id int64) (model.ContactMessage, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM contact_messages WHERE id = ?`, id)
	return scanMessage(row)
}

// ListMessagesParams filters message listings. Zero values mean "no filter".
type ListMessagesParams struct {
	Status string
}

// ListMessages returns contact messages newest-first, optionally
// filtered by status.
func (q *Queries) ListMessages(ctx context.Context, arg ListMessagesParams) ([]model.ContactMessage, error) {
	var (
		where []string
		args  []any
	)
	if arg.Status != "" {
		where = append(where, "status = ?")
		args = append(args, arg.Status)
	}

	query := `SELECT ` + messageColumns + ` FROM contact_messages`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// UpdateMessageStatusParams holds a status transition for a message.
type UpdateMessageStatusParams struct {
	Status    string
	UpdatedAt time.Time
	ID        int64
}

// UpdateMessageStatus moves a contact message to a new triage status.
func (q *Queries) UpdateMessageStatus(ctx context.Context, arg UpdateMessageStatusParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE contact_messages SET status = ?, updated_at = ? WHERE id = ?`,
		arg.Status, arg.UpdatedAt, arg.ID)
	return err
}

// DeleteMessage removes a contact message.
func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = ?`, id)
	return err
}

// CountMessagesByStatus returns how many messages are in the given status.
func (q *Queries) CountMessagesByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contact_messages WHERE status = ?`, status).Scan(&n)
	return n, err
}
