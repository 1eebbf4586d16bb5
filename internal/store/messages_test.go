package store_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

func createTestMessage(t *testing.T, q *store.Queries, status string, at time.Time) model.ContactMessage {
	t.Helper()
	m, err := q.CreateMessage(context.Background(), store.CreateMessageParams{
		Name:      "Visitor",
		Email:     "visitor@example.com",
		Subject:   "Hello",
		Message:   "Nice portfolio!",
		Status:    status,
		IPAddress: "203.0.113.7",
		UserAgent: "Mozilla/5.0",
		CreatedAt: at,
		UpdatedAt: at,
	})
	require.NoError(t, err)
	return m
}

func TestCreateAndGetMessage(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	created := createTestMessage(t, q, model.MessageStatusNew, time.Now())
	assert.NotZero(t, created.ID)
	assert.Equal(t, model.MessageStatusNew, created.Status)

	got, err := q.GetMessageByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Visitor", got.Name)
	assert.Equal(t, "203.0.113.7", got.IPAddress)
}

func TestListMessages_StatusFilterAndOrder(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	older := createTestMessage(t, q, model.MessageStatusNew, time.Now().Add(-time.Hour))
	newer := createTestMessage(t, q, model.MessageStatusRead, time.Now())

	all, err := q.ListMessages(context.Background(), store.ListMessagesParams{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
	assert.Equal(t, older.ID, all[1].ID)

	unread, err := q.ListMessages(context.Background(), store.ListMessagesParams{Status: model.MessageStatusNew})
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, older.ID, unread[0].ID)
}

func TestUpdateMessageStatus(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	m := createTestMessage(t, q, model.MessageStatusNew, time.Now())

	err := q.UpdateMessageStatus(context.Background(), store.UpdateMessageStatusParams{
		Status:    model.MessageStatusReplied,
		UpdatedAt: time.Now(),
		ID:        m.ID,
	})
	require.NoError(t, err)

	got, err := q.GetMessageByID(context.Background(), m.ID)
	require.NoError(t, err)
	assert.Equal(t, model.MessageStatusReplied, got.Status)
}

func TestCountMessagesByStatus(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	createTestMessage(t, q, model.MessageStatusNew, time.Now())
	createTestMessage(t, q, model.MessageStatusNew, time.Now())
	createTestMessage(t, q, model.MessageStatusArchived, time.Now())

	n, err := q.CountMessagesByStatus(context.Background(), model.MessageStatusNew)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestDeleteMessage(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	m := createTestMessage(t, q, model.MessageStatusNew, time.Now())
	require.NoError(t, q.DeleteMessage(context.Background(), m.ID))

	_, err := q.GetMessageByID(context.Background(), m.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
