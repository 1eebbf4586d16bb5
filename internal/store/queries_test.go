package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

func TestExecTx_CommitsOnNil(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	err := store.ExecTx(context.Background(), db, func(q *store.Queries) error {
		_, err := q.CreateTechnology(context.Background(), store.CreateTechnologyParams{
			Name: "Go", Category: "backend",
		})
		return err
	})
	require.NoError(t, err)

	techs, err := store.New(db).ListTechnologies(context.Background())
	require.NoError(t, err)
	assert.Len(t, techs, 1)
}

func TestExecTx_RollsBackOnError(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	boom := errors.New("boom")
	err := store.ExecTx(context.Background(), db, func(q *store.Queries) error {
		if _, err := q.CreateTechnology(context.Background(), store.CreateTechnologyParams{
			Name: "Rust", Category: "backend",
		}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	// The write inside the failed transaction never lands.
	techs, err := store.New(db).ListTechnologies(context.Background())
	require.NoError(t, err)
	assert.Empty(t, techs)
}
