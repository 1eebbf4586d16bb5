// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/auth"
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSetupStatus(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	h := NewSetupHandler(db, true, "")

	req := httptest.NewRequest(http.MethodGet, "/admin/setup", nil)
	rec := httptest.NewRecorder()
	h.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["available"])

	// After provisioning an admin, setup is no longer available.
	rec = postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "admin@example.com", "password": "s3cure-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Status(rec, req)
	assert.Equal(t, false, decodeBody(t, rec)["available"])
}

func TestSetupCreate(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	h := NewSetupHandler(db, true, "")

	rec := postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "admin@example.com", "password": "s3cure-pass", "name": "Jane",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	q := store.New(db)
	user, err := q.GetUserByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, "Jane", user.Name)

	ok, err := auth.CheckPassword("s3cure-pass", user.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSetupCreate_Validation(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	h := NewSetupHandler(db, true, "")

	rec := postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "not-an-email", "password": "s3cure-pass",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "admin@example.com", "password": "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetupCreate_ConflictWithoutForce(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	h := NewSetupHandler(db, true, "")

	rec := postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "admin@example.com", "password": "s3cure-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "other@example.com", "password": "s3cure-pass",
	}, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSetupCreate_ForceInDevelopment(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	h := NewSetupHandler(db, true, "")

	rec := postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "old@example.com", "password": "s3cure-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "new@example.com", "password": "new-password", "force": true,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// The existing admin was overwritten, not duplicated.
	q := store.New(db)
	n, err := q.CountUsersByRole(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = q.GetUserByEmail(context.Background(), "new@example.com")
	assert.NoError(t, err)
}

func TestSetupCreate_ForceInProduction(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	h := NewSetupHandler(db, false, "prov-key-123")

	rec := postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "old@example.com", "password": "s3cure-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Force without the provisioning key is refused.
	rec = postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "new@example.com", "password": "new-password", "force": true,
	}, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Wrong key is refused too.
	rec = postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "new@example.com", "password": "new-password", "force": true,
	}, http.Header{SetupKeyHeader: []string{"wrong"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The configured key authorizes the overwrite.
	rec = postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "new@example.com", "password": "new-password", "force": true,
	}, http.Header{SetupKeyHeader: []string{"prov-key-123"}})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetupCreate_ForceRefusedWithoutConfiguredKey(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	h := NewSetupHandler(db, false, "")

	rec := postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "old@example.com", "password": "s3cure-pass",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Create, "/admin/setup", map[string]any{
		"email": "new@example.com", "password": "new-password", "force": true,
	}, http.Header{SetupKeyHeader: []string{""}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
