// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/auth"
	"portfolio-go/internal/middleware"
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

var handlerTestSecret = []byte("0123456789abcdef0123456789abcdef")

func seedLoginUser(t *testing.T, db *sql.DB, email, password string, active bool) model.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	now := time.Now()
	user, err := store.New(db).CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		Name:         "Admin",
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return user
}

func TestLogin_Success(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	seedLoginUser(t, db, "admin@example.com", "s3cure-pass", true)
	h := NewAuthHandler(db, handlerTestSecret, time.Hour, false)

	rec := postJSON(t, h.Login, "/admin/login", map[string]any{
		"email": "admin@example.com", "password": "s3cure-pass",
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sessionCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	assert.True(t, sessionCookie.HttpOnly)
	assert.Equal(t, int((time.Hour).Seconds()), sessionCookie.MaxAge)

	claims, err := auth.VerifyToken(sessionCookie.Value, handlerTestSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)

	// Login stamps last_login_at.
	user, err := store.New(db).GetUserByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.True(t, user.LastLoginAt.Valid)
}

func TestLogin_WrongPassword(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	seedLoginUser(t, db, "admin@example.com", "s3cure-pass", true)
	h := NewAuthHandler(db, handlerTestSecret, time.Hour, false)

	rec := postJSON(t, h.Login, "/admin/login", map[string]any{
		"email": "admin@example.com", "password": "wrong",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_UnknownUser_SameAnswerAsWrongPassword(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	seedLoginUser(t, db, "admin@example.com", "s3cure-pass", true)
	h := NewAuthHandler(db, handlerTestSecret, time.Hour, false)

	wrongPass := postJSON(t, h.Login, "/admin/login", map[string]any{
		"email": "admin@example.com", "password": "wrong",
	}, nil)
	unknown := postJSON(t, h.Login, "/admin/login", map[string]any{
		"email": "nobody@example.com", "password": "wrong",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrongPass.Body.String(), unknown.Body.String())
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	seedLoginUser(t, db, "admin@example.com", "s3cure-pass", false)
	h := NewAuthHandler(db, handlerTestSecret, time.Hour, false)

	rec := postJSON(t, h.Login, "/admin/login", map[string]any{
		"email": "admin@example.com", "password": "s3cure-pass",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogin_MissingFields(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewAuthHandler(db, handlerTestSecret, time.Hour, false)

	rec := postJSON(t, h.Login, "/admin/login", map[string]any{"email": "admin@example.com"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLogout_ClearsCookie(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	h := NewAuthHandler(db, handlerTestSecret, time.Hour, false)

	rec := postJSON(t, h.Logout, "/admin/logout", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, middleware.CookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
