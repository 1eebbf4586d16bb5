// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-go/internal/auth"
	"portfolio-go/internal/model"
	"portfolio-go/internal/store"
	"portfolio-go/internal/testutil"
)

var guardSecret = []byte("0123456789abcdef0123456789abcdef")

// guardedProbe returns a handler chain through the Guard and a flag
// handler that records whether the request got through.
func guardedProbe(t *testing.T) (http.Handler, *bool, **auth.Claims) {
	t.Helper()

	reached := false
	var seenClaims *auth.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		seenClaims = GetClaims(r)
		w.WriteHeader(http.StatusOK)
	})
	return Guard(guardSecret, false)(next), &reached, &seenClaims
}

func issueTestToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	token, err := auth.IssueToken(7, "admin@example.com", model.RoleAdmin, guardSecret, ttl)
	require.NoError(t, err)
	return token
}

func TestGuard_SetupAlwaysPasses(t *testing.T) {
	h, reached, _ := guardedProbe(t)

	req := httptest.NewRequest(http.MethodGet, SetupPath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, *reached)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGuard_NoToken_LoginPasses(t *testing.T) {
	h, reached, claims := guardedProbe(t)

	req := httptest.NewRequest(http.MethodGet, LoginPath, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, *reached)
	assert.Nil(t, *claims)
}

func TestGuard_NoToken_ProtectedRedirects(t *testing.T) {
	h, reached, _ := guardedProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login?from=%2Fadmin%2Fprojects", rec.Header().Get("Location"))
}

func TestGuard_InvalidToken_ClearsCookieAndRedirects(t *testing.T) {
	h, reached, _ := guardedProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-token"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login?from=%2Fadmin%2Fprojects", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestGuard_ExpiredToken_TreatedLikeInvalid(t *testing.T) {
	h, reached, _ := guardedProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueTestToken(t, -time.Minute)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestGuard_ValidToken_LoginRedirectsToAdmin(t *testing.T) {
	h, reached, _ := guardedProbe(t)

	req := httptest.NewRequest(http.MethodGet, LoginPath, nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueTestToken(t, time.Hour)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.False(t, *reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, AdminPrefix, rec.Header().Get("Location"))
}

func TestGuard_ValidToken_ProtectedPassesWithClaims(t *testing.T) {
	h, reached, claims := guardedProbe(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: issueTestToken(t, time.Hour)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.True(t, *reached)
	require.NotNil(t, *claims)
	assert.Equal(t, int64(7), (*claims).UserID())
	assert.Equal(t, model.RoleAdmin, (*claims).Role)
}

func TestLoadUser_RefusesDeactivatedAccount(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	now := time.Now()
	user, err := queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        "admin@example.com",
		PasswordHash: "x",
		Role:         model.RoleAdmin,
		Name:         "Admin",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	token, err := auth.IssueToken(user.ID, user.Email, user.Role, guardSecret, time.Hour)
	require.NoError(t, err)

	reached := false
	chain := Guard(guardSecret, false)(LoadUser(db, false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		require.NotNil(t, GetUser(r))
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)
	assert.True(t, reached)

	// Deactivate the account; the same still-valid token must now be
	// rejected.
	_, err = queries.OverwriteUser(context.Background(), store.OverwriteUserParams{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		Name:         user.Name,
		IsActive:     false,
		UpdatedAt:    time.Now(),
		ID:           user.ID,
	})
	require.NoError(t, err)

	reached = false
	req = httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec = httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestRequireAdmin_ForbidsNonAdmin(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	queries := store.New(db)
	now := time.Now()
	user, err := queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        "user@example.com",
		PasswordHash: "x",
		Role:         model.RoleUser,
		Name:         "User",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	token, err := auth.IssueToken(user.ID, user.Email, user.Role, guardSecret, time.Hour)
	require.NoError(t, err)

	chain := Guard(guardSecret, false)(LoadUser(db, false)(RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	}))))

	req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
