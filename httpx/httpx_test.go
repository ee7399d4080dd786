package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/oauth"
	"github.com/mbolis/quick-forms/database"
	"github.com/mbolis/quick-forms/forms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestRender(t *testing.T) {
	rec := httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, map[string]int{"accepted_count": 2})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success": true, "code": 201, "data": {"accepted_count": 2}, "message": null}`, rec.Body.String())
}

func TestRenderError(t *testing.T) {
	validation := &forms.ValidationError{
		Code:    forms.CodeOutOfRange,
		Field:   "answer",
		Message: "Answer must be at most 100.",
		Details: map[string]any{"question": int64(3)},
	}

	cases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation",
			err:    validation,
			status: http.StatusBadRequest,
			body: `{"success": false, "code": 400, "data": null, "message": "Answer must be at most 100.",
				"error": {"code": "out_of_range", "field": "answer", "details": {"question": 3}}}`,
		},
		{
			name:   "wrapped validation",
			err:    fmt.Errorf("submit: %w", validation),
			status: http.StatusBadRequest,
			body: `{"success": false, "code": 400, "data": null, "message": "Answer must be at most 100.",
				"error": {"code": "out_of_range", "field": "answer", "details": {"question": 3}}}`,
		},
		{
			name:   "not found",
			err:    forms.QuestionNotFound(7),
			status: http.StatusNotFound,
			body: `{"success": false, "code": 404, "data": null, "message": "question 7 not found",
				"error": {"code": "not_found", "field": "question"}}`,
		},
		{
			name:   "internal",
			err:    errors.New("disk on fire"),
			status: http.StatusInternalServerError,
			body:   `{"success": false, "code": 500, "data": null, "message": "Internal Server Error"}`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RenderError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "test", tc.err)

			assert.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, tc.body, rec.Body.String())
		})
	}
}

func TestLogBadInput(t *testing.T) {
	rec := httptest.NewRecorder()
	LogBadInput(rec, httptest.NewRequest(http.MethodGet, "/", nil), "test", "form", "%s is not a valid id.", "form")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "form is not a valid id.", *env.Message)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_input", env.Error.Code)
	assert.Equal(t, "form", env.Error.Field)
}

func TestResponseBuffer_RelaySuccess(t *testing.T) {
	buf := NewResponseBuffer()
	buf.Header().Set("Content-Type", "application/json")
	_, err := buf.Write([]byte(`{"access_token": "abc", "expires_in": 120}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, buf.Status())

	rec := httptest.NewRecorder()
	buf.Relay(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "code": 200, "data": {"access_token": "abc", "expires_in": 120}, "message": null}`, rec.Body.String())
}

func TestResponseBuffer_RelayFailure(t *testing.T) {
	buf := NewResponseBuffer()
	buf.WriteHeader(http.StatusUnauthorized)
	_, err := buf.Write([]byte(`"Not authorized"`))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	buf.Relay(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Not authorized", *env.Message)

	buf = NewResponseBuffer()
	buf.WriteHeader(http.StatusBadRequest)
	rec = httptest.NewRecorder()
	buf.Relay(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	env = decode(t, rec)
	require.NotNil(t, env.Message)
	assert.Equal(t, "Bad Request", *env.Message)
}

func TestCredentials(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "users.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, CreateUser(ctx, db, "admin", "first"))
	require.NoError(t, CreateUser(ctx, db, "admin", "second"), "password reset")
	assert.Error(t, CreateUser(ctx, db, "admin", ""))

	verifier := CredentialsVerifier(db)
	req := httptest.NewRequest(http.MethodPost, "/", nil)

	assert.NoError(t, verifier.ValidateUser("admin", "second", "", req))
	assert.Error(t, verifier.ValidateUser("admin", "first", "", req))
	assert.Error(t, verifier.ValidateUser("nobody", "second", "", req))

	claims, err := verifier.AddClaims(oauth.UserToken, "admin", "t1", "", req)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims["roles"])
}

func TestRefreshTokenIsSingleUse(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "tokens.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, CreateUser(context.Background(), db, "admin", "s3cret"))
	verifier := CredentialsVerifier(db)

	require.NoError(t, verifier.StoreTokenID(oauth.UserToken, "admin", "t1", "r1"))

	assert.NoError(t, verifier.ValidateTokenID(oauth.UserToken, "admin", "t1", "r1"))
	assert.Equal(t, errCannotRefresh, verifier.ValidateTokenID(oauth.UserToken, "admin", "t1", "r1"))
}

func TestRefreshToken_ConcurrentUse(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "tokens.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, CreateUser(context.Background(), db, "admin", "s3cret"))
	verifier := CredentialsVerifier(db)
	require.NoError(t, verifier.StoreTokenID(oauth.UserToken, "admin", "t1", "r1"))

	const attempts = 4
	start := make(chan struct{})
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results <- verifier.ValidateTokenID(oauth.UserToken, "admin", "t1", "r1")
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	accepted := 0
	for err := range results {
		if err == nil {
			accepted++
			continue
		}
		assert.Equal(t, errCannotRefresh, err)
	}
	assert.Equal(t, 1, accepted)
}

func TestRefreshToken_Unknown(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "tokens.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	verifier := CredentialsVerifier(db)
	assert.Equal(t, errCannotRefresh, verifier.ValidateTokenID(oauth.UserToken, "admin", "nope", "nope"))
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2026, 10, 16, 12, 30, 0, 500000000, time.UTC)

	for _, s := range []string{
		"2026-10-16 12:30:00.5+00:00",
		"2026-10-16T12:30:00.5Z",
		"2026-10-16 14:30:00.5+02:00",
	} {
		got, err := parseTimestamp(s)
		require.NoError(t, err, s)
		assert.True(t, want.Equal(got), "%s parsed as %s", s, got)
	}

	_, err := parseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestRefreshTokenExpired(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "tokens.sqlite"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, CreateUser(context.Background(), db, "admin", "s3cret"))
	_, err = db.Exec(
		"INSERT INTO token (username, token_id, refresh_token_id, expiration) VALUES (?, ?, ?, ?)",
		"admin", "t1", "r1", time.Now().Add(-time.Hour).UTC(),
	)
	require.NoError(t, err)

	verifier := CredentialsVerifier(db)
	assert.Equal(t, errCannotRefresh, verifier.ValidateTokenID(oauth.UserToken, "admin", "t1", "r1"))
}
