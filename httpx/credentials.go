package httpx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/oauth"
	"github.com/mattn/go-sqlite3"
	"github.com/mbolis/quick-forms/config"
	"golang.org/x/crypto/bcrypt"
)

const refreshTokenTTL = 365 * 24 * time.Hour

var errCannotRefresh = errors.New("could not refresh")

type credentialsVerifier struct {
	db *sql.DB
}

func CredentialsVerifier(db *sql.DB) oauth.CredentialsVerifier {
	return &credentialsVerifier{db}
}

// NewBearerServer issues admin tokens for the users stored in db.
func NewBearerServer(db *sql.DB, cfg config.Config) *oauth.BearerServer {
	return oauth.NewBearerServer(cfg.TokenSecret, cfg.TokenTTL, CredentialsVerifier(db), nil)
}

// CreateUser adds an admin user, or resets the password of an existing one.
func CreateUser(ctx context.Context, db *sql.DB, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO user (username, password_hash) VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash`,
		username,
		hash,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (cs *credentialsVerifier) ValidateUser(username string, password string, scope string, r *http.Request) error {
	var hash []byte
	err := cs.db.
		QueryRowContext(r.Context(), "SELECT password_hash FROM user WHERE username=?", username).
		Scan(&hash)
	if err != nil {
		return err
	}

	return bcrypt.CompareHashAndPassword(hash, []byte(password))
}
func (cs *credentialsVerifier) StoreTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	_, err := cs.db.Exec(
		"INSERT INTO token (username, token_id, refresh_token_id, expiration) VALUES (?, ?, ?, ?)",
		credential,
		tokenID,
		refreshTokenID,
		time.Now().Add(refreshTokenTTL).UTC(),
	)
	return err
}

// ValidateTokenID consumes a refresh token: it can be used only once. The
// row is deleted and read back in one statement, so of two concurrent
// refreshes with the same token only one finds it.
func (cs *credentialsVerifier) ValidateTokenID(tokenType oauth.TokenType, credential string, tokenID string, refreshTokenID string) error {
	var expiration string
	err := cs.db.
		QueryRow(`
			DELETE FROM token
			WHERE username = ?
				AND token_id = ?
				AND refresh_token_id = ?
			RETURNING expiration`,
			credential,
			tokenID,
			refreshTokenID,
		).
		Scan(&expiration)
	if errors.Is(err, sql.ErrNoRows) {
		return errCannotRefresh
	}
	if err != nil {
		return fmt.Errorf("consume refresh token: %w", err)
	}

	expiresAt, err := parseTimestamp(expiration)
	if err != nil {
		return err
	}
	if expiresAt.Before(time.Now()) {
		return errCannotRefresh
	}
	return nil
}

// parseTimestamp reads a DATETIME value returned without its column type,
// which the driver then hands back as text.
func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSuffix(s, "Z")
	for _, layout := range sqlite3.SQLiteTimestampFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unreadable token expiration %q", s)
}

func (*credentialsVerifier) AddClaims(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{"roles": "admin"}, nil
}
func (*credentialsVerifier) AddProperties(tokenType oauth.TokenType, credential string, tokenID string, scope string, r *http.Request) (map[string]string, error) {
	return map[string]string{}, nil
}
func (*credentialsVerifier) ValidateClient(clientID string, clientSecret string, scope string, r *http.Request) error {
	return errors.New("not supported")
}
