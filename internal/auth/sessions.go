package auth

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mimiru/mimiru/internal/config"
	"github.com/mimiru/mimiru/internal/entities"
)

// Session data keys
const (
	SessionKeyAccountID = "account_id"
	SessionKeyEmail     = "email"
)

// SessionManager wraps scs.SessionManager with application-specific
// methods.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a configured session manager backed by the
// main sqlite database. The sqlDB parameter should be the underlying
// *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession establishes a session for an account after successful
// sign-in. The token is renewed first to prevent session fixation.
func (sm *SessionManager) CreateSession(r *http.Request, account *entities.Account) error {
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}
	sm.Put(r.Context(), SessionKeyAccountID, account.ID)
	sm.Put(r.Context(), SessionKeyEmail, account.Email)
	return nil
}

// DestroySession removes the session (sign-out).
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// AccountID returns the signed-in account's uuid, or "" when the request
// carries no session.
func (sm *SessionManager) AccountID(r *http.Request) string {
	return sm.GetString(r.Context(), SessionKeyAccountID)
}
