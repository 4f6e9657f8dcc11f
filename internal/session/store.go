package session

import (
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"petspa/internal/domain"
)

// Store persists the sid-cookie -> bearer-token binding between requests.
// Only the token and its derived display fields are kept; every other piece of
// state is re-fetched from the remote API on demand.
type Store struct{ db *sqlx.DB }

func Open(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	schema := `
CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  token TEXT NOT NULL,
  user_id TEXT,                      -- subject claim decoded at login
  email TEXT,
  username TEXT,
  role TEXT,
  roles TEXT,                        -- comma-joined
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen TEXT
);
`
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

type sessionRow struct {
	ID       string `db:"id"`
	Token    string `db:"token"`
	UserID   string `db:"user_id"`
	Email    string `db:"email"`
	Username string `db:"username"`
	Role     string `db:"role"`
	Roles    string `db:"roles"`
}

func (s *Store) Bind(sid, token string, sess domain.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO sessions(id, token, user_id, email, username, role, roles, last_seen)
		VALUES(?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
		  token = excluded.token, user_id = excluded.user_id, email = excluded.email,
		  username = excluded.username, role = excluded.role, roles = excluded.roles,
		  last_seen = excluded.last_seen
	`, sid, token, sess.ID, sess.Email, sess.Username, sess.Role, strings.Join(sess.Roles, ","), time.Now().Format(time.RFC3339))
	return err
}

// Get returns the stored token and session for a sid; ok is false when the
// browser has no server-side session (anonymous visitor).
func (s *Store) Get(sid string) (string, domain.Session, bool) {
	var row sessionRow
	if err := s.db.Get(&row, `SELECT id, token, user_id, email, username, role, roles FROM sessions WHERE id = ?`, sid); err != nil {
		return "", domain.Session{}, false
	}
	sess := domain.Session{ID: row.UserID, Email: row.Email, Username: row.Username, Role: row.Role}
	if row.Roles != "" {
		sess.Roles = strings.Split(row.Roles, ",")
	}
	return row.Token, sess, true
}

func (s *Store) Delete(sid string) error {
	_, err := s.db.Exec(`DELETE FROM sessions WHERE id = ?`, sid)
	return err
}
