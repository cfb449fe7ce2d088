package repos

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/json"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"

	"dealerpro/internal/domain"
)

var (
	ErrNoSession = errors.New("session not found")
	errOpen      = errors.New("sealed token does not open")
)

const nonceSize = 24

// SessionRepo persists the browser session: the API token (sealed at rest), the user record
// returned by the API, and one pending flash message.
type SessionRepo struct {
	DB  *sqlx.DB
	key [32]byte
}

func NewSessionRepo(db *sqlx.DB, secret string) *SessionRepo {
	return &SessionRepo{DB: db, key: sha256.Sum256([]byte(secret))}
}

type sessionRow struct {
	ID           string         `db:"id"`
	TokenSealed  []byte         `db:"token_sealed"`
	UserJSON     sql.NullString `db:"user_json"`
	FlashKind    sql.NullString `db:"flash_kind"`
	FlashMessage sql.NullString `db:"flash_message"`
	UpdatedAt    string         `db:"updated_at"`
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// Save binds token and user to sid. Last writer wins.
func (r *SessionRepo) Save(sid, token string, u *domain.User) error {
	sealed, err := r.seal(token)
	if err != nil {
		return err
	}
	uj, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(err, "encode session user")
	}
	_, err = r.DB.Exec(`INSERT INTO sessions(id,token_sealed,user_json,updated_at)
                        VALUES(?,?,?,?)
                        ON CONFLICT(id) DO UPDATE SET token_sealed=excluded.token_sealed,
                          user_json=excluded.user_json, updated_at=excluded.updated_at`,
		sid, sealed, string(uj), now())
	return err
}

func (r *SessionRepo) Load(sid string) (*domain.Session, error) {
	var row sessionRow
	err := r.DB.Get(&row, `SELECT id,token_sealed,user_json,flash_kind,flash_message,updated_at
                           FROM sessions WHERE id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}

	s := &domain.Session{ID: row.ID}
	if len(row.TokenSealed) > 0 {
		if s.Token, err = r.open(row.TokenSealed); err != nil {
			return nil, err
		}
	}
	if row.UserJSON.Valid && row.UserJSON.String != "" && row.UserJSON.String != "null" {
		var u domain.User
		if err := json.Unmarshal([]byte(row.UserJSON.String), &u); err != nil {
			return nil, errors.Wrap(err, "decode session user")
		}
		s.User = &u
	}
	s.UpdatedAt, _ = time.Parse(time.RFC3339, row.UpdatedAt)
	return s, nil
}

// UpdateUser replaces the stored user record, keeping the token.
func (r *SessionRepo) UpdateUser(sid string, u *domain.User) error {
	uj, err := json.Marshal(u)
	if err != nil {
		return errors.Wrap(err, "encode session user")
	}
	res, err := r.DB.Exec(`UPDATE sessions SET user_json=?,updated_at=? WHERE id=?`, string(uj), now(), sid)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoSession
	}
	return nil
}

// Delete forgets token and user but keeps the row so a pending flash survives logout.
func (r *SessionRepo) Delete(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET token_sealed=NULL,user_json=NULL,updated_at=? WHERE id=?`, now(), sid)
	return err
}

func (r *SessionRepo) SetFlash(sid, kind, msg string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,flash_kind,flash_message,updated_at)
                        VALUES(?,?,?,?)
                        ON CONFLICT(id) DO UPDATE SET flash_kind=excluded.flash_kind,
                          flash_message=excluded.flash_message, updated_at=excluded.updated_at`,
		sid, kind, msg, now())
	return err
}

// PopFlash returns and clears the pending flash. nil when there is none.
func (r *SessionRepo) PopFlash(sid string) (*domain.Flash, error) {
	tx, err := r.DB.Beginx()
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	var row struct {
		Kind    sql.NullString `db:"flash_kind"`
		Message sql.NullString `db:"flash_message"`
	}
	err = tx.Get(&row, `SELECT flash_kind,flash_message FROM sessions WHERE id=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !row.Message.Valid || row.Message.String == "" {
		return nil, nil
	}
	if _, err := tx.Exec(`UPDATE sessions SET flash_kind=NULL,flash_message=NULL WHERE id=?`, sid); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &domain.Flash{Kind: row.Kind.String, Message: row.Message.String}, nil
}

// PurgeOlderThan removes sessions not written to for longer than d.
func (r *SessionRepo) PurgeOlderThan(d time.Duration) (int64, error) {
	cutoff := time.Now().Add(-d).UTC().Format(time.RFC3339)
	res, err := r.DB.Exec(`DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *SessionRepo) seal(token string) ([]byte, error) {
	if token == "" {
		return nil, nil
	}
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, errors.Wrap(err, "session nonce")
	}
	return secretbox.Seal(nonce[:], []byte(token), &nonce, &r.key), nil
}

func (r *SessionRepo) open(sealed []byte) (string, error) {
	if len(sealed) < nonceSize+secretbox.Overhead {
		return "", errOpen
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])
	out, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &r.key)
	if !ok {
		return "", errOpen
	}
	return string(out), nil
}
