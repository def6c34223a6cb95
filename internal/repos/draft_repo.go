package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type DraftRepo struct{ db *sqlx.DB }

func NewDraftRepo(db *sqlx.DB) *DraftRepo { return &DraftRepo{db: db} }

// Put overwrites the stored draft for a session (last-writer-wins).
func (r *DraftRepo) Put(sessionID, payload string) error {
	_, err := r.db.Exec(`
	  INSERT INTO drafts(session_id, payload, updated_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(session_id) DO UPDATE SET payload=excluded.payload, updated_at=CURRENT_TIMESTAMP
	`, sessionID, payload)
	return err
}

func (r *DraftRepo) Get(sessionID string) (string, bool, error) {
	var payload string
	err := r.db.Get(&payload, `SELECT payload FROM drafts WHERE session_id=?`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (r *DraftRepo) Delete(sessionID string) error {
	_, err := r.db.Exec(`DELETE FROM drafts WHERE session_id=?`, sessionID)
	return err
}
