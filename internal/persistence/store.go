package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jberndt/longwinter/internal/engine"
)

// ErrNoSave is returned when a save slot does not exist.
var ErrNoSave = errors.New("no such save")

// Store wraps a SQLite connection holding save slots.
type Store struct {
	conn *sqlx.DB
}

// SaveInfo summarizes one slot without decoding its blob.
type SaveInfo struct {
	ID      string    `db:"id" json:"id"`
	Day     int       `db:"day" json:"day"`
	State   string    `db:"state" json:"state"`
	SavedAt time.Time `db:"saved_at" json:"saved_at"`
}

// Open opens or creates the save database at the given path.
func Open(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	st := &Store{conn: conn}
	if err := st.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return st, nil
}

// Close closes the database connection.
func (st *Store) Close() error {
	return st.conn.Close()
}

func (st *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS saves (
		id TEXT PRIMARY KEY,
		day INTEGER NOT NULL,
		state TEXT NOT NULL,
		saved_at TIMESTAMP NOT NULL,
		blob BLOB NOT NULL
	);
	`
	_, err := st.conn.Exec(schema)
	return err
}

// Save writes a snapshot into a slot, replacing any previous contents.
func (st *Store) Save(id string, snap *engine.Snapshot) error {
	blob, err := Encode(snap)
	if err != nil {
		return err
	}
	_, err = st.conn.Exec(`
		INSERT INTO saves (id, day, state, saved_at, blob)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			day = excluded.day,
			state = excluded.state,
			saved_at = excluded.saved_at,
			blob = excluded.blob`,
		id, snap.Clock.Day, string(snap.State), time.Now().UTC(), blob)
	if err != nil {
		return fmt.Errorf("save %s: %w", id, err)
	}
	return nil
}

// Load reads and decodes a slot.
func (st *Store) Load(id string) (*engine.Snapshot, error) {
	var blob []byte
	err := st.conn.Get(&blob, "SELECT blob FROM saves WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNoSave, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	return Decode(blob)
}

// Delete removes a slot. Deleting a missing slot is not an error.
func (st *Store) Delete(id string) error {
	_, err := st.conn.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}

// List returns slot summaries, most recent first.
func (st *Store) List() ([]SaveInfo, error) {
	var out []SaveInfo
	err := st.conn.Select(&out, "SELECT id, day, state, saved_at FROM saves ORDER BY saved_at DESC")
	if err != nil {
		return nil, fmt.Errorf("list saves: %w", err)
	}
	return out, nil
}
