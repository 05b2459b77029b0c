package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-playground/validator/v10"
	_ "github.com/mattn/go-sqlite3"

	"github.com/lmoreno/spancards/internal/logger"
	"github.com/lmoreno/spancards/internal/models"
	"github.com/lmoreno/spancards/internal/storage"
)

// slotName identifies the single row this app writes.
const slotName = "spancards:data"

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Gateway is the sqlite-backed persistence gateway. All state lives in a
// single slot row; saved_at is kept in its own column so the metadata
// accessor works even against an undecodable payload.
type Gateway struct {
	db  *sql.DB
	log *logger.Logger
	now func() time.Time
}

// New wraps an already-migrated database handle.
func New(db *sql.DB) *Gateway {
	return &Gateway{
		db:  db,
		log: logger.Default().WithPrefix("storage"),
		now: time.Now,
	}
}

// Open opens (or creates) the database at path and applies the schema.
func Open(path string) (*Gateway, error) {
	log := logger.Default().WithPrefix("storage")

	dsn := path + "?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL"
	log.Info("opening database: %s", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open database: %v", err)
		return nil, err
	}
	db.SetMaxOpenConns(1) // SQLite best practice for single writer

	if err := Migrate(db); err != nil {
		log.Error("failed to apply schema: %v", err)
		db.Close()
		return nil, err
	}

	log.Info("database ready")
	return New(db), nil
}

// Migrate creates the slot table if it does not exist.
func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS app_state (
    slot           TEXT PRIMARY KEY,
    schema_version INTEGER NOT NULL,
    payload        TEXT NOT NULL,
    saved_at       DATETIME NOT NULL
)`)
	return err
}

func (g *Gateway) Save(state *models.AppState) bool {
	env := storage.Envelope{
		SchemaVersion: storage.SchemaVersion,
		Data:          state,
		SavedAt:       g.now().UTC(),
	}

	payload, err := json.Marshal(env)
	if err != nil {
		g.log.Error("failed to encode state: %v", err)
		return false
	}

	query, args, err := sqlBuilder.
		Insert("app_state").
		Columns("slot", "schema_version", "payload", "saved_at").
		Values(slotName, env.SchemaVersion, string(payload), env.SavedAt).
		Suffix(`ON CONFLICT(slot) DO UPDATE SET
    schema_version = excluded.schema_version,
    payload        = excluded.payload,
    saved_at       = excluded.saved_at`).
		ToSql()
	if err != nil {
		g.log.Error("failed to build save statement: %v", err)
		return false
	}

	if _, err := g.db.Exec(query, args...); err != nil {
		g.log.Error("failed to write state: %v", err)
		return false
	}

	g.log.Debug("state saved: cards=%d, decks=%d, sessions=%d",
		len(state.Cards), len(state.Decks), len(state.Sessions))
	return true
}

func (g *Gateway) Load() (*models.AppState, bool) {
	query, args, err := sqlBuilder.
		Select("schema_version", "payload").
		From("app_state").
		Where(squirrel.Eq{"slot": slotName}).
		ToSql()
	if err != nil {
		g.log.Error("failed to build load statement: %v", err)
		return nil, false
	}

	var version int
	var payload string
	err = g.db.QueryRow(query, args...).Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		g.log.Debug("no stored state")
		return nil, false
	}
	if err != nil {
		g.log.Warn("failed to read stored state: %v", err)
		return nil, false
	}

	if version != storage.SchemaVersion {
		g.log.Warn("stored state version mismatch: expected %d, got %d", storage.SchemaVersion, version)
		return nil, false
	}

	var env storage.Envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		g.log.Warn("stored state is not valid JSON: %v", err)
		return nil, false
	}
	if env.SchemaVersion != storage.SchemaVersion {
		g.log.Warn("stored payload version mismatch: expected %d, got %d", storage.SchemaVersion, env.SchemaVersion)
		return nil, false
	}
	if err := validate.Struct(env); err != nil {
		g.log.Warn("stored state is incomplete: %v", err)
		return nil, false
	}

	g.log.Debug("state loaded: cards=%d, decks=%d, sessions=%d",
		len(env.Data.Cards), len(env.Data.Decks), len(env.Data.Sessions))
	return env.Data, true
}

func (g *Gateway) Clear() bool {
	query, args, err := sqlBuilder.
		Delete("app_state").
		Where(squirrel.Eq{"slot": slotName}).
		ToSql()
	if err != nil {
		g.log.Error("failed to build clear statement: %v", err)
		return false
	}

	if _, err := g.db.Exec(query, args...); err != nil {
		g.log.Warn("failed to clear stored state: %v", err)
		return false
	}
	g.log.Debug("stored state cleared")
	return true
}

func (g *Gateway) LastSavedAt() (time.Time, bool) {
	query, args, err := sqlBuilder.
		Select("saved_at").
		From("app_state").
		Where(squirrel.Eq{"slot": slotName}).
		ToSql()
	if err != nil {
		g.log.Error("failed to build metadata statement: %v", err)
		return time.Time{}, false
	}

	var savedAt time.Time
	err = g.db.QueryRow(query, args...).Scan(&savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false
	}
	if err != nil {
		g.log.Warn("failed to read save timestamp: %v", err)
		return time.Time{}, false
	}
	return savedAt, true
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

var _ storage.Gateway = (*Gateway)(nil)
