// Package storage defines the persistence gateway contract: one named
// durable slot holding a versioned snapshot of the application state.
// Implementations never surface errors; every failure degrades to an
// absent value or a false return and is logged at the call site.
package storage

import (
	"time"

	"github.com/lmoreno/spancards/internal/models"
)

// SchemaVersion is the compiled-in version tag written with every save.
// A stored payload with any other version loads as absent; there is no
// migration path, only the hook point for one.
const SchemaVersion = 1

// Envelope is the persisted layout wrapped around the state.
type Envelope struct {
	SchemaVersion int              `json:"schemaVersion" validate:"required"`
	Data          *models.AppState `json:"data" validate:"required"`
	SavedAt       time.Time        `json:"savedAt"`
}

// Gateway persists and restores the application state.
type Gateway interface {
	// Save writes state to the slot, overwriting any prior value.
	// A false return means the write failed; the caller keeps going.
	Save(state *models.AppState) bool

	// Load reads the slot. The second return is false when the slot is
	// empty, the version does not match, or the payload fails to decode
	// or validate.
	Load() (*models.AppState, bool)

	// Clear removes the slot. Failure is non-fatal.
	Clear() bool

	// LastSavedAt reports when the slot was last written, without
	// decoding the payload.
	LastSavedAt() (time.Time, bool)

	Close() error
}
