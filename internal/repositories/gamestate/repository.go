// Package gamestate defines the interface for the persistent state store:
// one warrior profile, the enemy collection and the unlocked achievements,
// saved as a single document on every mutation.
package gamestate

//go:generate mockgen -destination=mock/mock_repository.go -package=gamestatemock github.com/spartan-system/spartan-api/internal/repositories/gamestate Repository

import (
	"context"

	"github.com/spartan-system/spartan-api/internal/entities"
)

// ExportVersion tags exported documents so a future import path can detect
// the schema they were written with.
const ExportVersion = "1.0.0"

// Repository defines the interface for game state persistence.
// There is no partial patching: Save always overwrites the full snapshot,
// and an interrupted save leaves the previous snapshot authoritative.
type Repository interface {
	// Load returns the last-saved snapshot. On first run it seeds and
	// persists the default dataset; a legacy-schema document is migrated
	// in place. Returns errors.Unavailable for storage failures.
	Load(ctx context.Context, input LoadInput) (*LoadOutput, error)

	// Save overwrites the persisted snapshot.
	// Returns errors.InvalidArgument when the snapshot is nil.
	// Returns errors.Unavailable for storage failures.
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Reset discards all persisted data, snapshot and preferences alike.
	// Irreversible; the caller owns any confirmation flow.
	Reset(ctx context.Context, input ResetInput) (*ResetOutput, error)

	// LoadPreferences returns the persisted preferences, or defaults when
	// none were saved yet.
	LoadPreferences(ctx context.Context, input LoadPreferencesInput) (*LoadPreferencesOutput, error)

	// SavePreferences overwrites the persisted preferences.
	SavePreferences(ctx context.Context, input SavePreferencesInput) (*SavePreferencesOutput, error)

	// Export bundles the snapshot, the preferences, a version tag and a
	// timestamp into a single document.
	Export(ctx context.Context, input ExportInput) (*ExportOutput, error)
}

// LoadInput defines the input for loading the snapshot
type LoadInput struct {
	// Empty for now, can be extended later
}

// LoadOutput defines the output for loading the snapshot
type LoadOutput struct {
	Snapshot *entities.Snapshot
	// Seeded is true when this load created the first-run dataset
	Seeded bool
	// Migrated is true when a legacy-schema document was mapped forward
	Migrated bool
}

// SaveInput defines the input for saving the snapshot
type SaveInput struct {
	Snapshot *entities.Snapshot
}

// SaveOutput defines the output for saving the snapshot
type SaveOutput struct {
	// Empty for now, can be extended later
}

// ResetInput defines the input for resetting the store
type ResetInput struct {
	// Empty for now, can be extended later
}

// ResetOutput defines the output for resetting the store
type ResetOutput struct {
	Snapshot *entities.Snapshot
}

// LoadPreferencesInput defines the input for loading preferences
type LoadPreferencesInput struct {
	// Empty for now, can be extended later
}

// LoadPreferencesOutput defines the output for loading preferences
type LoadPreferencesOutput struct {
	Preferences *entities.Preferences
}

// SavePreferencesInput defines the input for saving preferences
type SavePreferencesInput struct {
	Preferences *entities.Preferences
}

// SavePreferencesOutput defines the output for saving preferences
type SavePreferencesOutput struct {
	// Empty for now, can be extended later
}

// ExportInput defines the input for exporting the store
type ExportInput struct {
	// Empty for now, can be extended later
}

// ExportOutput defines the output for exporting the store
type ExportOutput struct {
	Document *ExportDocument
}

// ExportDocument is the downloadable backup: full snapshot plus preferences,
// tagged with a schema version and the export time.
type ExportDocument struct {
	Version     string                `json:"version"`
	ExportedAt  int64                 `json:"exported_at"`
	Snapshot    *entities.Snapshot    `json:"snapshot"`
	Preferences *entities.Preferences `json:"preferences"`
}
