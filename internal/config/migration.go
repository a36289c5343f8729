package config

import (
	"fmt"

	"github.com/pomatime/pomatime/internal/config/schema"
	"github.com/pomatime/pomatime/internal/config/store"
	"github.com/pomatime/pomatime/internal/logging"
)

// ResetPolicy decides what happens when the file's stamped version
// does not match the running build. The choice is wired at startup,
// not at runtime.
type ResetPolicy int

const (
	// PolicyMigrate regenerates the file and carries every recognized
	// existing value over, so user settings survive an upgrade.
	PolicyMigrate ResetPolicy = iota

	// PolicyForceReset discards the old file entirely. Used for
	// releases whose settings are not compatible with older ones.
	PolicyForceReset
)

// MigrationResult tells the caller how the file was brought current.
type MigrationResult int

const (
	// MigrationNone means the version already matched, or the file
	// was freshly created from defaults.
	MigrationNone MigrationResult = iota

	// MigrationUpgraded means recognized values were carried into a
	// regenerated file.
	MigrationUpgraded

	// MigrationReset means the file was factory-reset. The caller
	// should apply a default snapshot directly instead of reloading,
	// and schedule a one-time full UI reset.
	MigrationReset
)

// Migrator reconciles the on-disk file with the running build's
// schema version before the first load.
type Migrator struct {
	store  *store.Store
	policy ResetPolicy
	logger *logging.Logger
}

func NewMigrator(st *store.Store, policy ResetPolicy, logger *logging.Logger) *Migrator {
	if logger == nil {
		logger = logging.Null
	}
	return &Migrator{store: st, policy: policy, logger: logger}
}

// EnsureCurrent creates the file from defaults when missing and
// migrates or resets it on a version mismatch. It must run before the
// first Load.
func (m *Migrator) EnsureCurrent() (MigrationResult, error) {
	if !m.store.FileExists() {
		m.logger.Info("creating config file with defaults at %s", m.store.Path())
		if err := WriteDefaultFile(m.store.Path()); err != nil {
			return MigrationNone, fmt.Errorf("create default config: %w", err)
		}
		m.store.Invalidate()
		return MigrationNone, nil
	}

	stored := m.store.ReadString(schema.SectionGeneral, "CONFIG_VERSION", "")
	if stored == schema.Version {
		return MigrationNone, nil
	}

	if m.policy == PolicyForceReset {
		m.logger.Warn("config version %q does not match %s, forcing reset", stored, schema.Version)
		return MigrationReset, m.reset()
	}

	m.logger.Info("migrating config from version %q to %s", stored, schema.Version)
	return MigrationUpgraded, m.migrate()
}

// reset discards the file and regenerates pure defaults.
func (m *Migrator) reset() error {
	if err := m.store.RemoveFile(); err != nil {
		return fmt.Errorf("remove old config: %w", err)
	}
	if err := WriteDefaultFile(m.store.Path()); err != nil {
		return fmt.Errorf("regenerate config: %w", err)
	}
	m.store.Invalidate()
	return nil
}

// migrate regenerates the file from the current schema, then restores
// every recognized value from the old file. Keys the new schema does
// not know are dropped; keys the old file lacked keep their defaults.
func (m *Migrator) migrate() error {
	old := m.store.Entries()

	if err := m.store.RemoveFile(); err != nil {
		return fmt.Errorf("remove old config: %w", err)
	}
	if err := WriteDefaultFile(m.store.Path()); err != nil {
		return fmt.Errorf("regenerate config: %w", err)
	}
	m.store.Invalidate()

	var keep []store.KeyValue
	for _, kv := range old {
		if kv.Key == "CONFIG_VERSION" {
			continue
		}
		if !recognizedKey(kv.Section, kv.Key) {
			m.logger.Debug("dropping unrecognized key %s/%s", kv.Section, kv.Key)
			continue
		}
		keep = append(keep, kv)
	}
	if len(keep) == 0 {
		return nil
	}
	if !m.store.UpdateBatchAtomic(keep) {
		return fmt.Errorf("restore migrated values: %w", ErrWriteFailed)
	}
	return nil
}

// recognizedKey reports whether a section/key pair survives a
// migration: anything in the metadata table, plus the dynamic
// recent-file slots.
func recognizedKey(section, key string) bool {
	if _, ok := schema.Lookup(section, key); ok {
		return true
	}
	if section != schema.SectionRecentFiles {
		return false
	}
	var n int
	if _, err := fmt.Sscanf(key, "CLOCK_RECENT_FILE_%d", &n); err != nil {
		return false
	}
	return n >= 1 && n <= schema.MaxRecentFiles && key == fmt.Sprintf("CLOCK_RECENT_FILE_%d", n)
}
