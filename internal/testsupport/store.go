package testsupport

import (
	"testing"

	"orderflow/internal/catalog"
	"orderflow/internal/config"
	"orderflow/internal/logging"
	"orderflow/internal/orders"
	"orderflow/internal/workflow"
)

// MustOpenStore opens a store under the config's data dir and registers
// cleanup with the test.
func MustOpenStore(t *testing.T, cfg *config.Config) *orders.Store {
	t.Helper()

	store, err := orders.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

// NewManager builds a workflow manager over a fresh temp store with the
// default catalog and a no-op logger.
func NewManager(t *testing.T) *workflow.Manager {
	t.Helper()

	cfg := NewConfig(t)
	store := MustOpenStore(t, cfg)
	return workflow.NewManager(store, catalog.Default(), logging.NewNop(),
		workflow.WithDefaultActor(cfg.Workflow.DefaultActor),
		workflow.WithPreSuppliedCap(cfg.Workflow.MaxPreSuppliedStages))
}
