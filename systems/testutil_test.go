package systems

import (
	"testing"

	"github.com/pthm-cable/antfarm/config"
)

// testConfig loads the embedded defaults.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}
