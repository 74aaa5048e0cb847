package internal

import (
	"testing"

	"github.com/kcmvp/archunit"
)

func TestArchitecture(t *testing.T) {
	model := archunit.Packages("model", []string{".../internal/core/domain/...", ".../internal/core/events/..."})
	core := archunit.Packages("core", []string{".../internal/core/..."})
	adapters := archunit.Packages("adapters", []string{".../internal/adapter/..."})
	transport := archunit.Packages("transport", []string{".../internal/mqtt/..."})
	server := archunit.Packages("server", []string{".../internal/server/..."})

	// Rule 1: the core model should not depend on adapters
	if err := model.ShouldNotReferLayers(adapters); err != nil {
		t.Errorf("Architecture violation: core model depends on adapters: %v", err)
	}

	// Rule 2: the core model should not depend on the MQTT transport
	if err := model.ShouldNotReferLayers(transport); err != nil {
		t.Errorf("Architecture violation: core model depends on MQTT transport: %v", err)
	}

	// Rule 3: the core should not depend on the HTTP server
	if err := core.ShouldNotReferLayers(server); err != nil {
		t.Errorf("Architecture violation: core depends on HTTP server: %v", err)
	}
}
