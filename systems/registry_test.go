package systems

import (
	"slices"
	"testing"
)

func TestPhaseRegistryOrderAndNames(t *testing.T) {
	reg := NewPhaseRegistry()

	want := []string{PhaseReset, PhasePredators, PhasePrey, PhaseTelemetry}
	if got := reg.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}

	tests := []struct {
		id   string
		want string
	}{
		{PhasePredators, "Doodlebugs"},
		{PhasePrey, "Ants"},
		{"unknown", "unknown"},
	}
	for _, tt := range tests {
		if got := reg.GetName(tt.id); got != tt.want {
			t.Errorf("GetName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}

	reg.Register(PhaseInfo{ID: "extra", Name: "Extra"})
	if ids := reg.IDs(); ids[len(ids)-1] != "extra" || reg.GetName("extra") != "Extra" {
		t.Errorf("registered phase not appended: %v", ids)
	}
}
