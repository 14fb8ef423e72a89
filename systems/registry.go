package systems

// Phase IDs for the steps of one tick. These double as perf tracker keys.
const (
	PhaseReset     = "reset"
	PhasePredators = "predators"
	PhasePrey      = "prey"
	PhaseTelemetry = "telemetry"
)

// PhaseInfo describes a tick phase for display.
type PhaseInfo struct {
	ID   string // used for perf tracking
	Name string
}

// PhaseRegistry holds the tick phases in execution order.
// The UI and perf tracker both read names from here.
type PhaseRegistry struct {
	phases []PhaseInfo
	byID   map[string]PhaseInfo
}

// NewPhaseRegistry creates a registry with the standard tick phases.
func NewPhaseRegistry() *PhaseRegistry {
	reg := &PhaseRegistry{
		byID: make(map[string]PhaseInfo),
	}
	reg.Register(PhaseInfo{ID: PhaseReset, Name: "Reset"})
	reg.Register(PhaseInfo{ID: PhasePredators, Name: "Doodlebugs"})
	reg.Register(PhaseInfo{ID: PhasePrey, Name: "Ants"})
	reg.Register(PhaseInfo{ID: PhaseTelemetry, Name: "Telemetry"})
	return reg
}

// Register appends a phase.
func (r *PhaseRegistry) Register(info PhaseInfo) {
	r.phases = append(r.phases, info)
	r.byID[info.ID] = info
}

// GetName returns the display name for a phase ID, or the ID itself if unknown.
func (r *PhaseRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// IDs returns all phase IDs in execution order.
func (r *PhaseRegistry) IDs() []string {
	ids := make([]string, len(r.phases))
	for i, info := range r.phases {
		ids[i] = info.ID
	}
	return ids
}
