package stream

import (
	"github.com/san-kum/orbitsim/internal/engine"
	"github.com/san-kum/orbitsim/internal/orbit"
)

// Client commands.
const (
	OpPause      = "pause"
	OpResume     = "resume"
	OpSpeed      = "speed"
	OpSubSteps   = "substeps"
	OpScheme     = "scheme"
	OpSelect     = "select"
	OpResetApsis = "reset_apsis"
)

// Command is what clients send. Body names a body by name; ID takes
// precedence when set.
type Command struct {
	Op     string   `json:"op"`
	Value  float64  `json:"value,omitempty"`
	Scheme string   `json:"scheme,omitempty"`
	Body   string   `json:"body,omitempty"`
	ID     orbit.ID `json:"id,omitempty"`
}

type BodyState struct {
	ID        orbit.ID   `json:"id"`
	Name      string     `json:"name"`
	Parent    orbit.ID   `json:"parent,omitempty"`
	Render    [3]float32 `json:"render"`
	Periapsis float32    `json:"periapsis,omitempty"`
	Apoapsis  float32    `json:"apoapsis,omitempty"`
}

type Snapshot struct {
	Frame    int         `json:"frame"`
	SimTime  float64     `json:"sim_time"`
	Paused   bool        `json:"paused"`
	Speed    float64     `json:"speed"`
	SubSteps int         `json:"sub_steps"`
	Scheme   string      `json:"scheme"`
	Selected orbit.ID    `json:"selected,omitempty"`
	Offset   [3]float64  `json:"offset"`
	Bodies   []BodyState `json:"bodies"`
}

// Message is the envelope of everything the server sends.
type Message struct {
	Type     string    `json:"type"`
	Snapshot *Snapshot `json:"snapshot,omitempty"`
	Error    string    `json:"error,omitempty"`
}

const (
	TypeSnapshot = "snapshot"
	TypeError    = "error"
)

// NewSnapshot copies everything a client needs out of sim.
func NewSnapshot(sim *engine.Simulation) Snapshot {
	ctl := sim.Controls()
	bodies := sim.Store().Bodies()

	snap := Snapshot{
		Frame:    sim.Frames(),
		SimTime:  sim.SimTime(),
		Paused:   ctl.Paused,
		Speed:    ctl.Speed,
		SubSteps: ctl.SubSteps,
		Scheme:   ctl.Scheme.String(),
		Selected: ctl.Selected,
		Offset:   sim.Offset(),
		Bodies:   make([]BodyState, len(bodies)),
	}
	for i := range bodies {
		b := &bodies[i]
		snap.Bodies[i] = BodyState{
			ID:        b.ID,
			Name:      b.Name,
			Parent:    b.Parent,
			Render:    b.RenderPosition,
			Periapsis: b.Apsis.Periapsis.Distance,
			Apoapsis:  b.Apsis.Apoapsis.Distance,
		}
	}
	return snap
}
