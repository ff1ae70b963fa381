package game

// Status is the top-level state of a run.
type Status int

const (
	Running Status = iota
	Paused
	Over
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Over:
		return "over"
	default:
		return "unknown"
	}
}

// State is the scalar bookkeeping of a run.
type State struct {
	Lives     int
	Score     int
	HighScore int

	FallSpeed   float64
	RotateSpeed float64
	MoveSpeed   float64

	Status        Status
	BlockInFlight bool

	// CurrentHighestPoint is the highest landing of this run.
	CurrentHighestPoint float64
}

// Deadline is a one-shot timer checked against world time on the fixed tick.
type Deadline struct {
	At    float64
	Armed bool
}

func (d *Deadline) Arm(at float64) {
	d.At = at
	d.Armed = true
}

func (d *Deadline) Disarm() {
	d.Armed = false
}

// Expired reports whether an armed deadline has passed.
func (d *Deadline) Expired(now float64) bool {
	return d.Armed && now >= d.At
}
