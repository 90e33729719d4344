package harness

// State is the lifecycle position of a Harness.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateDraining
	StateCompleted
	StateFatal
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateCompleted:
		return "completed"
	case StateFatal:
		return "fatal"
	default:
		return "unknown"
	}
}
