package pipeline

/**
 * state.go - pipeline states
 */

type State int32

const (
	Idle State = iota
	Sampling
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Sampling:
		return "sampling"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}
