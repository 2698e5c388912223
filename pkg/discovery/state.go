package discovery

// State is the query application state machine:
// Idle -> Debouncing -> Applying -> Idle.
type State int

const (
	StateIdle State = iota
	StateDebouncing
	StateApplying
)

func (s State) String() string {
	switch s {
	case StateDebouncing:
		return "debouncing"
	case StateApplying:
		return "applying"
	}
	return "idle"
}
