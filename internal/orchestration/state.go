package orchestration

// State is a step of the battle lifecycle:
//
//	Idle -> Validating -> {Failed | Fetching} -> {Failed | Comparing} -> Resolved
//
// Failed and Resolved are terminal.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateFetching
	StateComparing
	StateResolved
	StateFailed
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StateValidating: "validating",
	StateFetching:   "fetching",
	StateComparing:  "comparing",
	StateResolved:   "resolved",
	StateFailed:     "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether no transition can follow s.
func (s State) Terminal() bool {
	return s == StateResolved || s == StateFailed
}
