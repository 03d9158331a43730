package driver

// State is the lifecycle position of a driver within one cycle.
type State int

const (
	Uninitialized State = iota
	Checking
	Missing
	Present
	Done
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Checking:
		return "checking"
	case Missing:
		return "missing"
	case Present:
		return "present"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Action is what a cycle did to the output file.
type Action string

const (
	ActionNone        Action = "none"
	ActionUpToDate    Action = "up-to-date"
	ActionGenerated   Action = "generated"
	ActionDeleted     Action = "deleted"
	ActionRegenerated Action = "regenerated"
)

// Result describes one completed cycle of one domain.
// Warning holds a recoverable condition (ErrUpdateOnMissing,
// ErrForceGenerateOnAbsent); it is never also returned as the error.
type Result struct {
	Domain  string
	Path    string
	State   State
	Action  Action
	Warning error
}
