package shift

// allowedTransitions is the status state machine. canceled to pending is the
// reprogram path: re-opening a canceled shift flips its Reprogramed flag.
// confirmed to pending is not allowed, and a same-status update is a no-op
// transition rejected like any other.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCanceled},
	StatusCanceled:  {StatusPending},
}

// CanTransition reports whether a shift may move from one status to another.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
