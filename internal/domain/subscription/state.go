package subscription

// State represents the lifecycle state of a subscription.
type State string

const (
	StateCreated  State = "CREATED"
	StateActive   State = "ACTIVE"
	StateCanceled State = "CANCELED"
	StateStopped  State = "STOPPED"
	StateInactive State = "INACTIVE"
	StateEnded    State = "ENDED"
)

func (s State) String() string {
	return string(s)
}

// transitions is the single source of truth for the state machine. Both
// PossibleTransitions and CanTransitionTo are derived from it so the lookup
// and the write-time checks can never diverge.
var transitions = map[State][]State{
	StateCreated:  {StateCanceled, StateActive},
	StateActive:   {StateStopped, StateInactive},
	StateInactive: {StateEnded},
	StateCanceled: {},
	StateStopped:  {},
	StateEnded:    {},
}

// CanTransitionTo reports whether the state machine allows moving from s to target.
func (s State) CanTransitionTo(target State) bool {
	for _, allowed := range transitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// PossibleTransitions returns the legal next states for s. Terminal states
// return an empty slice, never nil.
func (s State) PossibleTransitions() []State {
	allowed := transitions[s]
	out := make([]State, len(allowed))
	copy(out, allowed)
	return out
}

// IsTerminal reports whether no further transitions are modeled for s.
func (s State) IsTerminal() bool {
	return len(transitions[s]) == 0
}

var ValidStates = map[State]bool{
	StateCreated:  true,
	StateActive:   true,
	StateCanceled: true,
	StateStopped:  true,
	StateInactive: true,
	StateEnded:    true,
}

func (s State) Valid() bool {
	return ValidStates[s]
}
