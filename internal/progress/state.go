package progress

import (
	"fmt"

	"github.com/san-kum/springbar/internal/dynamo"
)

// State is the lifecycle stage of a Bar.
type State int

const (
	Idle State = iota
	Animating
	Completed
	Cancelled
)

var stateNames = [...]string{
	Idle:      "idle",
	Animating: "animating",
	Completed: "completed",
	Cancelled: "cancelled",
}

func (s State) String() string {
	if s.valid() {
		return stateNames[s]
	}
	return fmt.Sprintf("state(%d)", int(s))
}

func (s State) valid() bool {
	return s >= Idle && s <= Cancelled
}

// ParseState maps a name produced by String back to a State.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return Idle, dynamo.InvalidArgument("progress.ParseState", "state", name, "unknown state")
}

func (s State) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, dynamo.InvalidArgument("progress.State", "state", int(s), "unknown state")
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	v, err := ParseState(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
