package seeding

// State состояние засева календаря
type State int32

const (
	StateUnseeded State = iota
	StateSeeding
	StateSeeded
)

func (s State) String() string {
	switch s {
	case StateUnseeded:
		return "unseeded"
	case StateSeeding:
		return "seeding"
	case StateSeeded:
		return "seeded"
	default:
		return "unknown"
	}
}
