package roll

import "github.com/SeokHunPark/dicebox/internal/phys"

// ContactKind labels what a die hit.
type ContactKind int

const (
	ContactDice ContactKind = iota
	ContactFloor
	ContactWall
)

func (k ContactKind) String() string {
	switch k {
	case ContactDice:
		return "dice"
	case ContactFloor:
		return "floor"
	default:
		return "wall"
	}
}

// Event is one classified collision, reported to the embedding
// application's sink. X is the horizontal contact coordinate, kept for
// stereo placement downstream; the engine attaches no meaning to it.
type Event struct {
	Kind  ContactKind
	Speed float64
	X     float64
}

// Sink receives classified collision events. The engine never decides
// what to do with them; a nil sink is valid and drops everything.
type Sink interface {
	OnCollision(Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(Event)

func (f SinkFunc) OnCollision(e Event) { f(e) }

// Classify labels a raw contact by the role tags of its bodies. It
// returns ok=false for self contacts and contacts without a die, which
// carry no meaning for the embedding application.
func Classify(c phys.Contact) (Event, bool) {
	if c.A == nil || c.B == nil || c.A == c.B {
		return Event{}, false
	}

	a, b := c.A, c.B
	if a.Role != phys.RoleDie {
		a, b = b, a
	}
	if a.Role != phys.RoleDie {
		return Event{}, false
	}

	speed := c.Speed
	if speed < 0 {
		speed = 0
	}
	ev := Event{Speed: speed, X: c.Point.X()}

	switch b.Role {
	case phys.RoleDie:
		ev.Kind = ContactDice
	case phys.RoleFloor:
		ev.Kind = ContactFloor
	case phys.RoleWall:
		ev.Kind = ContactWall
	}
	return ev, true
}
