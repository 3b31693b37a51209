package dice

import "fmt"

// Kind identifies a die type. The set is closed; every dispatch over Kind
// handles all five members.
type Kind int

const (
	D4 Kind = iota
	D6
	D8
	D12
	D20
)

// DefaultKind is used when a roll request names an unknown die type.
const DefaultKind = D6

// Kinds returns all supported kinds in ascending side order.
func Kinds() []Kind {
	return []Kind{D4, D6, D8, D12, D20}
}

// Sides returns the number of faces, which is also the maximum rolled value.
func (k Kind) Sides() int {
	switch k {
	case D4:
		return 4
	case D6:
		return 6
	case D8:
		return 8
	case D12:
		return 12
	case D20:
		return 20
	default:
		return DefaultKind.Sides()
	}
}

func (k Kind) String() string {
	return fmt.Sprintf("d%d", k.Sides())
}

// ParseKind maps a name like "d6" or "6" to its Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "d4", "4":
		return D4, nil
	case "d6", "6":
		return D6, nil
	case "d8", "8":
		return D8, nil
	case "d12", "12":
		return D12, nil
	case "d20", "20":
		return D20, nil
	default:
		return DefaultKind, fmt.Errorf("dice: unknown kind %q", s)
	}
}
