package game

import "fmt"

// Seat identifies one of the two players. PlayerOne moves first.
type Seat int

const (
	PlayerOne Seat = iota
	PlayerTwo
)

// NumSeats is the number of players.
const NumSeats = 2

func (s Seat) Valid() bool {
	return s == PlayerOne || s == PlayerTwo
}

// Other returns the opponent's seat.
func (s Seat) Other() Seat {
	return 1 - s
}

func (s Seat) String() string {
	switch s {
	case PlayerOne:
		return "P1"
	case PlayerTwo:
		return "P2"
	default:
		return fmt.Sprintf("Seat(%d)", int(s))
	}
}
