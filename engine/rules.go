package engine

const (
	NumSeats  = 4
	HandSize  = 13
	PassCount = 3

	// MoonPoints is the total point value of all hearts plus the queen
	// of spades; a seat whose won pile is worth this much has shot the
	// moon.
	MoonPoints = 26

	// DefaultPointLimit ends the match once any seat reaches it.
	DefaultPointLimit = 100
)

// Rules holds the fixed match parameters. The ruleset itself is the
// standard one (4 seats, pass 3, moon shooting on); only the point
// limit is adjustable, and it defaults to 100.
type Rules struct {
	PointLimit int16
}

// DefaultRules returns the standard 100-point rules.
func DefaultRules() Rules {
	return Rules{PointLimit: DefaultPointLimit}
}

func (r Rules) pointLimit() int16 {
	if r.PointLimit == 0 {
		return DefaultPointLimit
	}
	return r.PointLimit
}

// PassDirection is the seat offset cards travel during the passing
// phase: each seat's selection goes to (seat + direction) mod 4.
type PassDirection uint8

const (
	PassHold   PassDirection = 0
	PassLeft   PassDirection = 1
	PassAcross PassDirection = 2
	PassRight  PassDirection = 3
)

// passCycle is the round-over-round direction order.
var passCycle = [4]PassDirection{PassLeft, PassRight, PassAcross, PassHold}

// PassDirectionForRound returns the direction in effect for the given
// zero-based round number.
func PassDirectionForRound(round int) PassDirection {
	return passCycle[round%len(passCycle)]
}

// Target returns the seat that receives the given seat's passed cards.
func (d PassDirection) Target(seat uint8) uint8 {
	return (seat + uint8(d)) % NumSeats
}

func (d PassDirection) String() string {
	switch d {
	case PassLeft:
		return "left"
	case PassAcross:
		return "across"
	case PassRight:
		return "right"
	}
	return "hold"
}
