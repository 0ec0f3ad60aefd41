package engine

import (
	"fmt"
	"math/bits"
	"strings"
)

// Suit constants, packed into the upper 4 bits of Card.
const (
	SuitClubs    uint8 = 0
	SuitDiamonds uint8 = 1
	SuitSpades   uint8 = 2
	SuitHearts   uint8 = 3
)

// Rank constants, packed into the lower 4 bits of Card. Ranks are the
// face values 2..14 so they compare directly.
const (
	RankTwo   uint8 = 2
	RankThree uint8 = 3
	RankFour  uint8 = 4
	RankFive  uint8 = 5
	RankSix   uint8 = 6
	RankSeven uint8 = 7
	RankEight uint8 = 8
	RankNine  uint8 = 9
	RankTen   uint8 = 10
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
	RankAce   uint8 = 14
)

// Card is a packed uint8: upper 4 bits = suit, lower 4 bits = rank.
type Card uint8

// EmptyCard represents the absence of a card.
const EmptyCard Card = 0xFF

const (
	TwoOfClubs    Card = Card(SuitClubs<<4 | RankTwo)
	QueenOfSpades Card = Card(SuitSpades<<4 | RankQueen)
)

// NewCard constructs a Card from suit and rank.
func NewCard(suit, rank uint8) Card {
	return Card((suit << 4) | (rank & 0x0F))
}

// Suit returns the suit bits (upper 4).
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the rank bits (lower 4).
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Index returns the card's position 0..51 in deck order
// (suit-major, ranks ascending). Used as the card's CardMask bit.
func (c Card) Index() uint8 { return c.Suit()*13 + c.Rank() - 2 }

// CardFromIndex is the inverse of Index.
func CardFromIndex(i uint8) Card {
	return NewCard(i/13, i%13+2)
}

// Points returns the card's scoring value: 1 per heart, 13 for the
// queen of spades, 0 otherwise.
func (c Card) Points() int8 {
	if c.Suit() == SuitHearts {
		return 1
	}
	if c == QueenOfSpades {
		return 13
	}
	return 0
}

var rankChars = [13]byte{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}

var suitLetters = [4]string{"C", "D", "S", "H"}
var suitSymbols = [4]string{"♣", "♦", "♠", "♥"}

// String returns the two-character ASCII form, e.g. "QS".
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	return string(rankChars[c.Rank()-2]) + suitLetters[c.Suit()]
}

// Symbol returns the rank with a suit symbol, e.g. "Q♠".
func (c Card) Symbol() string {
	if c == EmptyCard {
		return "--"
	}
	return string(rankChars[c.Rank()-2]) + suitSymbols[c.Suit()]
}

func parseRank(r byte) (uint8, bool) {
	for i, ch := range rankChars {
		if r == ch {
			return uint8(i) + 2, true
		}
	}
	return 0, false
}

func parseSuit(s string) (uint8, bool) {
	switch s {
	case "C", "♣":
		return SuitClubs, true
	case "D", "♦":
		return SuitDiamonds, true
	case "S", "♠":
		return SuitSpades, true
	case "H", "♥":
		return SuitHearts, true
	}
	return 0, false
}

// ParseCard parses a card from its rank+suit form, accepting either
// ASCII suit letters or suit symbols, case-insensitive ("qs", "Q♠").
func ParseCard(s string) (Card, error) {
	rs := []rune(strings.ToUpper(strings.TrimSpace(s)))
	if len(rs) != 2 {
		return EmptyCard, fmt.Errorf("bad card %q", s)
	}
	rank, ok := parseRank(byte(rs[0]))
	if !ok {
		return EmptyCard, fmt.Errorf("bad rank in %q", s)
	}
	suit, ok := parseSuit(string(rs[1]))
	if !ok {
		return EmptyCard, fmt.Errorf("bad suit in %q", s)
	}
	return NewCard(suit, rank), nil
}

// ParseCards parses a whitespace-separated list of cards.
func ParseCards(s string) ([]Card, error) {
	var cards []Card
	for _, part := range strings.Fields(s) {
		c, err := ParseCard(part)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// FormatCards renders cards space-separated in ASCII form.
func FormatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// ---------------------------------------------------------------------------
// CardMask is a 52-bit set of cards, bit = Card.Index()
// ---------------------------------------------------------------------------

// CardMask is a bitset over the 52-card deck. Bit i corresponds to
// CardFromIndex(i).
type CardMask uint64

// FullDeck has all 52 bits set.
const FullDeck CardMask = (1 << 52) - 1

// SuitMask returns the mask covering all 13 cards of a suit.
func SuitMask(suit uint8) CardMask {
	return CardMask(0x1FFF) << (13 * suit)
}

// MaskOf builds a mask from the given cards.
func MaskOf(cards ...Card) CardMask {
	var m CardMask
	for _, c := range cards {
		m |= 1 << c.Index()
	}
	return m
}

func (m CardMask) Has(c Card) bool { return m&(1<<c.Index()) != 0 }

func (m *CardMask) Add(c Card)    { *m |= 1 << c.Index() }
func (m *CardMask) Remove(c Card) { *m &^= 1 << c.Index() }

// Count returns the number of cards in the set.
func (m CardMask) Count() int { return bits.OnesCount64(uint64(m)) }

// Cards returns the set as a slice in ascending index order
// (suit-major, ranks ascending).
func (m CardMask) Cards() []Card {
	out := make([]Card, 0, m.Count())
	for m != 0 {
		i := uint8(bits.TrailingZeros64(uint64(m)))
		out = append(out, CardFromIndex(i))
		m &= m - 1
	}
	return out
}

// Lowest returns the lowest-index card in the set, or EmptyCard if empty.
func (m CardMask) Lowest() Card {
	if m == 0 {
		return EmptyCard
	}
	return CardFromIndex(uint8(bits.TrailingZeros64(uint64(m))))
}

// Highest returns the highest-index card in the set, or EmptyCard if empty.
func (m CardMask) Highest() Card {
	if m == 0 {
		return EmptyCard
	}
	return CardFromIndex(uint8(63 - bits.LeadingZeros64(uint64(m))))
}

// Points returns the total point value of the set.
func (m CardMask) Points() int {
	pts := (m & SuitMask(SuitHearts)).Count()
	if m.Has(QueenOfSpades) {
		pts += 13
	}
	return pts
}

// SuitGroups renders the set grouped by suit with ranks descending,
// e.g. "♠AQ2 ♥T4 ♦- ♣876".
func (m CardMask) SuitGroups() string {
	var b strings.Builder
	for gi, suit := range [4]uint8{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs} {
		if gi > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(suitSymbols[suit])
		ranks := m & SuitMask(suit)
		if ranks == 0 {
			b.WriteByte('-')
			continue
		}
		for r := RankAce; r >= RankTwo; r-- {
			if ranks.Has(NewCard(suit, r)) {
				b.WriteByte(rankChars[r-2])
			}
		}
	}
	return b.String()
}
