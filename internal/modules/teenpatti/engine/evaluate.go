package engine

import "sort"

// HandType classifies a hand. The numeric value is the rank order used for
// winner comparison: higher beats lower.
type HandType int

const (
	NoHandMatch    HandType = 0
	HighCard       HandType = 1
	Pair           HandType = 2
	Flush          HandType = 3
	Straight       HandType = 4
	StraightFlush  HandType = 5
	ThreeOfAKind   HandType = 6
	ThreeOfKindAce HandType = 7
	FourOfAKind    HandType = 8
	FullHouse      HandType = 9
	RoyalFlush     HandType = 10
)

var handTypeNames = map[HandType]string{
	NoHandMatch:    "no_hand_match",
	HighCard:       "high_card",
	Pair:           "pair",
	Flush:          "flush",
	Straight:       "straight",
	StraightFlush:  "straight_flush",
	ThreeOfAKind:   "three_of_a_kind",
	ThreeOfKindAce: "three_of_kind_ace",
	FourOfAKind:    "four_of_a_kind",
	FullHouse:      "full_house",
	RoyalFlush:     "royal_flush",
}

func (t HandType) String() string {
	return handTypeNames[t]
}

// HandEvaluation is the outcome of classifying a hand.
// WinningCards is the subset that produced the type; RemainingCards the rest.
type HandEvaluation struct {
	Type           HandType
	WinningCards   []Card
	RemainingCards []Card
}

// sortedDesc returns the cards ordered by rank, highest first. Order among
// equal ranks follows the input, which keeps the suit tie-break stable.
func sortedDesc(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank > out[j].Rank
	})
	return out
}

// Evaluate3 classifies a 3-card hand. Input order does not matter.
func Evaluate3(hand Hand) HandEvaluation {
	cards := sortedDesc(hand[:]) // r0 >= r1 >= r2
	r0, r1, r2 := cards[0].Rank, cards[1].Rank, cards[2].Rank

	isFlush := cards[0].Suit == cards[1].Suit && cards[1].Suit == cards[2].Suit
	isTrips := r0 == r1 && r1 == r2
	// Three consecutive ranks, or the ace-low wheel {A,3,2}.
	isStraight := (r0 == r1+1 && r1 == r2+1) ||
		(r0 == Ace && r1 == 3 && r2 == 2)

	switch {
	case isTrips && r0 == Ace:
		return HandEvaluation{Type: ThreeOfKindAce, WinningCards: cards}
	case isTrips:
		return HandEvaluation{Type: ThreeOfAKind, WinningCards: cards}
	case isStraight && isFlush:
		return HandEvaluation{Type: StraightFlush, WinningCards: cards}
	case isStraight:
		return HandEvaluation{Type: Straight, WinningCards: cards}
	case isFlush:
		return HandEvaluation{Type: Flush, WinningCards: cards}
	case r0 == r1:
		return HandEvaluation{Type: Pair, WinningCards: cards[:2], RemainingCards: cards[2:]}
	case r1 == r2:
		return HandEvaluation{Type: Pair, WinningCards: cards[1:], RemainingCards: cards[:1]}
	default:
		return HandEvaluation{Type: HighCard, WinningCards: cards[:1], RemainingCards: cards[1:]}
	}
}
