package engine

import "math/rand"

// Outcome is the immutable result of dealing one round: both hands, their
// evaluations, the 6-card bonus evaluation and the winner. It is computed
// once at deal time and referenced by every settlement of the round.
type Outcome struct {
	HandA Hand
	HandB Hand
	EvalA HandEvaluation
	EvalB HandEvaluation
	Bonus HandEvaluation

	Winner Winner
}

// Deal draws a fresh shuffled deck and computes the full round outcome.
func Deal(rnd *rand.Rand) *Outcome {
	handA, handB := DealHands(rnd)

	union := make([]Card, 0, 6)
	union = append(union, handA[:]...)
	union = append(union, handB[:]...)

	return &Outcome{
		HandA:  handA,
		HandB:  handB,
		EvalA:  Evaluate3(handA),
		EvalB:  Evaluate3(handB),
		Bonus:  Evaluate6(union),
		Winner: CompareHands(handA, handB),
	}
}
