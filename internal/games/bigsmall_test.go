package games

import "testing"

// All 216 three-dice outcomes must resolve to exactly one of Big, Small or
// Triple, with the triple override beating the sum ranges.
func TestBigSmallExhaustive(t *testing.T) {
	game := &BigSmallGame{}

	for a := 1; a <= 6; a++ {
		for b := 1; b <= 6; b++ {
			for c := 1; c <= 6; c++ {
				out := Outcome{Kind: BigSmallTriple, Dice: []int{a, b, c}}
				sum := a + b + c
				triple := a == b && b == c

				big, err := game.Resolve(out, Selection{Side: "big"})
				if err != nil {
					t.Fatalf("big %v: %v", out.Dice, err)
				}
				small, err := game.Resolve(out, Selection{Side: "small"})
				if err != nil {
					t.Fatalf("small %v: %v", out.Dice, err)
				}
				trip, err := game.Resolve(out, Selection{Side: "triple"})
				if err != nil {
					t.Fatalf("triple %v: %v", out.Dice, err)
				}

				winners := 0
				for _, r := range []Resolution{big, small, trip} {
					if r.Won {
						winners++
					}
				}
				if winners != 1 {
					t.Fatalf("dice %v: expected exactly one winning side, got %d", out.Dice, winners)
				}

				switch {
				case triple:
					if !trip.Won || trip.Multiplier != 150.0 {
						t.Errorf("dice %v: triple should pay 150x, got %+v", out.Dice, trip)
					}
					// A Big or Small bet on a triple roll always loses,
					// even when the sum lands in its range.
					if big.Won || small.Won {
						t.Errorf("dice %v: big/small must lose on a triple", out.Dice)
					}
				case sum >= 11 && sum <= 17:
					if !big.Won || big.Multiplier != 1.95 {
						t.Errorf("dice %v (sum %d): big should pay 1.95x, got %+v", out.Dice, sum, big)
					}
				case sum >= 4 && sum <= 10:
					if !small.Won || small.Multiplier != 1.95 {
						t.Errorf("dice %v (sum %d): small should pay 1.95x, got %+v", out.Dice, sum, small)
					}
				default:
					t.Errorf("dice %v (sum %d): left unresolved", out.Dice, sum)
				}
			}
		}
	}
}

func TestBigSmallGenerateShape(t *testing.T) {
	game := &BigSmallGame{}
	out, err := game.Generate(&scriptedSource{ints: []int{0, 3, 5}}, Selection{Side: "big"})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{1, 4, 6}
	for i, d := range out.Dice {
		if d != want[i] {
			t.Errorf("die %d = %d, want %d", i, d, want[i])
		}
	}
}

func TestBigSmallBadSide(t *testing.T) {
	game := &BigSmallGame{}
	if err := game.ValidateSelection(Selection{Side: "medium"}); err == nil {
		t.Error("expected error for unknown side")
	}
}
