package games

// Card is a playing card with rank and suit.
type Card struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

// String returns a human-readable card like "♦2" or "♠A".
func (c Card) String() string {
	return c.Suit + c.Rank
}

// Color returns "red" for diamonds and hearts, "black" otherwise.
func (c Card) Color() string {
	if c.Suit == "♦" || c.Suit == "♥" {
		return "red"
	}
	return "black"
}

var cardSuits = []string{"♦", "♥", "♠", "♣"}

var cardRanks = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

// The full 52-card deck in index order: ♦2, ♥2, ♠2, ♣2, ♦3, ...
var cardDeck [52]Card

func init() {
	i := 0
	for _, rank := range cardRanks {
		for _, suit := range cardSuits {
			cardDeck[i] = Card{Rank: rank, Suit: suit}
			i++
		}
	}
}

func validCardRank(rank string) bool {
	for _, r := range cardRanks {
		if r == rank {
			return true
		}
	}
	return false
}
