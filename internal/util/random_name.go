package util

import (
	"fmt"

	"deluxeblackjack-server/internal/rng"
)

var random rng.Generator = rng.Crypto{}

var adjectives = []string{
	"Lucky", "Bold", "Quick", "Cool", "Daring", "Sly", "Smooth", "Golden", "Silver", "Royal",
	"High-Rolling", "All-In", "Wild", "Sharp", "Steady", "Clever", "Fearless", "Hot", "Icy",
	"Velvet", "Neon", "Midnight", "Double", "Split", "Soft", "Ace-High", "Charmed", "Grand",
}

var nouns = []string{
	"Ace", "Dealer", "Shark", "Whale", "Gambler", "Shuffler", "Spade", "Diamond", "Club",
	"Heart", "Joker", "King", "Queen", "Jack", "Chip", "Croupier", "Bettor", "Bankroll",
	"Shoe", "Cutcard", "Highroller", "Pitboss", "Counter", "Maverick", "Roller",
}

// GetRandomName returns a display name for a player who hasn't picked one
func GetRandomName() string {
	return fmt.Sprintf("%s %s", adjectives[random.Intn(len(adjectives))], nouns[random.Intn(len(nouns))])
}
