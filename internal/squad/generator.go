// Package squad generates team rosters and computes team ratings.
package squad

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Position is a player's playing position.
type Position string

const (
	Goalkeeper Position = "GK"
	Defender   Position = "DF"
	Midfielder Position = "MD"
	Attacker   Position = "AT"
)

// Squad shape.
const (
	Goalkeepers = 3
	Defenders   = 8
	Midfielders = 8
	Attackers   = 4
	Size        = Goalkeepers + Defenders + Midfielders + Attackers
)

const (
	maxNameAttempts = 50

	naturalRatingMin = 60
	naturalRatingMax = 95
	otherRatingMin   = 10
	otherRatingMax   = 55
)

// Ratings holds a player's rating for every position.
type Ratings struct {
	GK int `json:"GK"`
	DF int `json:"DF"`
	MD int `json:"MD"`
	AT int `json:"AT"`
}

// For returns the rating at the given position.
func (r Ratings) For(p Position) int {
	switch p {
	case Goalkeeper:
		return r.GK
	case Defender:
		return r.DF
	case Midfielder:
		return r.MD
	case Attacker:
		return r.AT
	default:
		return 0
	}
}

// Player is a generated squad member.
type Player struct {
	Name            string
	NaturalPosition Position
	Ratings         Ratings
	IsCaptain       bool
}

// CanScore reports whether the player is picked as a goal scorer.
func (p Position) CanScore() bool {
	return p == Midfielder || p == Attacker
}

// Generator builds squads. It is safe for concurrent use.
type Generator struct {
	mu    sync.Mutex
	rng   *rand.Rand
	pools *Pools
}

// NewGenerator creates a generator drawing from the embedded name pools.
// A nil rng is replaced by a time-seeded source.
func NewGenerator(rng *rand.Rand) *Generator {
	return NewGeneratorWithPools(rng, DefaultPools())
}

// NewGeneratorWithPools creates a generator drawing from the given pools.
func NewGeneratorWithPools(rng *rand.Rand, pools *Pools) *Generator {
	if rng == nil {
		//nolint:gosec // G404: squad values are cosmetic
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, pools: pools}
}

// Generate returns a full squad for the country: goalkeepers first, then
// defenders, midfielders and attackers, with exactly one outfield captain.
func (g *Generator) Generate(country string) []Player {
	g.mu.Lock()
	defer g.mu.Unlock()

	pool := g.pools.Lookup(country)
	used := make(map[string]struct{}, Size)
	players := make([]Player, 0, Size)

	for _, slot := range []struct {
		pos   Position
		count int
	}{
		{Goalkeeper, Goalkeepers},
		{Defender, Defenders},
		{Midfielder, Midfielders},
		{Attacker, Attackers},
	} {
		for i := 0; i < slot.count; i++ {
			players = append(players, Player{
				Name:            g.name(pool, used),
				NaturalPosition: slot.pos,
				Ratings:         g.ratings(slot.pos),
			})
		}
	}

	outfield := Size - Goalkeepers
	players[Goalkeepers+g.rng.Intn(outfield)].IsCaptain = true

	return players
}

// name draws a name not yet used in this squad, appending a number once
// the attempts run out.
func (g *Generator) name(pool NamePool, used map[string]struct{}) string {
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		full := g.drawName(pool)
		if _, taken := used[full]; !taken {
			used[full] = struct{}{}
			return full
		}
	}
	full := fmt.Sprintf("%s %d", g.drawName(pool), g.rng.Intn(100))
	used[full] = struct{}{}
	return full
}

func (g *Generator) drawName(pool NamePool) string {
	first := pool.FirstNames[g.rng.Intn(len(pool.FirstNames))]
	last := pool.LastNames[g.rng.Intn(len(pool.LastNames))]
	return first + " " + last
}

func (g *Generator) ratings(natural Position) Ratings {
	rate := func(p Position) int {
		if p == natural {
			return naturalRatingMin + g.rng.Intn(naturalRatingMax-naturalRatingMin+1)
		}
		return otherRatingMin + g.rng.Intn(otherRatingMax-otherRatingMin+1)
	}
	return Ratings{
		GK: rate(Goalkeeper),
		DF: rate(Defender),
		MD: rate(Midfielder),
		AT: rate(Attacker),
	}
}

// TeamRating is the rounded mean of every player's natural-position rating.
func TeamRating(players []Player) int {
	if len(players) == 0 {
		return 0
	}
	total := 0
	for _, p := range players {
		total += p.Ratings.For(p.NaturalPosition)
	}
	return int(math.Round(float64(total) / float64(len(players))))
}
