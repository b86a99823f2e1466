package resolver

import "fmt"

const (
	firstHalfEventChance  = 0.15
	secondHalfEventChance = 0.18
)

var secondHalfEvents = []string{
	"Substitution being prepared on the sidelines",
	"Yellow card shown for a reckless challenge",
	"Free kick in a dangerous position",
	"Header goes just over the crossbar",
	"Counter-attack leads to a shooting opportunity",
	"The crowd is on their feet as the action intensifies",
}

// timeline synthesizes the minute-by-minute flavor events of a played match.
// Goals are not part of it.
func (r *Resolver) timeline(teamA, teamB string) []string {
	events := []string{
		"The teams walk out onto the pitch for this African Nations League clash",
		fmt.Sprintf("National anthems play as %s and %s prepare for battle", teamA, teamB),
	}

	for minute := 1; minute <= 45; minute++ {
		if minute == 1 {
			events = append(events, "1': The referee blows the whistle and we're underway!")
		}
		if r.rng.Float64() < firstHalfEventChance {
			events = append(events, r.firstHalfEvent(minute, teamA, teamB))
		}
	}

	events = append(events,
		"45+1': The referee blows for halftime",
		"Halftime analysis: Both teams looking for openings in a tight contest",
	)

	for minute := 46; minute <= 90; minute++ {
		if minute == 46 {
			events = append(events, "46': Second half begins!")
		}
		if r.rng.Float64() < secondHalfEventChance {
			events = append(events, fmt.Sprintf("%d': %s", minute, secondHalfEvents[r.rng.Intn(len(secondHalfEvents))]))
		}
	}

	return append(events, "90+3': The final whistle blows!")
}

func (r *Resolver) firstHalfEvent(minute int, teamA, teamB string) string {
	switch r.rng.Intn(6) {
	case 0:
		team := teamA
		if r.rng.Float64() > 0.5 {
			team = teamB
		}
		return fmt.Sprintf("%d': Great passing movement from %s", minute, team)
	case 1:
		return fmt.Sprintf("%d': Dangerous cross into the box, but the defense clears", minute)
	case 2:
		return fmt.Sprintf("%d': Long range effort goes just wide of the post", minute)
	case 3:
		return fmt.Sprintf("%d': Tactical foul stops a promising counter-attack", minute)
	case 4:
		return fmt.Sprintf("%d': Corner kick awarded after a deflected shot", minute)
	default:
		return fmt.Sprintf("%d': Brilliant save from the goalkeeper!", minute)
	}
}
