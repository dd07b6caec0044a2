package itinerary

import (
	"fmt"
	"sort"
	"time"

	"github.com/segmentio/fasthash/jody"

	"github.com/derekprior/roadtrip/internal/schedule"
)

// Itinerary is one game per requested team, in team order, on distinct
// dates between Start and End inclusive.
type Itinerary struct {
	Start time.Time
	End   time.Time
	Games []schedule.Appearance
}

// Span returns the number of days covered, counting both ends.
func (it Itinerary) Span() int {
	return int(it.End.Sub(it.Start).Hours()/24) + 1
}

// ByDate returns a copy of the games ordered by date.
func (it Itinerary) ByDate() []schedule.Appearance {
	games := make([]schedule.Appearance, len(it.Games))
	copy(games, it.Games)
	sort.SliceStable(games, func(i, j int) bool {
		return games[i].Date.Before(games[j].Date)
	})
	return games
}

// Key fingerprints the itinerary's dates and games.
func (it Itinerary) Key() uint64 {
	h := jody.HashUint64(uint64(it.Start.Unix()))
	h = jody.AddUint64(h, uint64(it.End.Unix()))
	for _, g := range it.Games {
		h = jody.AddString64(h, g.Team)
		h = jody.AddString64(h, g.Opponent)
		h = jody.AddUint64(h, uint64(g.Date.Unix()))
		h = jody.AddUint64(h, uint64(g.Location))
	}
	return h
}

func (it Itinerary) String() string {
	return fmt.Sprintf("%s to %s (%d games)",
		it.Start.Format("2006-01-02"), it.End.Format("2006-01-02"), len(it.Games))
}

// Key fingerprints a query, for caching search results.
func (c Constraints) Key() uint64 {
	h := jody.HashUint64(uint64(c.Span()))
	h = jody.AddUint64(h, uint64(len(c.Teams)))
	for _, t := range c.Teams {
		h = jody.AddString64(h, t)
	}
	h = jody.AddUint64(h, weekdayMask(c.Days))
	h = jody.AddUint64(h, monthMask(c.Months))
	// the separator keeps Home [X] and Away [X] apart
	for _, t := range sortedCopy(c.Home) {
		h = jody.AddString64(h, "home:"+t)
	}
	for _, t := range sortedCopy(c.Away) {
		h = jody.AddString64(h, "away:"+t)
	}
	return h
}

func weekdayMask(days []time.Weekday) uint64 {
	var m uint64
	for _, d := range days {
		m |= 1 << uint(d)
	}
	return m
}

func monthMask(months []time.Month) uint64 {
	var m uint64
	for _, mo := range months {
		m |= 1 << uint(mo)
	}
	return m
}

func sortedCopy(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	sort.Strings(out)
	return out
}

// Check lists the ways it fails to satisfy c. A nil result means the
// itinerary is consistent with the query.
func Check(it Itinerary, c Constraints) []string {
	var problems []string

	if span := it.Span(); span != c.Span() {
		problems = append(problems, fmt.Sprintf("spans %d days, want %d", span, c.Span()))
	}
	if len(it.Games) != len(c.Teams) {
		problems = append(problems, fmt.Sprintf("has %d games, want %d", len(it.Games), len(c.Teams)))
	}

	home := stringSet(c.Home)
	away := stringSet(c.Away)
	days := make(map[time.Weekday]bool, len(c.Days))
	for _, d := range c.Days {
		days[d] = true
	}
	months := make(map[time.Month]bool, len(c.Months))
	for _, m := range c.Months {
		months[m] = true
	}

	seen := make(map[time.Time]string)
	for i, g := range it.Games {
		if i < len(c.Teams) && g.Team != c.Teams[i] {
			problems = append(problems, fmt.Sprintf("game %d is for %s, want %s", i+1, g.Team, c.Teams[i]))
		}
		d := schedule.Day(g.Date)
		if d.Before(schedule.Day(it.Start)) || d.After(schedule.Day(it.End)) {
			problems = append(problems, fmt.Sprintf("%s plays %s, outside %s to %s",
				g.Team, g.Date.Format("01/02"), it.Start.Format("01/02"), it.End.Format("01/02")))
		}
		if other, ok := seen[d]; ok {
			problems = append(problems, fmt.Sprintf("%s and %s both play %s", other, g.Team, g.Date.Format("01/02")))
		}
		seen[d] = g.Team
		if home[g.Team] && g.Location != schedule.Home {
			problems = append(problems, fmt.Sprintf("%s must be home on %s", g.Team, g.Date.Format("01/02")))
		}
		if away[g.Team] && g.Location != schedule.Away {
			problems = append(problems, fmt.Sprintf("%s must be away on %s", g.Team, g.Date.Format("01/02")))
		}
		if len(days) > 0 && !days[g.Weekday] {
			problems = append(problems, fmt.Sprintf("%s plays on a %s", g.Team, g.Weekday))
		}
		if len(months) > 0 && !months[g.Date.Month()] {
			problems = append(problems, fmt.Sprintf("%s plays in %s", g.Team, g.Date.Month()))
		}
	}
	return problems
}
