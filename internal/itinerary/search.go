// Package itinerary finds multi-day trips that see each requested team
// play exactly once, on distinct dates, inside a sliding window of days.
package itinerary

import (
	"sort"
	"time"

	"github.com/derekprior/roadtrip/internal/schedule"
)

// Find returns at most one itinerary per anchor date, in anchor order.
//
// Anchors are the distinct dates left after filtering. For each anchor the
// window runs MaxSpan days from it, and the first assignment of distinct
// window dates to the teams (in team order, trying dates earliest first)
// that gives every team a game wins. Games are matched by calendar day;
// the time of day and location of a date are ignored. An empty result is
// not an error.
func Find(apps []schedule.Appearance, c Constraints) ([]Itinerary, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	span := c.Span()

	rows := c.filter(apps)
	sort.SliceStable(rows, func(i, j int) bool {
		return schedule.Day(rows[i].Date).Before(schedule.Day(rows[j].Date))
	})

	var results []Itinerary
	for lo := 0; lo < len(rows); {
		start := schedule.Day(rows[lo].Date)
		end := start.AddDate(0, 0, span-1)

		hi := lo
		for hi < len(rows) && !schedule.Day(rows[hi].Date).After(end) {
			hi++
		}

		if games, ok := assign(c.Teams, rows[lo:hi]); ok {
			results = append(results, Itinerary{Start: start, End: end, Games: games})
		}

		// next anchor is the next distinct date
		next := lo + 1
		for next < len(rows) && schedule.Day(rows[next].Date).Equal(start) {
			next++
		}
		lo = next
	}
	return results, nil
}

type slot struct {
	team string
	date time.Time
}

// assign searches for one game per team on pairwise distinct days drawn
// from window, which must be sorted by day.
func assign(teams []string, window []schedule.Appearance) ([]schedule.Appearance, bool) {
	var dates []time.Time
	first := make(map[slot]schedule.Appearance)
	for _, a := range window {
		d := schedule.Day(a.Date)
		if len(dates) == 0 || !dates[len(dates)-1].Equal(d) {
			dates = append(dates, d)
		}
		k := slot{a.Team, d}
		if _, ok := first[k]; !ok {
			first[k] = a
		}
	}
	if len(dates) < len(teams) {
		return nil, false
	}

	s := &search{
		teams: teams,
		dates: dates,
		games: first,
		used:  make([]bool, len(dates)),
		picks: make([]schedule.Appearance, 0, len(teams)),
	}
	if !s.place(0) {
		return nil, false
	}
	return s.picks, true
}

// search walks ordered selections of dates depth first, in the same order
// as enumerating every permutation of len(teams) dates lexicographically,
// abandoning a prefix as soon as its last team has no game that day.
type search struct {
	teams []string
	dates []time.Time
	games map[slot]schedule.Appearance
	used  []bool
	picks []schedule.Appearance
}

func (s *search) place(i int) bool {
	if i == len(s.teams) {
		return true
	}
	for d, date := range s.dates {
		if s.used[d] {
			continue
		}
		g, ok := s.games[slot{s.teams[i], date}]
		if !ok {
			continue
		}
		s.used[d] = true
		s.picks = append(s.picks, g)
		if s.place(i + 1) {
			return true
		}
		s.picks = s.picks[:len(s.picks)-1]
		s.used[d] = false
	}
	return false
}
