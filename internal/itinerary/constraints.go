package itinerary

import (
	"errors"
	"fmt"
	"time"

	"github.com/derekprior/roadtrip/internal/schedule"
)

// ErrInvalidConstraints is wrapped by every constraint validation error so
// callers can tell a malformed query from a query with no results.
var ErrInvalidConstraints = errors.New("invalid search constraints")

var (
	ErrNoTeams            = fmt.Errorf("%w: at least one team is required", ErrInvalidConstraints)
	ErrDuplicateTeam      = fmt.Errorf("%w: duplicate team", ErrInvalidConstraints)
	ErrInvalidSpan        = fmt.Errorf("%w: max span must be at least 1 day", ErrInvalidConstraints)
	ErrUnknownRequirement = fmt.Errorf("%w: home/away requirement for a team not being searched", ErrInvalidConstraints)
)

// Constraints is a single itinerary query.
type Constraints struct {
	// Teams to see, one game each. Order decides which team is assigned
	// first during the search.
	Teams []string
	// Days restricts games to these days of the week. Empty means any day.
	Days []time.Weekday
	// MaxSpan is the itinerary length in days. Zero means len(Teams).
	MaxSpan int
	// Home and Away list teams that must be seen playing at home or away.
	Home []string
	Away []string
	// Months restricts games to these months. Empty means the whole season.
	Months []time.Month
}

// Span returns the effective itinerary length in days.
func (c Constraints) Span() int {
	if c.MaxSpan == 0 {
		return len(c.Teams)
	}
	return c.MaxSpan
}

// Validate reports why c cannot be searched, or nil.
func Validate(c Constraints) error {
	if len(c.Teams) == 0 {
		return ErrNoTeams
	}
	if c.MaxSpan < 0 {
		return fmt.Errorf("%w (got %d)", ErrInvalidSpan, c.MaxSpan)
	}

	requested := make(map[string]bool, len(c.Teams))
	for _, team := range c.Teams {
		if requested[team] {
			return fmt.Errorf("%w %q", ErrDuplicateTeam, team)
		}
		requested[team] = true
	}

	for _, list := range [][]string{c.Home, c.Away} {
		for _, team := range list {
			if !requested[team] {
				return fmt.Errorf("%w %q", ErrUnknownRequirement, team)
			}
		}
	}
	return nil
}

// allows reports whether a survives every row filter in c.
func (c Constraints) allows(a schedule.Appearance, teams, home, away map[string]bool, days map[time.Weekday]bool) bool {
	if !teams[a.Team] {
		return false
	}
	if len(days) > 0 && !days[a.Weekday] {
		return false
	}
	if home[a.Team] && a.Location != schedule.Home {
		return false
	}
	if away[a.Team] && a.Location != schedule.Away {
		return false
	}
	return true
}

// filter returns the appearances c lets through, in input order.
func (c Constraints) filter(apps []schedule.Appearance) []schedule.Appearance {
	teams := stringSet(c.Teams)
	home := stringSet(c.Home)
	away := stringSet(c.Away)
	days := make(map[time.Weekday]bool, len(c.Days))
	for _, d := range c.Days {
		days[d] = true
	}

	var out []schedule.Appearance
	for _, a := range schedule.FilterMonths(apps, c.Months) {
		if c.allows(a, teams, home, away, days) {
			out = append(out, a)
		}
	}
	return out
}

func stringSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, s := range items {
		set[s] = true
	}
	return set
}
