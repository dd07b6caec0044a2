package schedule

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidGame is wrapped by every error BuildIndex returns for a
// malformed schedule row.
var ErrInvalidGame = errors.New("invalid schedule row")

// Location says which side of a game a team is on.
type Location int

const (
	Home Location = iota
	Away
)

func (l Location) String() string {
	if l == Away {
		return "Away"
	}
	return "Home"
}

// ParseLocation accepts "Home" or "Away" in any case.
func ParseLocation(s string) (Location, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "home":
		return Home, nil
	case "away":
		return Away, nil
	default:
		return Home, fmt.Errorf("unknown location %q", s)
	}
}

// RawGame is one row of a source schedule: a single game between a home
// and an away team.
type RawGame struct {
	Home      string    `validate:"required"`
	Away      string    `validate:"required,nefield=Home"`
	Date      time.Time `validate:"required"`
	Weekday   string    // optional; derived from Date when empty
	Venue     string    `validate:"required"`
	LocalTime string
}

// Appearance is one team's participation in one game.
type Appearance struct {
	Team      string
	Opponent  string
	Location  Location
	Date      time.Time
	Weekday   time.Weekday
	Venue     string
	LocalTime string
}

// Stadium returns the team whose home park hosts the game.
func (a Appearance) Stadium() string {
	if a.Location == Home {
		return a.Team
	}
	return a.Opponent
}

// Matchup renders the game as "Away @ Home".
func (a Appearance) Matchup() string {
	if a.Location == Home {
		return fmt.Sprintf("%s @ %s", a.Opponent, a.Team)
	}
	return fmt.Sprintf("%s @ %s", a.Team, a.Opponent)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// BuildIndex turns each raw game into two appearances, the home side
// followed by the away side. Rows are not filtered or reordered.
func BuildIndex(raw []RawGame) ([]Appearance, error) {
	apps := make([]Appearance, 0, 2*len(raw))
	for i, g := range raw {
		if err := validate.Struct(g); err != nil {
			return nil, fmt.Errorf("%w %d: %s", ErrInvalidGame, i+1, describe(err))
		}

		date := Day(g.Date)
		weekday := date.Weekday()
		if g.Weekday != "" {
			wd, err := ParseWeekday(g.Weekday)
			if err != nil {
				return nil, fmt.Errorf("%w %d: %v", ErrInvalidGame, i+1, err)
			}
			if wd != weekday {
				return nil, fmt.Errorf("%w %d: %s is a %s, not %s",
					ErrInvalidGame, i+1, date.Format("2006-01-02"), weekday, wd)
			}
		}

		for _, side := range []Location{Home, Away} {
			team, opp := g.Home, g.Away
			if side == Away {
				team, opp = g.Away, g.Home
			}
			apps = append(apps, Appearance{
				Team:      team,
				Opponent:  opp,
				Location:  side,
				Date:      date,
				Weekday:   weekday,
				Venue:     g.Venue,
				LocalTime: g.LocalTime,
			})
		}
	}
	return apps, nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("missing %s", fe.Field()))
		case "nefield":
			msgs = append(msgs, fmt.Sprintf("%s must differ from %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, ", ")
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Teams returns the distinct teams in apps, sorted by name.
func Teams(apps []Appearance) []string {
	seen := make(map[string]bool)
	var teams []string
	for _, a := range apps {
		if !seen[a.Team] {
			seen[a.Team] = true
			teams = append(teams, a.Team)
		}
	}
	sort.Strings(teams)
	return teams
}

// FilterMonths keeps appearances played in one of months. An empty month
// list keeps everything.
func FilterMonths(apps []Appearance, months []time.Month) []Appearance {
	if len(months) == 0 {
		return apps
	}
	keep := make(map[time.Month]bool, len(months))
	for _, m := range months {
		keep[m] = true
	}
	var out []Appearance
	for _, a := range apps {
		if keep[a.Date.Month()] {
			out = append(out, a)
		}
	}
	return out
}
