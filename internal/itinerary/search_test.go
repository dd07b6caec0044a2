package itinerary_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/derekprior/roadtrip/internal/itinerary"
	"github.com/derekprior/roadtrip/internal/schedule"
)

func day(m, d int) time.Time {
	return time.Date(2025, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func index(t *testing.T, raw ...schedule.RawGame) []schedule.Appearance {
	t.Helper()
	apps, err := schedule.BuildIndex(raw)
	require.NoError(t, err)
	return apps
}

func game(home, away string, date time.Time) schedule.RawGame {
	return schedule.RawGame{Home: home, Away: away, Date: date, Venue: home + " Park", LocalTime: "19:05"}
}

func TestFind_SingleTeamSingleDay(t *testing.T) {
	apps := index(t, game("TeamX", "TeamY", day(4, 1)))

	res, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX"}, MaxSpan: 1})
	require.NoError(t, err)
	require.Len(t, res, 1)

	it := res[0]
	assert.Equal(t, day(4, 1), it.Start)
	assert.Equal(t, day(4, 1), it.End)
	require.Len(t, it.Games, 1)
	assert.Equal(t, "TeamX", it.Games[0].Team)
	assert.Equal(t, "TeamY", it.Games[0].Opponent)
	assert.Equal(t, schedule.Home, it.Games[0].Location)
	assert.Equal(t, time.Tuesday, it.Games[0].Weekday)
}

func TestFind_TeamWithoutGames(t *testing.T) {
	apps := index(t, game("TeamX", "TeamY", day(4, 1)))

	res, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX", "TeamZ"}})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFind_ConsecutiveDays(t *testing.T) {
	apps := index(t,
		game("TeamX", "TeamA", day(4, 1)),
		game("TeamY", "TeamB", day(4, 2)),
	)

	res, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX", "TeamY"}, MaxSpan: 2})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, day(4, 1), res[0].Start)
	assert.Equal(t, day(4, 2), res[0].End)
	assert.Equal(t, day(4, 1), res[0].Games[0].Date)
	assert.Equal(t, day(4, 2), res[0].Games[1].Date)
}

func TestFind_HomeRequirement(t *testing.T) {
	apps := index(t, game("TeamY", "TeamX", day(4, 1)))

	res, err := itinerary.Find(apps, itinerary.Constraints{
		Teams: []string{"TeamX"},
		Home:  []string{"TeamX"},
	})
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = itinerary.Find(apps, itinerary.Constraints{
		Teams: []string{"TeamX"},
		Away:  []string{"TeamX"},
	})
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestFind_DayFilterExcludesEverything(t *testing.T) {
	apps := index(t,
		game("TeamX", "TeamA", day(4, 1)), // Tuesday
		game("TeamY", "TeamB", day(4, 2)), // Wednesday
	)

	res, err := itinerary.Find(apps, itinerary.Constraints{
		Teams:   []string{"TeamX", "TeamY"},
		Days:    []time.Weekday{time.Saturday},
		MaxSpan: 7,
	})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFind_HomeAndAwayForSameTeam(t *testing.T) {
	apps := index(t,
		game("TeamX", "TeamA", day(4, 1)),
		game("TeamA", "TeamX", day(4, 2)),
	)

	res, err := itinerary.Find(apps, itinerary.Constraints{
		Teams:   []string{"TeamX"},
		Home:    []string{"TeamX"},
		Away:    []string{"TeamX"},
		MaxSpan: 3,
	})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFind_RequirementOnlyAffectsNamedTeam(t *testing.T) {
	apps := index(t,
		game("TeamA", "TeamX", day(4, 1)),
		game("TeamY", "TeamB", day(4, 2)),
		game("TeamB", "TeamY", day(4, 3)),
	)

	res, err := itinerary.Find(apps, itinerary.Constraints{
		Teams:   []string{"TeamX", "TeamY"},
		Home:    []string{"TeamY"},
		MaxSpan: 3,
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, schedule.Away, res[0].Games[0].Location)
	assert.Equal(t, schedule.Home, res[0].Games[1].Location)
	assert.Equal(t, day(4, 2), res[0].Games[1].Date)
}

func TestFind_MonthFilter(t *testing.T) {
	apps := index(t,
		game("TeamX", "TeamA", day(4, 30)),
		game("TeamX", "TeamA", day(5, 1)),
	)

	res, err := itinerary.Find(apps, itinerary.Constraints{
		Teams:  []string{"TeamX"},
		Months: []time.Month{time.May},
	})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, day(5, 1), res[0].Start)
}

func appearance(team string, date time.Time) schedule.Appearance {
	return schedule.Appearance{
		Team:     team,
		Opponent: "TeamZ",
		Location: schedule.Home,
		Date:     date,
		Weekday:  date.Weekday(),
		Venue:    team + " Park",
	}
}

func TestFind_MatchesByCalendarDay(t *testing.T) {
	t.Run("games later the same day are the same date", func(t *testing.T) {
		apps := []schedule.Appearance{
			appearance("TeamX", day(4, 1).Add(13*time.Hour)),
			appearance("TeamY", day(4, 1).Add(19*time.Hour)),
		}
		c := itinerary.Constraints{Teams: []string{"TeamX", "TeamY"}, MaxSpan: 2}

		res, err := itinerary.Find(apps, c)
		require.NoError(t, err)
		assert.Empty(t, res)

		apps = append(apps, appearance("TeamY", day(4, 2).Add(19*time.Hour)))
		res, err = itinerary.Find(apps, c)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, day(4, 1), res[0].Start)
		assert.Equal(t, day(4, 2), res[0].End)
		assert.Equal(t, day(4, 2).Add(19*time.Hour), res[0].Games[1].Date)
		assert.Empty(t, itinerary.Check(res[0], c))
	})

	t.Run("locations with the same offset match", func(t *testing.T) {
		utc := time.FixedZone("UTC", 0)
		apps := []schedule.Appearance{
			appearance("TeamX", time.Date(2025, time.April, 2, 0, 0, 0, 0, utc)),
			appearance("TeamX", day(4, 1)),
			appearance("TeamY", day(4, 2)),
		}

		res, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamY", "TeamX"}})
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, "TeamY", res[0].Games[0].Team)
		assert.Equal(t, day(4, 2), res[0].Games[0].Date)
		assert.Equal(t, day(4, 1), res[0].Games[1].Date)
	})
}

func TestFind_DefaultSpanIsTeamCount(t *testing.T) {
	apps := index(t,
		game("TeamX", "TeamA", day(4, 1)),
		game("TeamY", "TeamB", day(4, 3)),
	)

	res, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX", "TeamY"}})
	require.NoError(t, err)
	assert.Empty(t, res, "a 2-day window cannot reach 4/3 from 4/1")

	res, err = itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX", "TeamY"}, MaxSpan: 3})
	require.NoError(t, err)
	assert.Len(t, res, 1)
}

func TestFind_OverlappingWindows(t *testing.T) {
	apps := index(t,
		game("TeamX", "TeamA", day(4, 1)),
		game("TeamY", "TeamB", day(4, 2)),
		game("TeamX", "TeamA", day(4, 3)),
		game("TeamY", "TeamB", day(4, 4)),
	)

	res, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX", "TeamY"}, MaxSpan: 3})
	require.NoError(t, err)

	var starts []time.Time
	for _, it := range res {
		starts = append(starts, it.Start)
	}
	assert.Equal(t, []time.Time{day(4, 1), day(4, 2), day(4, 3)}, starts)
}

func TestFind_FirstAssignmentInPermutationOrder(t *testing.T) {
	// TeamX could take 4/1 or 4/2, TeamY only 4/1. Trying TeamX on 4/1
	// first fails, so TeamX moves to 4/2.
	apps := index(t,
		game("TeamX", "TeamY", day(4, 1)),
		game("TeamX", "TeamA", day(4, 2)),
		game("TeamB", "TeamC", day(4, 3)),
	)

	res, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX", "TeamY"}, MaxSpan: 3})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, day(4, 2), res[0].Games[0].Date)
	assert.Equal(t, day(4, 1), res[0].Games[1].Date)
	assert.Equal(t, "TeamX", res[0].Games[0].Team)
	assert.Equal(t, "TeamY", res[0].Games[1].Team)
}

func TestFind_InsufficientDistinctDates(t *testing.T) {
	// both teams only play each other, on the same day
	apps := index(t, game("TeamX", "TeamY", day(4, 1)))

	res, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX", "TeamY"}, MaxSpan: 5})
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestFind_InvalidConstraints(t *testing.T) {
	apps := index(t, game("TeamX", "TeamY", day(4, 1)))

	cases := map[string]struct {
		c    itinerary.Constraints
		want error
	}{
		"no teams":       {itinerary.Constraints{}, itinerary.ErrNoTeams},
		"negative span":  {itinerary.Constraints{Teams: []string{"TeamX"}, MaxSpan: -1}, itinerary.ErrInvalidSpan},
		"duplicate team": {itinerary.Constraints{Teams: []string{"TeamX", "TeamX"}}, itinerary.ErrDuplicateTeam},
		"unknown home":   {itinerary.Constraints{Teams: []string{"TeamX"}, Home: []string{"TeamY"}}, itinerary.ErrUnknownRequirement},
		"unknown away":   {itinerary.Constraints{Teams: []string{"TeamX"}, Away: []string{"TeamY"}}, itinerary.ErrUnknownRequirement},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := itinerary.Find(apps, tc.c)
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorIs(t, err, itinerary.ErrInvalidConstraints)
		})
	}
}

func TestFind_DoesNotMutateInput(t *testing.T) {
	apps := index(t,
		game("TeamY", "TeamB", day(4, 2)),
		game("TeamX", "TeamA", day(4, 1)),
	)
	before := make([]schedule.Appearance, len(apps))
	copy(before, apps)

	_, err := itinerary.Find(apps, itinerary.Constraints{Teams: []string{"TeamX", "TeamY"}})
	require.NoError(t, err)
	assert.Equal(t, before, apps)
}

var league = []string{"Angels", "Astros", "Cubs", "Padres", "Phillies", "Pirates", "Marlins", "Royals"}

// randomSeason builds a season where every team plays about once a day.
func randomSeason(seed int64, days int) []schedule.RawGame {
	rng := rand.New(rand.NewSource(seed))
	var raw []schedule.RawGame
	for d := 0; d < days; d++ {
		teams := make([]string, len(league))
		copy(teams, league)
		rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })
		// leave a pair idle some days
		n := len(teams)
		if rng.Intn(3) == 0 {
			n -= 2
		}
		for i := 0; i+1 < n; i += 2 {
			raw = append(raw, game(teams[i], teams[i+1], day(4, 1).AddDate(0, 0, d)))
		}
	}
	return raw
}

func randomConstraints(rng *rand.Rand) itinerary.Constraints {
	teams := make([]string, len(league))
	copy(teams, league)
	rng.Shuffle(len(teams), func(i, j int) { teams[i], teams[j] = teams[j], teams[i] })
	n := 1 + rng.Intn(4)
	c := itinerary.Constraints{Teams: teams[:n], MaxSpan: n + rng.Intn(4)}
	if rng.Intn(2) == 0 {
		c.Home = []string{teams[0]}
	}
	if n > 1 && rng.Intn(2) == 0 {
		c.Away = []string{teams[1]}
	}
	if rng.Intn(3) == 0 {
		c.Days = []time.Weekday{time.Friday, time.Saturday, time.Sunday}
	}
	return c
}

func TestFind_Properties(t *testing.T) {
	apps := index(t, randomSeason(7, 45)...)
	rng := rand.New(rand.NewSource(11))

	for i := 0; i < 40; i++ {
		c := randomConstraints(rng)
		t.Run(fmt.Sprintf("%d_%v", i, c.Teams), func(t *testing.T) {
			res, err := itinerary.Find(apps, c)
			require.NoError(t, err)

			starts := make(map[time.Time]bool)
			for _, it := range res {
				assert.Empty(t, itinerary.Check(it, c), it.String())
				assert.False(t, starts[it.Start], "two itineraries start %s", it.Start)
				starts[it.Start] = true
			}
			assert.True(t, sort.SliceIsSorted(res, func(i, j int) bool {
				return res[i].Start.Before(res[j].Start)
			}))

			again, err := itinerary.Find(apps, c)
			require.NoError(t, err)
			assert.Equal(t, res, again)
		})
	}
}

// bruteForce follows the search literally: every ordered choice of
// len(teams) window dates, in lexicographic index order.
func bruteForce(apps []schedule.Appearance, c itinerary.Constraints) []itinerary.Itinerary {
	var rows []schedule.Appearance
	in := func(list []string, s string) bool {
		for _, x := range list {
			if x == s {
				return true
			}
		}
		return false
	}
	for _, a := range apps {
		if !in(c.Teams, a.Team) {
			continue
		}
		if len(c.Days) > 0 {
			ok := false
			for _, d := range c.Days {
				ok = ok || d == a.Weekday
			}
			if !ok {
				continue
			}
		}
		if in(c.Home, a.Team) && a.Location != schedule.Home {
			continue
		}
		if in(c.Away, a.Team) && a.Location != schedule.Away {
			continue
		}
		rows = append(rows, a)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	var anchors []time.Time
	for _, r := range rows {
		if len(anchors) == 0 || !anchors[len(anchors)-1].Equal(r.Date) {
			anchors = append(anchors, r.Date)
		}
	}

	var out []itinerary.Itinerary
	for _, s := range anchors {
		e := s.AddDate(0, 0, c.Span()-1)
		var window []schedule.Appearance
		var dates []time.Time
		for _, r := range rows {
			if r.Date.Before(s) || r.Date.After(e) {
				continue
			}
			window = append(window, r)
			if len(dates) == 0 || !dates[len(dates)-1].Equal(r.Date) {
				dates = append(dates, r.Date)
			}
		}
		if len(dates) < len(c.Teams) {
			continue
		}
		for _, perm := range permutations(len(dates), len(c.Teams)) {
			var games []schedule.Appearance
			for i, team := range c.Teams {
				for _, w := range window {
					if w.Team == team && w.Date.Equal(dates[perm[i]]) {
						games = append(games, w)
						break
					}
				}
				if len(games) != i+1 {
					break
				}
			}
			if len(games) == len(c.Teams) {
				out = append(out, itinerary.Itinerary{Start: s, End: e, Games: games})
				break
			}
		}
	}
	return out
}

func permutations(n, k int) [][]int {
	var out [][]int
	used := make([]bool, n)
	cur := make([]int, 0, k)
	var rec func()
	rec = func() {
		if len(cur) == k {
			out = append(out, append([]int(nil), cur...))
			return
		}
		for i := 0; i < n; i++ {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, i)
			rec()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	rec()
	return out
}

func TestFind_MatchesExhaustiveEnumeration(t *testing.T) {
	apps := index(t, randomSeason(3, 20)...)
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 25; i++ {
		c := randomConstraints(rng)
		c.MaxSpan = len(c.Teams) + rng.Intn(2)
		got, err := itinerary.Find(apps, c)
		require.NoError(t, err)
		assert.Equal(t, bruteForce(apps, c), got, "teams %v span %d", c.Teams, c.MaxSpan)
	}
}
