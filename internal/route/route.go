// Package route turns an itinerary into the trip between stadiums: the
// legs driven, their mileage, and the map markers for each stop.
package route

import (
	"fmt"

	"github.com/derekprior/roadtrip/internal/itinerary"
	"github.com/derekprior/roadtrip/internal/schedule"
)

// Distances is a symmetric table of driving miles between home stadiums,
// keyed by team.
type Distances struct {
	miles map[[2]string]float64
}

// NewDistances returns an empty table.
func NewDistances() *Distances {
	return &Distances{miles: make(map[[2]string]float64)}
}

// Add records the distance between two teams' stadiums in both directions.
func (d *Distances) Add(a, b string, miles float64) {
	d.miles[[2]string{a, b}] = miles
	d.miles[[2]string{b, a}] = miles
}

// Between returns the miles from a's stadium to b's.
func (d *Distances) Between(a, b string) (float64, bool) {
	if d == nil {
		return 0, false
	}
	if a == b {
		return 0, true
	}
	m, ok := d.miles[[2]string{a, b}]
	return m, ok
}

// Len returns the number of stored team pairs, counting each once.
func (d *Distances) Len() int {
	if d == nil {
		return 0
	}
	return len(d.miles) / 2
}

// Leg is the drive between two consecutive stops.
type Leg struct {
	From  string
	To    string
	Miles float64
	Known bool // false when the table had no entry for the pair
}

func (l Leg) String() string {
	if !l.Known {
		return fmt.Sprintf("%s to %s: unknown distance", l.From, l.To)
	}
	return fmt.Sprintf("%s to %s: %.0f miles", l.From, l.To, l.Miles)
}

// Plan returns the legs between the itinerary's stadiums in date order.
// Pairs missing from d count as zero miles.
func Plan(it itinerary.Itinerary, d *Distances) []Leg {
	games := it.ByDate()
	var legs []Leg
	for i := 0; i+1 < len(games); i++ {
		from, to := games[i].Stadium(), games[i+1].Stadium()
		miles, ok := d.Between(from, to)
		legs = append(legs, Leg{From: from, To: to, Miles: miles, Known: ok})
	}
	return legs
}

// Total sums the miles over legs.
func Total(legs []Leg) float64 {
	var total float64
	for _, l := range legs {
		total += l.Miles
	}
	return total
}

// Stadium is a ballpark location.
type Stadium struct {
	Name string
	Lat  float64
	Lon  float64
}

// Stop is one map marker along the route.
type Stop struct {
	Team    string // team whose park it is
	Stadium string
	Lat     float64
	Lon     float64
	Tooltip string
	Found   bool // false when the stadium table has no entry for Team
}

// Stops returns one marker per game, in date order.
func Stops(it itinerary.Itinerary, stadiums map[string]Stadium) []Stop {
	games := it.ByDate()
	stops := make([]Stop, 0, len(games))
	for _, g := range games {
		key := g.Stadium()
		st, ok := stadiums[key]
		stops = append(stops, Stop{
			Team:    key,
			Stadium: st.Name,
			Lat:     st.Lat,
			Lon:     st.Lon,
			Tooltip: tooltip(g),
			Found:   ok,
		})
	}
	return stops
}

func tooltip(g schedule.Appearance) string {
	if g.LocalTime == "" {
		return g.Matchup()
	}
	return fmt.Sprintf("%s: %s", g.Matchup(), schedule.FormatLocalTime(g.LocalTime))
}
