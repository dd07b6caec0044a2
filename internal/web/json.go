package web

import (
	"time"

	"github.com/derekprior/roadtrip/internal/itinerary"
	"github.com/derekprior/roadtrip/internal/schedule"
)

// Query is the body of POST /itineraries.
type Query struct {
	Teams    []string `json:"teams"`
	Days     []string `json:"days,omitempty"`
	MaxSpan  int      `json:"max_span,omitempty"`
	Home     []string `json:"home,omitempty"`
	Away     []string `json:"away,omitempty"`
	Months   []string `json:"months,omitempty"`
	Selected int      `json:"selected,omitempty"` // 1-based; defaults to the first
}

// Constraints converts the query's day and month names.
func (q Query) Constraints() (itinerary.Constraints, error) {
	c := itinerary.Constraints{
		Teams:   q.Teams,
		MaxSpan: q.MaxSpan,
		Home:    q.Home,
		Away:    q.Away,
	}
	for _, s := range q.Days {
		wd, err := schedule.ParseWeekday(s)
		if err != nil {
			return c, err
		}
		c.Days = append(c.Days, wd)
	}
	for _, s := range q.Months {
		m, err := schedule.ParseMonth(s)
		if err != nil {
			return c, err
		}
		c.Months = append(c.Months, m)
	}
	return c, nil
}

type Response struct {
	Count       int             `json:"count"`
	Message     string          `json:"message,omitempty"`
	Itineraries []ItineraryJSON `json:"itineraries"`
	Selected    *Detail         `json:"selected,omitempty"`
}

type ItineraryJSON struct {
	Number int        `json:"number"`
	Start  string     `json:"start"`
	End    string     `json:"end"`
	Games  []GameJSON `json:"games"`
}

type GameJSON struct {
	Team      string `json:"team"`
	Opponent  string `json:"opponent"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	Day       string `json:"day"`
	Stadium   string `json:"stadium"`
	LocalTime string `json:"local_time,omitempty"`
}

// Detail is the selected itinerary in date order with its route.
type Detail struct {
	Number     int        `json:"number"`
	Games      []GameJSON `json:"games"`
	Legs       []LegJSON  `json:"legs"`
	TotalMiles float64    `json:"total_miles"`
	Stops      []StopJSON `json:"stops"`
}

type LegJSON struct {
	From  string  `json:"from"`
	To    string  `json:"to"`
	Miles float64 `json:"miles"`
	Known bool    `json:"known"`
}

type StopJSON struct {
	Team    string  `json:"team"`
	Stadium string  `json:"stadium,omitempty"`
	Lat     float64 `json:"lat,omitempty"`
	Lon     float64 `json:"lon,omitempty"`
	Tooltip string  `json:"tooltip"`
	Found   bool    `json:"found"`
}

const dateLayout = "2006-01-02"

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func newItineraryJSON(n int, it itinerary.Itinerary) ItineraryJSON {
	out := ItineraryJSON{
		Number: n,
		Start:  formatDate(it.Start),
		End:    formatDate(it.End),
		Games:  make([]GameJSON, 0, len(it.Games)),
	}
	for _, g := range it.Games {
		out.Games = append(out.Games, newGameJSON(g))
	}
	return out
}

func newGameJSON(g schedule.Appearance) GameJSON {
	return GameJSON{
		Team:      g.Team,
		Opponent:  g.Opponent,
		Location:  g.Location.String(),
		Date:      formatDate(g.Date),
		Day:       g.Weekday.String(),
		Stadium:   g.Venue,
		LocalTime: schedule.FormatLocalTime(g.LocalTime),
	}
}
