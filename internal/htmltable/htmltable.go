// Package htmltable reads a game schedule from an HTML page, for leagues
// that publish their schedule as a web table rather than a spreadsheet.
package htmltable

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/derekprior/roadtrip/internal/schedule"
)

// Column headers the schedule table must carry. They match the
// spreadsheet columns.
const (
	colHomeTeam  = "home team"
	colAwayTeam  = "away team"
	colGameDate  = "game date"
	colDayOfWeek = "day of week"
	colLocation  = "location"
	colLocalTime = "local time"
)

var required = []string{colHomeTeam, colAwayTeam, colGameDate, colLocation}

// ReadFile reads the schedule table from the HTML file at path.
func ReadFile(path string) ([]schedule.RawGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()
	return ReadSchedule(f)
}

// ReadSchedule parses the first table in r whose header row names the
// schedule columns, returning one game per body row.
func ReadSchedule(r io.Reader) ([]schedule.RawGame, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var (
		games   []schedule.RawGame
		readErr error
		found   bool
	)
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		header := -1
		var cols map[string]int
		rows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
			cols = columns(tr)
			if hasAll(cols, required) {
				header = i
				return false
			}
			return true
		})
		if header < 0 {
			return true
		}
		found = true

		rows.Each(func(i int, tr *goquery.Selection) {
			if i <= header || readErr != nil {
				return
			}
			cells := texts(tr.Find("td"))
			if len(cells) == 0 {
				return
			}
			g, err := readRow(cols, cells)
			if err != nil {
				readErr = fmt.Errorf("table row %d: %w", i+1, err)
				return
			}
			games = append(games, g)
		})
		return false
	})

	if readErr != nil {
		return nil, readErr
	}
	if !found {
		return nil, fmt.Errorf("no table with columns %s", strings.Join(required, ", "))
	}
	return games, nil
}

func columns(tr *goquery.Selection) map[string]int {
	cols := make(map[string]int)
	for i, h := range texts(tr.Find("th, td")) {
		cols[strings.ToLower(h)] = i
	}
	return cols
}

func hasAll(cols map[string]int, names []string) bool {
	for _, n := range names {
		if _, ok := cols[n]; !ok {
			return false
		}
	}
	return true
}

func texts(cells *goquery.Selection) []string {
	var out []string
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, strings.Join(strings.Fields(c.Text()), " "))
	})
	return out
}

func readRow(cols map[string]int, cells []string) (schedule.RawGame, error) {
	cell := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(cells) {
			return ""
		}
		return cells[i]
	}

	g := schedule.RawGame{
		Home:      cell(colHomeTeam),
		Away:      cell(colAwayTeam),
		Weekday:   cell(colDayOfWeek),
		Venue:     cell(colLocation),
		LocalTime: cell(colLocalTime),
	}
	if s := cell(colGameDate); s != "" {
		d, err := schedule.ParseDate(s)
		if err != nil {
			return g, err
		}
		g.Date = d
	}
	return g, nil
}
