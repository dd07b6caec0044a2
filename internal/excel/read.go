package excel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/roadtrip/internal/config"
	"github.com/derekprior/roadtrip/internal/itinerary"
	"github.com/derekprior/roadtrip/internal/route"
	"github.com/derekprior/roadtrip/internal/schedule"
)

// Schedule column headers.
const (
	ColHomeTeam  = "Home Team"
	ColAwayTeam  = "Away Team"
	ColGameDate  = "Game Date"
	ColDayOfWeek = "Day of Week"
	ColLocation  = "Location"
	ColLocalTime = "Local Time"
)

// Distance column headers.
const (
	ColTeam1 = "Team 1"
	ColTeam2 = "Team 2"
	ColMiles = "Distance (miles)"
)

// table is a sheet's rows below the header, with columns found by name.
type table struct {
	cols map[string]int
	rows [][]string
	// first data row number as shown in Excel, for error messages
	firstRow int
}

func (t *table) cell(row []string, name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readTable(f *excelize.File, sheet string, headerRow int, required ...string) (*table, error) {
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", sheet, err)
	}
	if len(rows) < headerRow {
		return nil, fmt.Errorf("%s has no header row %d", sheet, headerRow)
	}

	t := &table{cols: make(map[string]int), firstRow: headerRow + 1}
	for i, h := range rows[headerRow-1] {
		t.cols[strings.TrimSpace(h)] = i
	}
	for _, name := range required {
		if _, ok := t.cols[name]; !ok {
			return nil, fmt.Errorf("%s is missing column %q", sheet, name)
		}
	}

	t.rows = rows[headerRow:]
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// ReadSchedule reads one game per row from the schedule workbook.
func ReadSchedule(src config.Source) ([]schedule.RawGame, error) {
	f, err := excelize.OpenFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	t, err := readTable(f, src.Sheet, src.HeaderRow, ColHomeTeam, ColAwayTeam, ColGameDate, ColLocation)
	if err != nil {
		return nil, err
	}

	var games []schedule.RawGame
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		var date time.Time
		if s := t.cell(row, ColGameDate); s != "" {
			date, err = cellDate(s)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", t.firstRow+i, err)
			}
		}
		games = append(games, schedule.RawGame{
			Home:      t.cell(row, ColHomeTeam),
			Away:      t.cell(row, ColAwayTeam),
			Date:      date,
			Weekday:   t.cell(row, ColDayOfWeek),
			Venue:     t.cell(row, ColLocation),
			LocalTime: cellClock(t.cell(row, ColLocalTime)),
		})
	}
	return games, nil
}

// ReadDistances reads the stadium-to-stadium mileage table.
func ReadDistances(src config.Source) (*route.Distances, error) {
	f, err := excelize.OpenFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	t, err := readTable(f, src.Sheet, src.HeaderRow, ColTeam1, ColTeam2, ColMiles)
	if err != nil {
		return nil, err
	}

	d := route.NewDistances()
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		a, b := t.cell(row, ColTeam1), t.cell(row, ColTeam2)
		if a == "" || b == "" {
			return nil, fmt.Errorf("row %d: missing team", t.firstRow+i)
		}
		miles, err := strconv.ParseFloat(t.cell(row, ColMiles), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid distance %q", t.firstRow+i, t.cell(row, ColMiles))
		}
		d.Add(a, b, miles)
	}
	return d, nil
}

// ReadItineraries reads back the Itineraries sheet written by Generate.
func ReadItineraries(path string) ([]itinerary.Itinerary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	t, err := readTable(f, itinerariesSheet, 1, itineraryHeaders...)
	if err != nil {
		return nil, err
	}

	var out []itinerary.Itinerary
	current := ""
	for i, row := range t.rows {
		if blank(row) {
			continue
		}
		rowNum := t.firstRow + i
		g, err := readGame(t, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		id := t.cell(row, "Itinerary")
		if id != current || len(out) == 0 {
			start, err := cellDate(t.cell(row, "Start Date"))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", rowNum, err)
			}
			end, err := cellDate(t.cell(row, "End Date"))
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", rowNum, err)
			}
			out = append(out, itinerary.Itinerary{Start: start, End: end})
			current = id
		}
		last := &out[len(out)-1]
		last.Games = append(last.Games, g)
	}
	return out, nil
}

func readGame(t *table, row []string) (schedule.Appearance, error) {
	date, err := cellDate(t.cell(row, "Date"))
	if err != nil {
		return schedule.Appearance{}, err
	}
	loc, err := schedule.ParseLocation(t.cell(row, "Location"))
	if err != nil {
		return schedule.Appearance{}, err
	}
	weekday := date.Weekday()
	if s := t.cell(row, "Day"); s != "" {
		if weekday, err = schedule.ParseWeekday(s); err != nil {
			return schedule.Appearance{}, err
		}
	}
	return schedule.Appearance{
		Team:      t.cell(row, "Team"),
		Opponent:  t.cell(row, "Opponent"),
		Location:  loc,
		Date:      date,
		Weekday:   weekday,
		Venue:     t.cell(row, "Stadium"),
		LocalTime: t.cell(row, "Local Time"),
	}, nil
}

// cellDate accepts an Excel date serial or a date string.
func cellDate(s string) (time.Time, error) {
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date serial %q: %w", s, err)
		}
		return schedule.Day(t), nil
	}
	return schedule.ParseDate(s)
}

// cellClock converts an Excel time-of-day fraction to "15:04". Other
// values are returned as they are.
func cellClock(s string) string {
	frac, err := strconv.ParseFloat(s, 64)
	if err != nil || frac < 0 || frac >= 1 {
		return s
	}
	minutes := int(frac*24*60 + 0.5)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
