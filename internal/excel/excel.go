package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/derekprior/roadtrip/internal/itinerary"
	"github.com/derekprior/roadtrip/internal/route"
	"github.com/derekprior/roadtrip/internal/schedule"
)

const (
	itinerariesSheet = "Itineraries"
	routesSheet      = "Routes"
)

var itineraryHeaders = []string{
	"Itinerary", "Start Date", "End Date", "Team", "Date", "Day",
	"Opponent", "Location", "Stadium", "Local Time",
}

// Generate creates a workbook with every itinerary's games and, when
// distances are given, the legs driven between stadiums.
func Generate(results []itinerary.Itinerary, distances *route.Distances) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeItinerarySheet(f, results); err != nil {
		return nil, fmt.Errorf("writing itineraries sheet: %w", err)
	}

	if distances != nil {
		if err := writeRoutesSheet(f, results, distances); err != nil {
			return nil, fmt.Errorf("writing routes sheet: %w", err)
		}
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func writeHeaders(f *excelize.File, sheet string, headers []string) error {
	for i, h := range headers {
		if err := f.SetCellValue(sheet, cellRef(i+1, 1), h); err != nil {
			return err
		}
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if headerStyle != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), headerStyle)
	}
	return nil
}

// writeItinerarySheet writes one row per game, in team order, numbering
// itineraries from 1.
func writeItinerarySheet(f *excelize.File, results []itinerary.Itinerary) error {
	sheet := itinerariesSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeaders(f, sheet, itineraryHeaders); err != nil {
		return err
	}

	// Alternate a light fill per itinerary so groups are easy to scan
	bandStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})

	row := 2
	for n, it := range results {
		first := row
		for _, g := range it.Games {
			values := []any{
				n + 1,
				it.Start.Format("01/02/2006"),
				it.End.Format("01/02/2006"),
				g.Team,
				g.Date.Format("01/02/2006"),
				g.Weekday.String(),
				g.Opponent,
				g.Location.String(),
				g.Venue,
				schedule.FormatLocalTime(g.LocalTime),
			}
			for col, v := range values {
				if err := f.SetCellValue(sheet, cellRef(col+1, row), v); err != nil {
					return err
				}
			}
			row++
		}
		if n%2 == 1 && bandStyle != 0 && row > first {
			f.SetCellStyle(sheet, cellRef(1, first), cellRef(len(itineraryHeaders), row-1), bandStyle)
		}
	}

	widths := map[string]float64{"A": 10, "B": 12, "C": 12, "D": 16, "E": 12, "F": 12, "G": 16, "H": 10, "I": 30, "J": 12}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
	return nil
}

func writeRoutesSheet(f *excelize.File, results []itinerary.Itinerary, distances *route.Distances) error {
	sheet := routesSheet
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	headers := []string{"Itinerary", "From", "To", "Miles"}
	if err := writeHeaders(f, sheet, headers); err != nil {
		return err
	}

	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Family: "Arial"},
	})

	row := 2
	for n, it := range results {
		legs := route.Plan(it, distances)
		for _, l := range legs {
			f.SetCellValue(sheet, cellRef(1, row), n+1)
			f.SetCellValue(sheet, cellRef(2, row), l.From)
			f.SetCellValue(sheet, cellRef(3, row), l.To)
			if l.Known {
				f.SetCellValue(sheet, cellRef(4, row), roundMiles(l.Miles))
			}
			row++
		}
		f.SetCellValue(sheet, cellRef(1, row), n+1)
		f.SetCellValue(sheet, cellRef(3, row), "Total")
		f.SetCellValue(sheet, cellRef(4, row), roundMiles(route.Total(legs)))
		if totalStyle != 0 {
			f.SetCellStyle(sheet, cellRef(3, row), cellRef(4, row), totalStyle)
		}
		row++
	}

	widths := map[string]float64{"A": 10, "B": 16, "C": 16, "D": 10}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func roundMiles(m float64) int {
	return int(m + 0.5)
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
