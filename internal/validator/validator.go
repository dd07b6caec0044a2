package validator

import (
	"fmt"
	"time"

	"github.com/derekprior/roadtrip/internal/excel"
	"github.com/derekprior/roadtrip/internal/itinerary"
)

// Violation represents a problem found in a saved itineraries workbook.
type Violation struct {
	Itinerary int    // 1-based position in the workbook
	Type      string // "error" or "warning"
	Message   string
}

// Validate reads an itineraries workbook and checks every itinerary in it
// against the query c.
func Validate(c itinerary.Constraints, path string) ([]Violation, error) {
	if err := itinerary.Validate(c); err != nil {
		return nil, err
	}

	results, err := excel.ReadItineraries(path)
	if err != nil {
		return nil, fmt.Errorf("reading itineraries: %w", err)
	}
	return Check(c, results), nil
}

// Check validates already loaded itineraries.
func Check(c itinerary.Constraints, results []itinerary.Itinerary) []Violation {
	var violations []Violation

	// Hard constraints
	for i, it := range results {
		for _, p := range itinerary.Check(it, c) {
			violations = append(violations, Violation{
				Itinerary: i + 1,
				Type:      "error",
				Message:   fmt.Sprintf("itinerary %d (%s): %s", i+1, it.Start.Format("01/02"), p),
			})
		}
	}

	// Soft constraints
	violations = append(violations, checkSharedStarts(results)...)
	violations = append(violations, checkOrder(results)...)

	return violations
}

// checkSharedStarts warns when two itineraries begin on the same day; a
// search reports at most one per start date, so the workbook was edited.
func checkSharedStarts(results []itinerary.Itinerary) []Violation {
	first := make(map[time.Time]int)
	var violations []Violation
	for i, it := range results {
		if prev, ok := first[it.Start]; ok {
			violations = append(violations, Violation{
				Itinerary: i + 1,
				Type:      "warning",
				Message: fmt.Sprintf("itineraries %d and %d both start %s",
					prev, i+1, it.Start.Format("01/02")),
			})
			continue
		}
		first[it.Start] = i + 1
	}
	return violations
}

func checkOrder(results []itinerary.Itinerary) []Violation {
	var violations []Violation
	for i := 1; i < len(results); i++ {
		if results[i].Start.Before(results[i-1].Start) {
			violations = append(violations, Violation{
				Itinerary: i + 1,
				Type:      "warning",
				Message: fmt.Sprintf("itinerary %d starts %s, before itinerary %d",
					i+1, results[i].Start.Format("01/02"), i),
			})
		}
	}
	return violations
}
