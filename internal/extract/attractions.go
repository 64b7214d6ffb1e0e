package extract

import (
	"regexp"
	"strings"

	"travel_guide/internal/domain"
)

var (
	attractionLine = regexp.MustCompile(`^\d*\.*\s*(.*?):\s*(.*)`)

	// lead-in sentences the model likes to put before the list
	preambles = []string{"certainly", "here are", "the top"}
)

// Attractions parses "N. Name: Description" lines. Lines without a colon, preamble
// lines and records with an empty field are skipped. The number of records is not
// capped.
func Attractions(raw string) []domain.Attraction {
	if raw == "" {
		return nil
	}
	var out []domain.Attraction
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isPreamble(line) {
			continue
		}
		m := attractionLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		a := domain.Attraction{Name: Clean(m[1]), Description: Clean(m[2])}
		if a.Name == "" || a.Description == "" {
			continue
		}
		out = append(out, a)
	}
	return out
}

func isPreamble(line string) bool {
	low := strings.ToLower(line)
	for _, p := range preambles {
		if strings.HasPrefix(low, p) {
			return true
		}
	}
	return false
}
