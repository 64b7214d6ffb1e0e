package extract

import (
	"regexp"
	"strings"

	"travel_guide/internal/domain"
)

var hotelLine = regexp.MustCompile(`^(.*) - (\$\d+ per night)`)

// Hotel parses "Hotel Name - $Price per night". Anything else yields domain.NoHotel().
func Hotel(raw string) domain.HotelQuote {
	m := hotelLine.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return domain.NoHotel()
	}
	return domain.HotelQuote{Name: Clean(m[1]), Price: Clean(m[2])}
}

// RegexParser is the regular-expression implementation of the domain parser ports.
type RegexParser struct{}

func (RegexParser) ParseAttractions(raw string) []domain.Attraction { return Attractions(raw) }

func (RegexParser) ParseHotel(raw string) domain.HotelQuote { return Hotel(raw) }
