package domain

type Attraction struct {
	Name        string
	Description string
}

// Coordinates holds either both values or neither; a nil pair means the place was not found.
type Coordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func NewCoordinates(lat, lon float64) Coordinates {
	return Coordinates{Latitude: &lat, Longitude: &lon}
}

func NoCoordinates() Coordinates { return Coordinates{} }

func (c Coordinates) Found() bool { return c.Latitude != nil && c.Longitude != nil }

type VideoRef struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Thumbnail string `json:"thumbnail"`
}

const NoVideoTitle = "No video found"

func NoVideo() VideoRef { return VideoRef{Title: NoVideoTitle} }

type HotelQuote struct {
	Name  string `json:"name"`
	Price string `json:"price"`
}

const NotAvailable = "N/A"

func NoHotel() HotelQuote { return HotelQuote{Name: NotAvailable, Price: NotAvailable} }

// Destination is an attraction enriched with coordinates, a video and a lodging quote.
// It lives for a single request.
type Destination struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Latitude    *float64   `json:"latitude"`
	Longitude   *float64   `json:"longitude"`
	Video       VideoRef   `json:"youtube_video"`
	Hotel       HotelQuote `json:"cheapest_hotel"`
}

func NewDestination(a Attraction, c Coordinates, v VideoRef, h HotelQuote) Destination {
	if !c.Found() {
		c = NoCoordinates()
	}
	return Destination{
		Name:        a.Name,
		Description: a.Description,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Video:       v,
		Hotel:       h,
	}
}
