package domain

import (
	"context"
	"errors"
)

var (
	ErrNoLocation    = errors.New("no location provided")
	ErrNoAttractions = errors.New("could not find attractions for the location")
	ErrNotFound      = errors.New("not found")
)

type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

type Geocoder interface {
	// Locate returns ErrNotFound when the service has no match for place.
	Locate(ctx context.Context, place string) (Coordinates, error)
}

type VideoSearcher interface {
	// TopVideo returns NoVideo() with a nil error when nothing matches.
	TopVideo(ctx context.Context, query, location string) (VideoRef, error)
}

// Parsers turn free-form generated text into records. An empty raw string means the
// generation produced nothing.
type AttractionParser interface {
	ParseAttractions(raw string) []Attraction
}

type HotelParser interface {
	ParseHotel(raw string) HotelQuote
}
