package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"

	"travel_guide/internal/adapters/observability"
	"travel_guide/internal/domain"
)

// stages, used in logs, spans and the degraded counter
const (
	stageAttractions = "attractions"
	stageHotel       = "hotel"
	stageCoordinates = "coordinates"
	stageVideo       = "video"
)

var tracer = otel.Tracer("travel_guide/internal/app")

type DestinationService struct {
	gen              domain.TextGenerator
	geo              domain.Geocoder
	videos           domain.VideoSearcher
	attractionParser domain.AttractionParser
	hotelParser      domain.HotelParser
	workers          int
}

// NewDestinationService wires the providers together. workers bounds how many
// attractions are enriched at once; 1 enriches them strictly one after another.
func NewDestinationService(
	gen domain.TextGenerator,
	geo domain.Geocoder,
	videos domain.VideoSearcher,
	ap domain.AttractionParser,
	hp domain.HotelParser,
	workers int,
) *DestinationService {
	if workers < 1 {
		workers = 1
	}
	return &DestinationService{
		gen:              gen,
		geo:              geo,
		videos:           videos,
		attractionParser: ap,
		hotelParser:      hp,
		workers:          workers,
	}
}

// Explore lists the top attractions near location and enriches each one with
// coordinates, a video and the cheapest hotel quote for the location.
//
// Only two conditions fail the call: an empty location (domain.ErrNoLocation) and
// no parseable attractions (domain.ErrNoAttractions). Every other provider problem
// is logged and replaced by the matching placeholder value.
func (s *DestinationService) Explore(ctx context.Context, location string) ([]domain.Destination, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, domain.ErrNoLocation
	}

	ctx, span := tracer.Start(ctx, "Explore", trace.WithAttributes(attribute.String("location", location)))
	defer span.End()
	l := zerolog.Ctx(ctx).With().Str("location", location).Logger()

	l.Info().Msg("fetching top attractions")
	attractions := s.fetchAttractions(ctx, l, location)
	if len(attractions) == 0 {
		span.SetStatus(codes.Error, "no attractions")
		l.Warn().Msg("no attractions parsed")
		return nil, domain.ErrNoAttractions
	}

	// The quote depends only on the location, so one lookup serves every attraction.
	l.Info().Msg("fetching cheapest hotel")
	hotel := s.fetchHotel(ctx, l, location)

	out := make([]domain.Destination, len(attractions))
	sem := semaphore.NewWeighted(int64(s.workers))
	var wg sync.WaitGroup
	var acquireErr error

	for i, a := range attractions {
		if err := sem.Acquire(ctx, 1); err != nil {
			acquireErr = err
			break
		}
		wg.Add(1)
		go func(i int, a domain.Attraction) {
			defer wg.Done()
			defer sem.Release(1)
			out[i] = s.enrich(ctx, l, location, a, hotel)
		}(i, a)
	}
	wg.Wait()

	if acquireErr != nil {
		span.RecordError(acquireErr)
		span.SetStatus(codes.Error, "cancelled")
		return nil, fmt.Errorf("explore %q: %w", location, acquireErr)
	}

	span.SetStatus(codes.Ok, "")
	l.Info().Int("count", len(out)).Msg("destinations assembled")
	return out, nil
}

func (s *DestinationService) fetchAttractions(ctx context.Context, l zerolog.Logger, location string) []domain.Attraction {
	ctx, span := tracer.Start(ctx, "FetchAttractions")
	defer span.End()

	raw, err := s.gen.Complete(ctx, SystemInstruction, AttractionsPrompt(location))
	if err != nil {
		degrade(span, l, stageAttractions, err)
		raw = ""
	}
	list := s.attractionParser.ParseAttractions(raw)
	span.SetAttributes(attribute.Int("attractions.count", len(list)))
	return list
}

func (s *DestinationService) fetchHotel(ctx context.Context, l zerolog.Logger, location string) domain.HotelQuote {
	ctx, span := tracer.Start(ctx, "FetchHotel")
	defer span.End()

	raw, err := s.gen.Complete(ctx, SystemInstruction, HotelPrompt(location))
	if err != nil {
		degrade(span, l, stageHotel, err)
		return domain.NoHotel()
	}
	q := s.hotelParser.ParseHotel(raw)
	if q == domain.NoHotel() {
		observability.ObserveDegraded(stageHotel)
		l.Info().Str("stage", stageHotel).Str("reply", raw).Msg("hotel reply did not match the expected format")
	}
	return q
}

func (s *DestinationService) enrich(ctx context.Context, l zerolog.Logger, location string, a domain.Attraction, hotel domain.HotelQuote) domain.Destination {
	ctx, span := tracer.Start(ctx, "Enrich", trace.WithAttributes(attribute.String("attraction", a.Name)))
	defer span.End()
	l = l.With().Str("attraction", a.Name).Logger()

	l.Info().Msg("fetching coordinates")
	coords, err := s.geo.Locate(ctx, a.Name)
	if err != nil {
		degrade(span, l, stageCoordinates, err)
		coords = domain.NoCoordinates()
	}

	l.Info().Msg("fetching most-watched video")
	video, err := s.videos.TopVideo(ctx, a.Name, location)
	if err != nil {
		degrade(span, l, stageVideo, err)
		video = domain.NoVideo()
	}

	return domain.NewDestination(a, coords, video, hotel)
}

// degrade records a provider failure that is answered with a placeholder.
func degrade(span trace.Span, l zerolog.Logger, stage string, err error) {
	observability.ObserveDegraded(stage)
	span.RecordError(err)
	level := l.Warn
	if errors.Is(err, domain.ErrNotFound) {
		level = l.Info
	}
	level().Str("stage", stage).Err(err).Msg("provider lookup failed, using placeholder")
}
