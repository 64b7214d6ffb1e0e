// Command explore runs the destination pipeline for each location given on the
// command line and prints the results as JSON keyed by location.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"travel_guide/internal/adapters/nominatim"
	"travel_guide/internal/adapters/observability"
	openaiad "travel_guide/internal/adapters/openai"
	youtubead "travel_guide/internal/adapters/youtube"
	"travel_guide/internal/app"
	"travel_guide/internal/domain"
	"travel_guide/internal/extract"
	"travel_guide/internal/shared"
)

func main() {
	parallel := flag.Int("parallel", 2, "locations explored at once")
	flag.Parse()
	locations := flag.Args()
	if len(locations) == 0 {
		fmt.Fprintln(os.Stderr, "usage: explore [-parallel n] <location>...")
		os.Exit(2)
	}

	ctx := context.Background()
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	// logs go to stderr so stdout stays valid JSON
	observability.SetGlobal(observability.NewLoggerTo(cfg.AppEnv, os.Stderr))

	gen, err := openaiad.New(openaiad.Options{
		APIKey:  cfg.OpenAIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: cfg.OpenAITimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize text generation client")
	}
	yt, err := youtubead.New(ctx, youtubead.Options{
		APIKey:   cfg.YouTubeKey,
		Endpoint: cfg.YouTubeEndpoint,
		Timeout:  cfg.YouTubeTimeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize video search client")
	}
	geo, err := nominatim.New(nominatim.Options{
		BaseURL:   cfg.NominatimBase,
		UserAgent: cfg.NominatimUserAgent,
		Timeout:   cfg.NominatimTimeout,
		RPS:       cfg.NominatimRPS,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize geocoding client")
	}

	parser := extract.RegexParser{}
	svc := app.NewDestinationService(gen, geo, yt, parser, parser, cfg.EnrichWorkers)

	log.Info().Int("locations", len(locations)).Int("parallel", *parallel).Msg("explore starting")

	results := make(map[string][]domain.Destination, len(locations))
	var mu sync.Mutex
	failed := false

	if *parallel < 1 {
		*parallel = 1
	}
	sem := semaphore.NewWeighted(int64(*parallel))
	var wg sync.WaitGroup

	for _, loc := range locations {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(loc string) {
			defer wg.Done()
			defer sem.Release(1)

			out, err := svc.Explore(log.Logger.WithContext(ctx), loc)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn().Str("location", loc).Err(err).Msg("explore failed")
				failed = true
				return
			}
			results[loc] = out
		}(loc)
	}
	wg.Wait()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		log.Fatal().Err(err).Msg("write results failed")
	}
	if failed {
		os.Exit(1)
	}
}
