package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "travel_guide/internal/adapters/http_server"
	"travel_guide/internal/adapters/nominatim"
	"travel_guide/internal/adapters/observability"
	openaiad "travel_guide/internal/adapters/openai"
	youtubead "travel_guide/internal/adapters/youtube"
	"travel_guide/internal/app"
	"travel_guide/internal/extract"
	"travel_guide/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	// set global logger (console in dev, JSON otherwise)
	observability.SetGlobal(observability.NewLogger(cfg.AppEnv))

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// providers
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

	// http
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("model", cfg.OpenAIModel).
		Int("workers", cfg.EnrichWorkers).
		Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
