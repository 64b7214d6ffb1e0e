package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"travel_guide/internal/domain"
)

const maxBody = 1 << 20

// Explorer is the part of the application the HTTP surface needs.
type Explorer interface {
	Explore(ctx context.Context, location string) ([]domain.Destination, error)
}

type Handlers struct{ S Explorer }

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	// The browser client is served from another origin.
	s.mux.Route("/destination", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Post("/", h.postDestination)
	})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("write JSON response failed")
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, msg string) {
	writeJSON(ctx, w, status, map[string]string{"error": msg})
}

// userInput reads the location from a JSON body, falling back to form fields when
// the body is not a JSON object carrying userInput.
func userInput(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return "", err
	}

	var in struct {
		UserInput *string `json:"userInput"`
	}
	if err := json.Unmarshal(body, &in); err == nil && in.UserInput != nil {
		return *in.UserInput, nil
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	return r.PostFormValue("userInput"), nil
}

func (h *Handlers) postDestination(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	loc, err := userInput(w, r)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(ctx, w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(ctx, w, http.StatusBadRequest, "unreadable request body")
		return
	}

	out, err := h.S.Explore(ctx, loc)
	switch {
	case errors.Is(err, domain.ErrNoLocation):
		writeError(ctx, w, http.StatusBadRequest, "No location provided")
	case errors.Is(err, domain.ErrNoAttractions):
		writeError(ctx, w, http.StatusNotFound, "Could not find attractions for the location")
	case err != nil:
		zerolog.Ctx(ctx).Error().Err(err).Str("location", loc).Msg("explore failed")
		writeError(ctx, w, http.StatusInternalServerError, "internal error")
	default:
		writeJSON(ctx, w, http.StatusOK, out)
	}
}
