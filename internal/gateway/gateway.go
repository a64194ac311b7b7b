// Package gateway implements the reverse proxy that fronts the three backend
// services, routing by URL path prefix.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	initialBackoff = 100 * time.Millisecond
	maxBackoff     = 2 * time.Second
)

// Route maps a path prefix to a backend base URL.
type Route struct {
	Prefix  string
	Backend string
}

type Config struct {
	Routes []Route
	// Timeout bounds each forwarded round trip.
	Timeout time.Duration
	// MaxRetries is the number of additional attempts after a
	// transport-level failure. Responses received from a backend, whatever
	// their status, are never retried.
	MaxRetries int
}

type Gateway struct {
	routes     []Route
	client     *http.Client
	maxRetries int
}

func New(cfg Config) *Gateway {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Gateway{
		routes:     cfg.Routes,
		client:     &http.Client{Timeout: timeout},
		maxRetries: cfg.MaxRetries,
	}
}

// Router builds the proxy mux: one catch-all handler per route prefix plus
// the capability listing at the root.
func (g *Gateway) Router() *chi.Mux {
	router := chi.NewRouter()

	for _, route := range g.routes {
		h := g.forward(route)
		router.Handle(route.Prefix, h)
		router.Handle(route.Prefix+"/*", h)
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"message": "API gateway is up",
			"routes": map[string]string{
				"users":    "GET/POST /users",
				"products": "GET/POST /products",
				"orders":   "GET/POST /orders",
			},
		})
	})

	return router
}

// forward relays the inbound request verbatim (method, full path, query,
// body) and copies the backend's status code and body back unchanged.
func (g *Gateway) forward(route Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			respondWithJSON(w, http.StatusBadRequest, errorEnvelope{Error: "Failed to read request body"})
			return
		}

		target := route.Backend + r.URL.Path
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}

		log.Debug().Str("method", r.Method).Str("target", target).Msg("gateway: forwarding request")

		resp, err := g.do(r.Context(), r.Method, target, body, r.Header.Get("Content-Type"))
		if err != nil {
			log.Error().Err(err).Str("target", target).Msg("gateway: backend unreachable")
			respondWithJSON(w, http.StatusInternalServerError, errorEnvelope{
				Error: "Failed to reach " + route.Prefix + " service",
			})
			return
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			log.Error().Err(err).Str("target", target).Msg("gateway: failed to read backend response")
			respondWithJSON(w, http.StatusInternalServerError, errorEnvelope{
				Error: "Failed to read response from " + route.Prefix + " service",
			})
			return
		}

		log.Debug().Str("target", target).Int("status", resp.StatusCode).Msg("gateway: backend responded")

		// Error statuses keep the backend's code but are wrapped in the
		// gateway envelope, with the backend payload under details.
		if resp.StatusCode >= http.StatusBadRequest {
			details := json.RawMessage(payload)
			if !json.Valid(payload) {
				details, _ = json.Marshal(string(payload))
			}
			respondWithJSON(w, resp.StatusCode, errorEnvelope{
				Error:   "Error response from " + route.Prefix + " service",
				Details: details,
			})
			return
		}

		if ct := resp.Header.Get("Content-Type"); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		w.WriteHeader(resp.StatusCode)
		if _, err := w.Write(payload); err != nil {
			log.Error().Err(err).Msg("gateway: failed to write response")
		}
	}
}

// do issues the forwarded request, retrying transport failures with
// exponential backoff. The body is held in memory so every attempt sends the
// same bytes.
func (g *Gateway) do(ctx context.Context, method, url string, body []byte, contentType string) (*http.Response, error) {
	backoff := initialBackoff

	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}

		resp, err := g.client.Do(req)
		if err == nil {
			return resp, nil
		}
		if attempt >= g.maxRetries {
			return nil, err
		}

		log.Warn().Err(err).Str("url", url).Int("attempt", attempt+1).Dur("backoff", backoff).Msg("gateway: transport failure, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
