package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go-evkeeper/pkg/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Client is the read-only PokeAPI client. One call per resource, no
// caching logic here; callers are responsible for cache tiers and
// request coalescing.
type Client interface {
	GetPokemon(ctx context.Context, speciesNumber int) (*PokemonResponse, error)
	GetPokemonCount(ctx context.Context) (int, error)
	GetPokemonPage(ctx context.Context, limit int) (*PagedList, error)
	GetItem(ctx context.Context, name string) (*ItemResponse, error)
	GetNatureList(ctx context.Context, limit int) (*PagedList, error)
	GetNature(ctx context.Context, name string) (*NatureResponse, error)
}

// HTTPClient implements Client against the live PokeAPI REST endpoints
type HTTPClient struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	retryClient RetryClient
}

// NewClient creates a new PokeAPI client
func NewClient() *HTTPClient {
	var transport http.RoundTripper = http.DefaultTransport

	// Only add OpenTelemetry instrumentation if telemetry is enabled
	if config.GetBoolEnv("ENABLE_TELEMETRY", false) {
		transport = otelhttp.NewTransport(http.DefaultTransport,
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Host)
			}),
		)
	}

	userAgent := config.GetEnv("POKEAPI_USER_AGENT", "go-evkeeper/1.0.0 contact@example.com")

	httpClient := &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}

	return &HTTPClient{
		httpClient:  httpClient,
		baseURL:     config.GetEnv("POKEAPI_BASE_URL", "https://pokeapi.co/api/v2"),
		userAgent:   userAgent,
		retryClient: NewDefaultRetryClient(httpClient),
	}
}

// GetPokemon retrieves one pokemon's detail payload by species number
func (c *HTTPClient) GetPokemon(ctx context.Context, speciesNumber int) (*PokemonResponse, error) {
	var span trace.Span
	endpoint := fmt.Sprintf("/pokemon/%d", speciesNumber)

	if config.GetBoolEnv("ENABLE_TELEMETRY", false) {
		tracer := otel.Tracer("go-evkeeper/pokeapi")
		ctx, span = tracer.Start(ctx, "pokeapi.GetPokemon")
		defer span.End()

		span.SetAttributes(
			attribute.String("pokeapi.endpoint", endpoint),
			attribute.Int("pokeapi.species_number", speciesNumber),
		)
	}

	var pokemon PokemonResponse
	if err := c.getJSON(ctx, endpoint, &pokemon); err != nil {
		if span != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch pokemon")
		}
		return nil, err
	}

	if span != nil {
		span.SetStatus(codes.Ok, "fetched pokemon")
	}

	slog.InfoContext(ctx, "Fetched pokemon from PokeAPI",
		slog.Int("species_number", speciesNumber),
		slog.String("name", pokemon.Name))

	return &pokemon, nil
}

// GetPokemonCount probes the authoritative pokemon count via a
// minimal list request (limit=1).
func (c *HTTPClient) GetPokemonCount(ctx context.Context) (int, error) {
	var page PagedList
	if err := c.getJSON(ctx, "/pokemon?limit=1", &page); err != nil {
		return 0, err
	}
	if page.Count < 1 {
		return 0, fmt.Errorf("PokeAPI returned invalid pokemon count %d", page.Count)
	}
	return page.Count, nil
}

// GetPokemonPage retrieves the paged pokemon list sized by limit
func (c *HTTPClient) GetPokemonPage(ctx context.Context, limit int) (*PagedList, error) {
	var page PagedList
	if err := c.getJSON(ctx, fmt.Sprintf("/pokemon?limit=%d", limit), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetItem retrieves one item's detail payload by normalized name
func (c *HTTPClient) GetItem(ctx context.Context, name string) (*ItemResponse, error) {
	var item ItemResponse
	if err := c.getJSON(ctx, "/item/"+name, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetNatureList retrieves the paged nature list
func (c *HTTPClient) GetNatureList(ctx context.Context, limit int) (*PagedList, error) {
	var page PagedList
	if err := c.getJSON(ctx, fmt.Sprintf("/nature?limit=%d", limit), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetNature retrieves one nature's detail payload by name
func (c *HTTPClient) GetNature(ctx context.Context, name string) (*NatureResponse, error) {
	var nature NatureResponse
	if err := c.getJSON(ctx, "/nature/"+name, &nature); err != nil {
		return nil, err
	}
	return &nature, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, dest any) error {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.retryClient.DoWithRetry(ctx, req, 3)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to call PokeAPI", "endpoint", endpoint, "error", err)
		return fmt.Errorf("failed to call PokeAPI: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "PokeAPI returned error status",
			"endpoint", endpoint,
			"status_code", resp.StatusCode)
		return fmt.Errorf("PokeAPI returned status %d for %s", resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	return nil
}
