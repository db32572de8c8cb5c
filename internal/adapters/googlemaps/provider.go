package googlemaps

import (
	"errors"
	"meetup-point-service/internal/ports"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

// Config for the Google Maps Platform client.
type Config struct {
	APIKey string
	// BaseURL overrides the API host; used by tests.
	BaseURL           string
	RequestsPerSecond int
	Timeout           time.Duration
}

// Provider implements ports.MapsProvider using the Google Maps web services.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Expiring travel-duration and place-details caching
//   - A shared rate limit across all outbound calls
//   - Mapping provider statuses to domain.ProviderError
//
// Caches are optional. The provider is safe for concurrent use.
type Provider struct {
	client  *maps.Client
	limiter *rate.Limiter

	geocodeCache  ports.GeocodeCache
	durationCache ports.DurationCache
	detailsCache  ports.DetailsCache
}

var _ ports.MapsProvider = (*Provider)(nil)

type Option func(*Provider)

func WithGeocodeCache(c ports.GeocodeCache) Option {
	return func(p *Provider) { p.geocodeCache = c }
}

func WithDurationCache(c ports.DurationCache) Option {
	return func(p *Provider) { p.durationCache = c }
}

func WithDetailsCache(c ports.DetailsCache) Option {
	return func(p *Provider) { p.detailsCache = c }
}

func NewProvider(cfg Config, opts ...Option) (*Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("google maps api key is empty")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(cfg.APIKey),
		maps.WithHTTPClient(&http.Client{Timeout: timeout}),
	}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, err
	}

	p := &Provider{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), rps),
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
