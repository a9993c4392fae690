package enrichment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/gearmatch/backend/internal/domain"
)

// estimatedTokenOverhead covers the provider-side prompt framing that does
// not appear in our request body.
const estimatedTokenOverhead = 500

// Client handles communication with the external feature-classification
// provider. Every call books capacity against the shared token limiter
// before it leaves the process.
type Client struct {
	httpClient     *http.Client
	apiKey         string
	baseURL        string
	requestLimiter *rate.Limiter
	tokens         domain.TokenLimiter
	debug          bool
}

// NewClient creates a new enrichment provider client. The token limiter is
// shared process-wide and injected rather than owned here.
func NewClient(apiKey, baseURL string, tokens domain.TokenLimiter) *Client {
	// Request-level politeness limit on top of the token budget:
	// 2 req/sec with a burst of 10.
	limiter := rate.NewLimiter(rate.Limit(2), 10)

	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		apiKey:         apiKey,
		baseURL:        baseURL,
		requestLimiter: limiter,
		tokens:         tokens,
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// featureRequest asks the provider to classify the canonical feature set for
// one model year.
type featureRequest struct {
	Year               string            `json:"year"`
	Model              string            `json:"model"`
	FeatureDefinitions map[string]string `json:"featureDefinitions"`
}

// useCaseRequest asks the provider to rate the model year's suitability for
// each use case.
type useCaseRequest struct {
	Year     string   `json:"year"`
	Model    string   `json:"model"`
	UseCases []string `json:"useCases"`
}

// tokenMeter is the provider's usage accounting attached to every response
type tokenMeter struct {
	TotalTokens int `json:"totalTokens"`
}

type featureResponse struct {
	Features           map[string]domain.FeatureAvailability `json:"features"`
	TrimLevels         []string                              `json:"trimLevels,omitempty"`
	StandardOrOptional string                                `json:"standardOrOptional,omitempty"`
	Usage              tokenMeter                            `json:"usage"`
}

type useCaseResponse struct {
	UseCases map[string]domain.UseCaseSuitability `json:"useCases"`
	Usage    tokenMeter                           `json:"usage"`
}

// FetchProfile issues the feature-availability and use-case-suitability
// requests near-simultaneously and merges both into one FeatureProfile.
// A malformed or non-JSON response is a hard failure for the whole fetch.
func (c *Client) FetchProfile(ctx context.Context, year, model string) (*domain.FeatureProfile, error) {
	if c.debug {
		log.Printf("[ENRICH] FetchProfile called for %s %s", year, model)
	}

	var (
		features featureResponse
		useCases useCaseResponse
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := c.postJSON(gctx, "/v1/vehicle/features", featureRequest{
			Year:               year,
			Model:              model,
			FeatureDefinitions: domain.FeatureDefinitions,
		})
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &features); err != nil {
			return fmt.Errorf("%w: malformed feature response: %v", domain.ErrEnrichmentFailure, err)
		}
		c.tokens.RecordUsage(features.Usage.TotalTokens)
		return nil
	})
	g.Go(func() error {
		body, err := c.postJSON(gctx, "/v1/vehicle/use-cases", useCaseRequest{
			Year:     year,
			Model:    model,
			UseCases: domain.UseCaseNames,
		})
		if err != nil {
			return err
		}
		if err := json.Unmarshal(body, &useCases); err != nil {
			return fmt.Errorf("%w: malformed use-case response: %v", domain.ErrEnrichmentFailure, err)
		}
		c.tokens.RecordUsage(useCases.Usage.TotalTokens)
		return nil
	})

	if err := g.Wait(); err != nil {
		if c.debug {
			log.Printf("[ENRICH] FetchProfile failed for %s %s: %v", year, model, err)
		}
		return nil, err
	}

	if features.Features == nil {
		return nil, fmt.Errorf("%w: feature response carried no features", domain.ErrEnrichmentFailure)
	}

	profile := &domain.FeatureProfile{
		VehicleKey: year + "-" + model,
		Features:   features.Features,
		TrimLevels: features.TrimLevels,
		Mode:       features.StandardOrOptional,
		UseCases:   useCases.UseCases,
		Source:     "classifier",
		FetchedAt:  time.Now(),
	}

	if c.debug {
		log.Printf("[ENRICH] Classified %d features, %d use cases for %s %s",
			len(profile.Features), len(profile.UseCases), year, model)
	}

	return profile, nil
}

// postJSON executes a POST with the shared rate limits and the client's
// retry policy, returning the raw response body.
func (c *Client) postJSON(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	// Book capacity against the token window before the request leaves.
	// Actual usage is recorded from the response's meter afterwards.
	estimated := len(reqBody)/4 + estimatedTokenOverhead
	if err := c.tokens.WaitForCapacity(ctx, estimated); err != nil {
		return nil, err
	}

	reqURL := c.baseURL + path

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.requestLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("User-Agent", "GearMatch/1.0")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if c.debug {
				log.Printf("[ENRICH] Request error (attempt %d): %v", attempt, err)
			}
			lastErr = fmt.Errorf("%w: %v", domain.ErrEnrichmentFailure, err)
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			if c.debug {
				log.Printf("[ENRICH] API error (attempt %d) - Status: %d, Body: %s", attempt, resp.StatusCode, string(body))
			}
			lastErr = fmt.Errorf("%w: status %d", domain.ErrEnrichmentFailure, resp.StatusCode)
			// Client errors other than 429 will not improve on retry
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return nil, lastErr
			}
			time.Sleep(exponentialBackoff(attempt))
			continue
		}

		return body, nil
	}

	return nil, lastErr
}

// exponentialBackoff returns the sleep before the next retry: 500ms, 1s, 2s
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

var _ domain.EnrichmentClient = (*Client)(nil)
