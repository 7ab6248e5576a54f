package recoengine

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/andrisetiawan/squadhub/internal/domain/recommendation"
	"github.com/andrisetiawan/squadhub/internal/platform/resilience"
	"github.com/andrisetiawan/squadhub/internal/usecase"
)

var errRecoEngineTransient = crerr.New("recommendation engine transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *slog.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client calls the AI recommendation engine that seeds training plan
// content. Generation for the same team and kind is deduplicated through
// singleflight because bulk team assignment fans out concurrently.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	maxRetries     int
	logger         *slog.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		apiKey:         strings.TrimSpace(cfg.APIKey),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (c *Client) GenerateForTeam(ctx context.Context, teamID string, kind recommendation.Kind) (recommendation.Payload, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return recommendation.Payload{}, fmt.Errorf("team id is required")
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "recommendation engine circuit breaker rejected request", "state", c.breaker.State())
			return recommendation.Payload{}, fmt.Errorf("%w: recommendation engine is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	key := teamID + "|" + string(kind)
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, teamID, kind)
		if c.circuitEnabled {
			if reqErr != nil && isCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		if isCircuitFailure(err) {
			return recommendation.Payload{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return recommendation.Payload{}, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return recommendation.Payload{}, fmt.Errorf("unexpected response payload type %T", out)
	}

	var decoded generateResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return recommendation.Payload{}, fmt.Errorf("decode recommendation payload: %w", err)
	}

	payload := recommendation.Payload{
		Kind:      kind,
		Summary:   decoded.Summary,
		Physical:  decoded.Physical,
		Technical: decoded.Technical,
		Tactical:  decoded.Tactical,
		Mental:    decoded.Mental,
		Analysis:  decoded.Analysis,
	}
	if err := payload.Validate(); err != nil {
		return recommendation.Payload{}, crerr.Wrap(err, "recommendation engine returned an unusable payload")
	}

	return payload, nil
}

func (c *Client) executeRequest(ctx context.Context, teamID string, kind recommendation.Kind) ([]byte, error) {
	// the body buffer is pooled and must outlive every retry attempt.
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(generateRequest{TeamID: teamID, Kind: string(kind)}); err != nil {
		return nil, crerr.Wrap(err, "marshal generate request")
	}

	fullURL := c.baseURL + "/v1/recommendations/team"
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return nil, crerr.Wrap(err, "build generate request")
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if c.apiKey != "" {
			req.Header.Set("Authorization", "Bearer "+c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send generate request: %v", errRecoEngineTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read generate response: %v", errRecoEngineTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: engine status=%d body=%s", errRecoEngineTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("engine status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("generate request failed")
	}
	c.logger.WarnContext(ctx, "recommendation engine request failed", "team_id", teamID, "kind", string(kind), "error", lastErr)
	return nil, lastErr
}

type generateRequest struct {
	TeamID string `json:"team_id"`
	Kind   string `json:"kind"`
}

type generateResponse struct {
	Summary   string `json:"summary"`
	Physical  string `json:"physical"`
	Technical string `json:"technical"`
	Tactical  string `json:"tactical"`
	Mental    string `json:"mental"`
	Analysis  string `json:"analysis"`
}

func isCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errRecoEngineTransient)
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

// abbreviateBody keeps error messages loggable when the engine returns a
// large HTML error page.
func abbreviateBody(raw []byte) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	const maxLen = 512
	text := strings.TrimSpace(string(raw))
	if len(text) <= maxLen {
		return text
	}
	_, _ = buf.WriteString(text[:maxLen])
	_, _ = buf.WriteString("...(truncated)")
	return buf.String()
}
