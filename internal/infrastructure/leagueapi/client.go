package leagueapi

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/logging"
	"github.com/riskibarqy/fantasy-league-portal/internal/platform/resilience"
	"github.com/riskibarqy/fantasy-league-portal/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 2 << 20

var errLeagueAPITransient = crerr.New("league api transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the league REST API on behalf of a logged-in user. Calls are
// never retried: a failure is reported once and the caller keeps its state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	flight     resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:     logger,
		breaker:    resilience.NewCircuitBreakerFromConfig(cfg.CircuitBreaker),
	}
}

type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
}

// do sends req and decodes a 2xx body into target (which may be nil).
func (c *Client) do(ctx context.Context, req request, target any) error {
	ctx, span := startSpan(ctx, "leagueapi.Client."+strings.ToLower(req.method))
	defer span.End()

	var raw []byte
	err := c.breaker.Execute(func() error {
		var callErr error
		raw, callErr = c.send(ctx, req)
		return callErr
	}, isCircuitFailure)
	if err != nil {
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "league api circuit breaker rejected request", "path", req.path)
			return fmt.Errorf("%w: league api is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
		return err
	}

	if target == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", usecase.ErrDependencyUnavailable, req.path, err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, req request) ([]byte, error) {
	fullURL := c.baseURL + req.path
	if encoded := req.query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	var body io.Reader
	if req.body != nil {
		encoded, err := sonic.Marshal(req.body)
		if err != nil {
			return nil, crerr.Wrap(err, "marshal request body")
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, body)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token := strings.TrimSpace(req.token); token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "league api request failed", "method", req.method, "path", req.path, "error", err)
		return nil, fmt.Errorf("%w: %w: %s %s: %v", usecase.ErrDependencyUnavailable, errLeagueAPITransient, req.method, req.path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %w: read response body: %v", usecase.ErrDependencyUnavailable, errLeagueAPITransient, err)
	}

	if resp.StatusCode/100 == 2 {
		return raw, nil
	}
	return nil, c.statusError(ctx, req, resp.StatusCode, raw)
}

// statusError maps non-2xx responses. 401 means the upstream session is gone,
// 403 that the user may not touch the resource. Other 4xx messages are shown
// verbatim; 5xx are dependency failures.
func (c *Client) statusError(ctx context.Context, req request, status int, raw []byte) error {
	message := extractMessage(raw)
	if message == "" {
		message = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", usecase.ErrUnauthorized, message)
	case status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", usecase.ErrForbidden, message)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", usecase.ErrNotFound, message)
	case status >= http.StatusInternalServerError || status == http.StatusTooManyRequests || status == http.StatusRequestTimeout:
		c.logger.WarnContext(ctx, "league api returned server error",
			"method", req.method,
			"path", req.path,
			"status_code", status,
		)
		return fmt.Errorf("%w: %w: league api status=%d: %s", usecase.ErrDependencyUnavailable, errLeagueAPITransient, status, message)
	default:
		return &APIError{StatusCode: status, Message: message}
	}
}

// APIError is a 4xx rejection whose message came from the league API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// UpstreamStatus lets the HTTP layer echo the league API status code.
func (e *APIError) UpstreamStatus() int {
	return e.StatusCode
}

func (e *APIError) Unwrap() error {
	return usecase.ErrInvalidInput
}

func extractMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	var envelope errorEnvelope
	if err := sonic.Unmarshal(trimmed, &envelope); err == nil {
		switch {
		case strings.TrimSpace(envelope.Message) != "":
			return strings.TrimSpace(envelope.Message)
		case strings.TrimSpace(envelope.Error) != "":
			return strings.TrimSpace(envelope.Error)
		}
		return ""
	}

	text := string(trimmed)
	if len(text) > 512 {
		text = text[:512]
	}
	return text
}

func isCircuitFailure(err error) bool {
	return stderrors.Is(err, errLeagueAPITransient)
}
