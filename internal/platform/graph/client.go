package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/imroc/req/v3"
	"github.com/phrazzld/graph-snippets/internal/config"
	"github.com/phrazzld/graph-snippets/internal/platform/logger"
	"github.com/phrazzld/graph-snippets/internal/redact"
)

// UserAgent identifies this application to Graph.
const UserAgent = "graph-snippets/1.0"

// maxRetryWait caps the wait between retries, including Retry-After values.
const maxRetryWait = 30 * time.Second

// Client performs authenticated Graph requests.
type Client struct {
	http     *req.Client
	baseURL  *url.URL
	maxPages int
	logger   *slog.Logger
}

// NewClient creates a Client for the Graph endpoint in cfg.
func NewClient(cfg config.GraphConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	baseURL, err := url.ParseRequestURI(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid graph base url: %w", err)
	}

	httpClient := req.C().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second).
		SetUserAgent(UserAgent).
		SetCommonRetryCount(cfg.RetryCount).
		SetCommonRetryCondition(isTransient).
		SetCommonRetryInterval(retryInterval).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal)

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	return &Client{
		http:     httpClient,
		baseURL:  baseURL,
		maxPages: maxPages,
		logger:   logger.With(slog.String("component", "graph_client")),
	}, nil
}

// Get decodes the resource at path into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body to path and decodes the created resource into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Patch applies a partial update to the resource at path.
func (c *Client) Patch(ctx context.Context, path string, body any) error {
	return c.do(ctx, http.MethodPatch, path, nil, body, nil)
}

// Delete removes the resource at path.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// ListAll reads a collection, following @odata.nextLink until the last page
// or the client's page limit.
func ListAll[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	var items []T
	next := path
	for page := 0; page < c.maxPages && next != ""; page++ {
		var coll Collection[T]
		// nextLink already embeds the original query.
		q := query
		if page > 0 {
			q = nil
			if err := c.checkNextLink(next); err != nil {
				return nil, err
			}
		}
		if err := c.Get(ctx, next, q, &coll); err != nil {
			return nil, err
		}
		items = append(items, coll.Value...)
		next = coll.NextLink
	}

	if next != "" {
		logger.FromContextOrDefault(ctx, c.logger).Debug("collection truncated at page limit",
			slog.String("path", path),
			slog.Int("max_pages", c.maxPages),
			slog.Int("items", len(items)))
	}

	return items, nil
}

// checkNextLink rejects absolute next links that point away from the
// configured Graph origin, so the bearer token is never sent elsewhere.
func (c *Client) checkNextLink(link string) error {
	u, err := url.Parse(link)
	if err != nil {
		return &ServiceError{
			Code:    CodeGeneralException,
			Message: fmt.Sprintf("invalid next link: %v", err),
			Inner:   errors.Join(ErrUntrustedNextLink, err),
		}
	}
	if !u.IsAbs() && u.Host == "" {
		return nil
	}
	if !strings.EqualFold(u.Scheme, c.baseURL.Scheme) || !strings.EqualFold(u.Host, c.baseURL.Host) {
		return &ServiceError{
			Code:    CodeGeneralException,
			Message: fmt.Sprintf("next link host %q does not match %q", u.Host, c.baseURL.Host),
			Inner:   ErrUntrustedNextLink,
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	token, err := accessToken(ctx)
	if err != nil {
		log.Debug("graph request not sent: no access token",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", redact.Error(err)))
		return err
	}

	var errResp errorResponse
	r := c.http.R().
		SetContext(ctx).
		SetBearerAuthToken(token).
		SetErrorResult(&errResp)
	if query != nil {
		r.SetQueryString(query.Encode())
	}
	if body != nil {
		r.SetBody(body)
	}
	if out != nil {
		r.SetSuccessResult(out)
	}

	start := time.Now()
	resp, err := r.Send(method, path)
	if err != nil && statusCode(resp) >= http.StatusBadRequest {
		// The error body could not be decoded; the status still classifies it.
		return toServiceError(resp, &errResp)
	}
	if err != nil {
		log.Debug("graph request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Duration("duration", time.Since(start)),
			slog.String("error", redact.Error(err)))
		return &ServiceError{
			StatusCode: statusCode(resp),
			Code:       CodeGeneralException,
			Message:    err.Error(),
			Inner:      err,
		}
	}

	log.Debug("graph request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.IsErrorState() {
		return toServiceError(resp, &errResp)
	}
	return nil
}

// toServiceError converts a Graph error response. Bodies without a Graph
// error envelope become generalException with the HTTP status text.
func toServiceError(resp *req.Response, errResp *errorResponse) *ServiceError {
	se := &ServiceError{
		StatusCode: resp.StatusCode,
		Code:       errResp.Error.Code,
		Message:    errResp.Error.Message,
		RequestID:  errResp.Error.InnerError.RequestID,
	}
	if se.Code == "" {
		se.Code = CodeGeneralException
	}
	if se.Message == "" {
		se.Message = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if se.RequestID == "" {
		se.RequestID = resp.Header.Get("request-id")
	}
	return se
}

func statusCode(resp *req.Response) int {
	if resp == nil || resp.Response == nil {
		return 0
	}
	return resp.StatusCode
}

// isTransient reports whether a response should be retried: throttling and
// temporary unavailability only. Transport errors are not retried.
func isTransient(resp *req.Response, err error) bool {
	if err != nil || resp == nil || resp.Response == nil {
		return false
	}
	switch resp.StatusCode {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

// retryInterval honors Retry-After (in seconds) and otherwise backs off
// exponentially from one second.
func retryInterval(resp *req.Response, attempt int) time.Duration {
	if resp != nil && resp.Response != nil {
		if v := resp.Header.Get("Retry-After"); v != "" {
			if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
				return min(time.Duration(secs)*time.Second, maxRetryWait)
			}
		}
	}
	attempt = max(1, min(attempt, 6))
	return min(time.Second<<(attempt-1), maxRetryWait)
}

// IsServiceError reports whether err carries a *ServiceError and returns it.
func IsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}
