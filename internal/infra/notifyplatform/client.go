package notifyplatform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-reminder-scheduling/internal/domain"
)

const (
	defaultMaxRetries = 3
	retryBackoff      = 200 * time.Millisecond
)

// Client talks to the notify platform, the external service that owns the
// live trigger queue and the notification permission state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
}

var _ domain.NotificationPlatform = (*Client)(nil)

// NewClient creates a platform client. maxRetries is the number of extra
// attempts after a transport failure or 5xx response; negative values fall
// back to the default, zero disables retries.
func NewClient(baseURL string, timeout time.Duration, maxRetries int) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxRetries < 0 {
		maxRetries = defaultMaxRetries
	}

	c := newHTTPClient(baseURL)
	c.Timeout = timeout

	return &Client{
		baseURL:    baseURL,
		httpClient: c,
		maxRetries: maxRetries,
	}
}

// do sends a request, retrying transport failures and 5xx responses with a
// linear backoff. The request is rebuilt per attempt so bodies replay.
func (c *Client) do(ctx context.Context, method, u string, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}

		var reader io.Reader
		if len(body) > 0 {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, u, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		if len(body) > 0 {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("failed to call notify platform: %w", err)
			continue
		}
		if resp.StatusCode >= http.StatusInternalServerError && attempt < c.maxRetries {
			lastErr = fmt.Errorf("notify platform returned status %d", resp.StatusCode)
			closeBody(resp.Body)
			slog.DebugContext(ctx, "retrying notify platform call",
				slog.String("method", method),
				slog.Int("status", resp.StatusCode),
				slog.Int("attempt", attempt+1),
			)
			continue
		}
		return resp, nil
	}
	return nil, lastErr
}

func (c *Client) ScheduleTrigger(ctx context.Context, content domain.NotificationContent, rule domain.TriggerRule) (string, error) {
	body, err := json.Marshal(scheduleTriggerRequest{Content: content, Rule: rule})
	if err != nil {
		return "", fmt.Errorf("failed to marshal trigger request: %w", err)
	}

	u, err := c.endpoint("/api/v1/triggers")
	if err != nil {
		return "", err
	}

	resp, err := c.do(ctx, http.MethodPost, u, body)
	if err != nil {
		return "", err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return "", responseError("schedule trigger", resp)
	}

	var out scheduleTriggerResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode trigger response: %w", err)
	}

	slog.DebugContext(ctx, "trigger scheduled",
		slog.String("handle_id", out.HandleID),
		slog.String("plan_id", content.PlanID),
		slog.String("trigger_type", string(rule.Type)),
	)

	return out.HandleID, nil
}

// CancelTrigger is idempotent: a 404 from the platform means the trigger is
// already gone and is treated as success.
func (c *Client) CancelTrigger(ctx context.Context, handleID string) error {
	u, err := c.endpoint("/api/v1/triggers/" + url.PathEscape(handleID))
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	switch resp.StatusCode {
	case http.StatusNoContent, http.StatusOK, http.StatusNotFound:
		return nil
	default:
		return responseError("cancel trigger", resp)
	}
}

func (c *Client) CancelAllTriggers(ctx context.Context) error {
	u, err := c.endpoint("/api/v1/triggers")
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return responseError("cancel all triggers", resp)
	}

	return nil
}

func (c *Client) ListScheduled(ctx context.Context) ([]domain.ScheduledNotification, error) {
	u, err := c.endpoint("/api/v1/triggers")
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, responseError("list scheduled", resp)
	}

	var out listScheduledResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode list response: %w", err)
	}

	return out.Triggers, nil
}

func (c *Client) PermissionState(ctx context.Context) (domain.PermissionState, error) {
	return c.permission(ctx, http.MethodGet, "/api/v1/permission")
}

func (c *Client) RequestPermission(ctx context.Context) (domain.PermissionState, error) {
	return c.permission(ctx, http.MethodPost, "/api/v1/permission/request")
}

func (c *Client) permission(ctx context.Context, method, path string) (domain.PermissionState, error) {
	u, err := c.endpoint(path)
	if err != nil {
		return domain.PermissionUndetermined, err
	}

	resp, err := c.do(ctx, method, u, nil)
	if err != nil {
		return domain.PermissionUndetermined, err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return domain.PermissionUndetermined, responseError("permission", resp)
	}

	var out permissionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.PermissionUndetermined, fmt.Errorf("failed to decode permission response: %w", err)
	}

	switch domain.PermissionState(out.State) {
	case domain.PermissionGranted:
		return domain.PermissionGranted, nil
	case domain.PermissionDenied:
		return domain.PermissionDenied, nil
	default:
		return domain.PermissionUndetermined, nil
	}
}

func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}
	u.Path = path
	return u.String(), nil
}

func responseError(operation string, resp *http.Response) error {
	var apiErr errorResponse
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		_ = json.Unmarshal(data, &apiErr)
	}
	if apiErr.Error != "" {
		return fmt.Errorf("%s failed with status %d: %s", operation, resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("%s failed with status %d", operation, resp.StatusCode)
}

func closeBody(body io.ReadCloser) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		slog.Debug("failed to drain response body", slog.String("error", err.Error()))
	}
	if err := body.Close(); err != nil {
		slog.Debug("failed to close response body", slog.String("error", err.Error()))
	}
}
