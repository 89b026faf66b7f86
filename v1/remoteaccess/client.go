package remoteaccess

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

//go:generate mockgen -source=client.go -destination=mock_client.go -package=remoteaccess

// Logger is the logging surface the package needs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// API is the part of the vehicle platform the service uses.
type API interface {
	SendCommand(ctx context.Context, vehicleID string, payload []byte) (int, error)
	VehicleRegistered(ctx context.Context, vehicleID string) (bool, error)
	ListUserVehicles(ctx context.Context, userID string) ([]string, error)
}

// Client calls the platform's commands, vehicles and users APIs.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tokens     TokenSource
	logger     Logger
}

var _ API = (*Client)(nil)

func NewClient(cfg Config, tokens TokenSource, logger Logger) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

// SendCommand posts payload to the vehicle's command handler and returns the
// upstream status code. Only transport and token failures are errors.
func (c *Client) SendCommand(ctx context.Context, vehicleID string, payload []byte) (int, error) {
	endpoint := fmt.Sprintf("%s/commands/api/command/%s/vehicle/%s?api-version=%s",
		c.cfg.baseURL(), url.PathEscape(c.cfg.CommandName), url.PathEscape(vehicleID),
		url.QueryEscape(c.cfg.CommandAPIVersion))

	resp, err := c.do(ctx, "send command", CommandToken, http.MethodPost, endpoint, payload)
	if err != nil {
		return 0, err
	}
	defer drain(resp)

	c.logger.Info("command sent to vehicle", nil, map[string]interface{}{
		"vehicle_id":  vehicleID,
		"status_code": resp.StatusCode,
	})
	return resp.StatusCode, nil
}

// VehicleRegistered reports whether the platform's registration API knows vehicleID.
func (c *Client) VehicleRegistered(ctx context.Context, vehicleID string) (bool, error) {
	endpoint := fmt.Sprintf("%s/vehicles/api/registration/vehicle/%s?api-version=%s",
		c.cfg.baseURL(), url.PathEscape(vehicleID), url.QueryEscape(c.cfg.VehicleAPIVersion))

	resp, err := c.do(ctx, "vehicle registration", UserToken, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, err
	}
	defer drain(resp)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusUnauthorized:
		return false, &StatusError{Op: "vehicle registration", StatusCode: resp.StatusCode}
	default:
		return false, nil
	}
}

type userVehiclesPage struct {
	Items                []string `json:"Items"`
	ResponseContinuation *string  `json:"ResponseContinuation"`
}

// ListUserVehicles collects the vehicle IDs assigned to userID across all pages.
func (c *Client) ListUserVehicles(ctx context.Context, userID string) ([]string, error) {
	base := fmt.Sprintf("%s/users/api/user/%s/vehicles", c.cfg.baseURL(), url.PathEscape(userID))

	var (
		vehicles     []string
		continuation string
	)
	for page := 0; ; page++ {
		q := url.Values{}
		if page > 0 {
			q.Set("responseContinuation", continuation)
		}
		q.Set("api-version", c.cfg.UserAPIVersion)

		resp, err := c.do(ctx, "list user vehicles", UserToken, http.MethodGet, base+"?"+q.Encode(), nil)
		if err != nil {
			return nil, err
		}

		var body userVehiclesPage
		err = decodePage(resp, &body)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, body.Items...)

		if body.ResponseContinuation == nil || *body.ResponseContinuation == "" {
			break
		}
		continuation = *body.ResponseContinuation
	}

	c.logger.Info("listed user vehicles", nil, map[string]interface{}{
		"user_id": userID,
		"count":   len(vehicles),
	})
	return vehicles, nil
}

func decodePage(resp *http.Response, out *userVehiclesPage) error {
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Op: "list user vehicles", StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return nil
}

// do sends one request and, if the API answers 401, fetches a fresh token and
// sends a new request once more.
func (c *Client) do(ctx context.Context, op string, kind TokenKind, method, endpoint string, body []byte) (*http.Response, error) {
	resp, err := c.send(ctx, kind, false, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	drain(resp)

	c.logger.Warn("platform rejected token, retrying with a fresh one", nil, map[string]interface{}{
		"op":   op,
		"kind": string(kind),
	})

	resp, err = c.send(ctx, kind, true, method, endpoint, body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Error("platform rejected a freshly fetched token", nil, map[string]interface{}{
			"op":   op,
			"kind": string(kind),
		})
	}
	return resp, nil
}

func (c *Client) send(ctx context.Context, kind TokenKind, refresh bool, method, endpoint string, body []byte) (*http.Response, error) {
	token, err := c.tokens.Token(ctx, kind, refresh)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("remoteaccess: build request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.cfg.SubscriptionKey)
	req.Header.Set("Authorization", "bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remoteaccess: %s %s: %w", method, req.URL.Path, err)
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
