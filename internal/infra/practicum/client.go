// internal/infra/practicum/client.go
package practicum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
)

const (
	defaultRequestTimeout = 30 * time.Second
	maxBodySize           = 16 << 20
)

type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// Client implements homework.Client against the Practicum homework-status endpoint.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewClient(endpoint, token string, logger *logrus.Logger, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		token:      token,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     logger,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch requests every homework whose status changed at or after cursor.
func (c *Client) Fetch(ctx context.Context, cursor int64) (any, error) {
	params := url.Values{}
	params.Set("from_date", strconv.FormatInt(cursor, 10))
	c.logger.Debugf("Requesting homework statuses with params: %s", params.Encode())

	fullURL, err := c.buildURL(params)
	if err != nil {
		return nil, &homework.TransportError{Op: "request", Params: params, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &homework.TransportError{Op: "request", Params: params, Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &homework.TransportError{Op: "request", Params: params, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil, &homework.UnexpectedStatusError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &homework.TransportError{Op: "request", Params: params, Err: err}
	}
	c.logger.Debugf("Homework API request succeeded. Status code: %d", resp.StatusCode)

	payload, err := decode(body)
	if err != nil {
		return nil, &homework.TransportError{Op: "decode", Params: params, Err: err}
	}
	return payload, nil
}

func (c *Client) buildURL(params url.Values) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	for k, vs := range params {
		q[k] = vs
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// decode keeps numbers as json.Number so timestamps survive without float rounding.
func decode(body []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON value")
	}
	return payload, nil
}
