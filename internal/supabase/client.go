// Package supabase is a small PostgREST client for the hosted backend.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cofre/internal/resilience"
)

var tracer = otel.Tracer("supabase")

var ErrNotConfigured = errors.New("supabase url or key not configured")

// StatusError is a non-2xx answer from PostgREST.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("supabase returned status %d: %s", e.Code, e.Body)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cb         *gobreaker.CircuitBreaker
	cfg        resilience.Config
	logger     *zap.Logger
}

func NewClient(httpClient *http.Client, baseURL, apiKey string, cb *gobreaker.CircuitBreaker, cfg resilience.Config, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		cb:         cb,
		cfg:        cfg,
		logger:     logger,
	}
}

func (c *Client) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// Eq builds an equality filter, the only kind the app needs.
func Eq(column, value string) Filter {
	return Filter{column: column, op: "eq", value: value}
}

// IsNull matches rows where column is NULL.
func IsNull(column string) Filter {
	return Filter{column: column, op: "is", value: "null"}
}

type Filter struct {
	column, op, value string
}

// Select decodes every row of table matching filters into out.
func (c *Client) Select(ctx context.Context, table string, out any, filters ...Filter) error {
	body, err := c.call(ctx, "Select", http.MethodGet, table, nil, filters)
	if err != nil {
		return err
	}

	return decode(body, out)
}

// Insert posts rows and decodes the created rows into out, if given.
func (c *Client) Insert(ctx context.Context, table string, rows, out any) error {
	body, err := c.call(ctx, "Insert", http.MethodPost, table, rows, nil)
	if err != nil {
		return err
	}

	return decode(body, out)
}

// Update patches every row matching filters and decodes the updated rows into out.
func (c *Client) Update(ctx context.Context, table string, patch, out any, filters ...Filter) error {
	body, err := c.call(ctx, "Update", http.MethodPatch, table, patch, filters)
	if err != nil {
		return err
	}

	return decode(body, out)
}

func (c *Client) Delete(ctx context.Context, table string, filters ...Filter) error {
	_, err := c.call(ctx, "Delete", http.MethodDelete, table, nil, filters)
	return err
}

func (c *Client) call(ctx context.Context, op, method, table string, payload any, filters []Filter) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	ctx, span := tracer.Start(ctx, "Supabase."+op)
	defer span.End()
	span.SetAttributes(attribute.String("db.table", table))

	var reqBody []byte

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding %s payload: %w", table, err)
		}

		reqBody = b
	}

	var body []byte

	_, err := c.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, c.cfg, func() error {
			b, err := c.doRequest(ctx, method, buildPath(table, filters), reqBody)
			if err != nil {
				return err
			}

			body = b

			return nil
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		var perm *resilience.Permanent
		if errors.As(err, &perm) {
			return nil, perm.Err
		}

		return nil, err
	}

	return body, nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/rest/v1/"+path, reqBody)
	if err != nil {
		return nil, &resilience.Permanent{Err: err}
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("supabase: request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)

		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("supabase: non-2xx response",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)

		statusErr := &StatusError{Code: resp.StatusCode, Body: string(body)}
		if retryable(resp.StatusCode) {
			return nil, statusErr
		}

		return nil, &resilience.Permanent{Err: statusErr}
	}

	c.logger.Debug("supabase: request OK",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
	)

	return body, nil
}

func retryable(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests || status == http.StatusRequestTimeout
}

func buildPath(table string, filters []Filter) string {
	if len(filters) == 0 {
		return table
	}

	q := url.Values{}
	for _, f := range filters {
		q.Add(f.column, f.op+"."+f.value)
	}

	return table + "?" + q.Encode()
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding supabase response: %w", err)
	}

	return nil
}
