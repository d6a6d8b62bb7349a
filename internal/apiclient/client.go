// Package apiclient talks to a running riskreg API.
package apiclient

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/riskreg/riskreg/internal/register"
	"github.com/riskreg/riskreg/internal/risk"
	"github.com/riskreg/riskreg/pkg/shared/config"
	"github.com/riskreg/riskreg/pkg/shared/httpclient"
)

// ResponseError is returned for non-2xx API responses.
type ResponseError struct {
	StatusCode int
	Body       string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("risk API responded with %d: %s", e.StatusCode, e.Body)
}

// Client is a thin resty wrapper around the risk API.
type Client struct {
	httpc  *resty.Client
	url    string
	logger hclog.Logger
}

// New creates a client for baseURL. A nil httpc gets a default resty client.
func New(baseURL string, httpc *resty.Client, logger hclog.Logger) *Client {
	if httpc == nil {
		httpc = resty.New()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	httpc.SetBaseURL(baseURL)
	httpc.SetHeader("Accept", "application/json")

	return &Client{
		httpc:  httpc,
		url:    baseURL,
		logger: logger,
	}
}

// NewFromConfig creates a client for the configured API with the shared resty settings.
func NewFromConfig(cfg *config.Config, logger hclog.Logger) *Client {
	return New(config.GetAPIBaseURL(cfg), httpclient.InitializeRestyClient(logger, cfg), logger)
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.url
}

// Assess submits a new assessment and returns the stored record.
func (c *Client) Assess(ctx context.Context, in risk.Input) (risk.Record, error) {
	var record risk.Record
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&record).
		Post("/assess-risk")
	if err != nil {
		return risk.Record{}, fmt.Errorf("error submitting assessment for %q: %w", in.Asset, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return risk.Record{}, &ResponseError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	c.logger.Debug("assessment stored", "id", record.ID, "level", record.Level)
	return record.Stamp(), nil
}

// List fetches the register, filtered server-side, and re-stamps every record.
func (c *Client) List(ctx context.Context, filter register.Filter) ([]risk.Record, error) {
	var records []risk.Record
	req := c.httpc.R().
		SetContext(ctx).
		SetResult(&records)
	if filter != "" && filter != register.FilterAll {
		req.SetQueryParam("level", string(filter))
	}

	resp, err := req.Get("/risks")
	if err != nil {
		return nil, fmt.Errorf("error fetching risks: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &ResponseError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	c.logger.Debug("risks fetched", "count", len(records), "filter", filter)
	if records == nil {
		records = []risk.Record{}
	}
	return risk.StampAll(records), nil
}

// Delete removes a record by id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	resp, err := c.httpc.R().
		SetContext(ctx).
		SetPathParam("id", fmt.Sprint(id)).
		Delete("/risks/{id}")
	if err != nil {
		return fmt.Errorf("error deleting risk %d: %w", id, err)
	}
	if resp.StatusCode() != http.StatusNoContent {
		return &ResponseError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	return nil
}
