// Package client implements a wrapper for the REST and websocket API of a catapult node.
package client

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-resty/resty/v2"
	"github.com/iotaledger/hive.go/logger"

	"github.com/nemtech/catapult-sdk-go/packages/catapult"
	"github.com/nemtech/catapult-sdk-go/packages/jsonmodels"
)

const (
	contentTypeJSON = "application/json"

	defaultTimeout      = 10 * time.Second
	defaultStatementTTL = 10 * time.Minute
)

// Config contains the settings of a Client. The optional network fields short-circuit the requests that would
// otherwise fetch them from the node.
type Config struct {
	URL          string
	WebSocketURL string
	Timeout      time.Duration
	Retries      int
	StatementTTL time.Duration

	NetworkType     *catapult.NetworkType
	GenerationHash  string
	EpochAdjustment *time.Duration
}

// Client is an API wrapper over the REST API of a catapult node. It is safe for concurrent use.
type Client struct {
	config     Config
	httpClient *resty.Client
	statements *statementCache
	metrics    *Metrics
	log        *logger.Logger

	networkMu       sync.Mutex
	networkLoaded   bool
	networkErr      error
	networkType     catapult.NetworkType
	generationHash  string
	epochAdjustment time.Duration
}

// New returns a new Client for the node at the configured URL.
func New(config Config, log *logger.Logger, metrics *Metrics) (*Client, error) {
	if config.URL == "" {
		return nil, errors.New("node url must not be empty")
	}
	config.URL = strings.TrimSuffix(config.URL, "/")
	if config.WebSocketURL == "" {
		config.WebSocketURL = defaultWebSocketURL(config.URL)
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.StatementTTL == 0 {
		config.StatementTTL = defaultStatementTTL
	}

	statements, err := newStatementCache(config.StatementTTL)
	if err != nil {
		return nil, err
	}

	httpClient := resty.New().
		SetHostURL(config.URL).
		SetTimeout(config.Timeout).
		SetRetryCount(config.Retries).
		SetHeader("Accept", contentTypeJSON)
	httpClient.AddRetryCondition(func(response *resty.Response, err error) bool {
		return err != nil || response.StatusCode() >= http.StatusInternalServerError
	})

	return &Client{
		config:     config,
		httpClient: httpClient,
		statements: statements,
		metrics:    metrics,
		log:        log,
	}, nil
}

// URL returns the URL of the node.
func (c *Client) URL() string {
	return c.config.URL
}

// WebSocketURL returns the URL of the websocket endpoint of the node.
func (c *Client) WebSocketURL() string {
	return c.config.WebSocketURL
}

// Close releases the resources of the Client.
func (c *Client) Close() {
	if err := c.statements.Close(); err != nil {
		c.log.Errorw("Failed to close statement cache", "err", err)
	}
}

// do executes the request and decodes the answer into the result. The route names the endpoint in the metrics.
func (c *Client) do(ctx context.Context, method, route string, prepare func(request *resty.Request), result interface{}) error {
	request := c.httpClient.R().
		SetContext(ctx).
		SetError(&jsonmodels.ErrorResponse{})
	if result != nil {
		request.SetResult(result)
	}
	if prepare != nil {
		prepare(request)
	}

	response, err := request.Execute(method, route)
	if err != nil {
		c.metrics.observe(method, route, 0, 0)
		c.log.Debugw("Request failed", "method", method, "route", route, "err", err)

		return errors.Wrapf(err, "failed to %s %s", method, route)
	}
	c.metrics.observe(method, route, response.StatusCode(), response.Time())

	if response.IsError() {
		err = interpretError(response)
		c.log.Debugw("Request rejected", "method", method, "route", route, "status", response.StatusCode(), "err", err)

		return err
	}

	return nil
}

func defaultWebSocketURL(url string) string {
	switch {
	case strings.HasPrefix(url, "https://"):
		url = "wss://" + strings.TrimPrefix(url, "https://")
	case strings.HasPrefix(url, "http://"):
		url = "ws://" + strings.TrimPrefix(url, "http://")
	}

	return url + "/ws"
}
