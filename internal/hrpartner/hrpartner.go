// Package hrpartner is the HTTP client for the HR Partner backend REST API.
package hrpartner

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultAPIURL = "http://localhost:8081/api"
	userAgent     = "hr-partner/hrp"
)

// TokenFunc supplies the current bearer token. An empty return means no
// session: the Authorization header is omitted rather than failing
// client-side.
type TokenFunc func() string

type Client struct {
	token      TokenFunc
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

func New(logger *zap.Logger, apiURL string, token TokenFunc) *Client {
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	if token == nil {
		token = func() string { return "" }
	}

	return &Client{
		token:  token,
		APIURL: apiURL,
		HTTPClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger:    logger,
		UserAgent: userAgent,
	}
}
