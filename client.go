package sls

import (
	"net/http"
	"os"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/openlogs/sls-client-go/common"
	"github.com/openlogs/sls-client-go/logger"
)

var log = logger.NewLogrusLogger(logger.WithDebugLevel())

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds the connection and credential settings of a client.
type Config struct {
	// Endpoint is the service host, optionally prefixed with "http://" or
	// "https://". Without a prefix the client uses https.
	Endpoint string

	// Project is the project name prepended to the endpoint host. Optional for
	// account-level operations.
	Project string

	// AccessKeyID and AccessKeySecret authenticate every request.
	AccessKeyID     string
	AccessKeySecret string

	// SecurityToken is the optional STS session token sent as
	// x-acs-security-token.
	SecurityToken string

	// Timeout bounds each request. Zero means the package default. A per-call
	// option takes precedence over this value.
	Timeout time.Duration

	// HTTPClient optionally overrides the HTTP client used for the exchange.
	HTTPClient *http.Client
}

// ConfigFromEnvironment builds a Config from the SLS_* environment variables.
func ConfigFromEnvironment() Config {
	return Config{
		Endpoint:        os.Getenv(common.EnvEndpoint),
		Project:         os.Getenv(common.EnvProject),
		AccessKeyID:     os.Getenv(common.EnvAccessKeyID),
		AccessKeySecret: os.Getenv(common.EnvAccessKeySecret),
		SecurityToken:   os.Getenv(common.EnvSecurityToken),
	}
}

// Client issues signed requests to the service. Methods are safe for concurrent
// use as long as the credentials are not being rotated; see SetCredentials.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a client from the given configuration.
// It returns an error when the endpoint or the access key pair is missing.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("sls: endpoint is empty")
	}
	if cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return nil, errors.New("sls: access key id and secret are required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{cfg: cfg, httpClient: httpClient}, nil
}

// SetCredentials replaces the access key pair and session token in place, for
// credential rotation. The update is not atomic: callers rotating credentials
// while requests are in flight must serialize the update externally.
func (c *Client) SetCredentials(accessKeyID, accessKeySecret, securityToken string) {
	c.cfg.AccessKeyID = accessKeyID
	c.cfg.AccessKeySecret = accessKeySecret
	c.cfg.SecurityToken = securityToken
}
