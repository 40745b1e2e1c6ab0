package sls

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	stderrors "errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/openlogs/sls-client-go/common"
)

// defaultRequestTimeout bounds a request when neither the client config nor a
// per-call option sets one.
const defaultRequestTimeout = 30 * time.Second

// callOptions holds per-call overrides.
type callOptions struct {
	timeout time.Duration
}

// CallOption is a function type used to configure a single call.
type CallOption func(*callOptions)

// WithRequestTimeout is a call option that bounds this request with the given
// wall-clock timeout. It takes precedence over the client-level timeout.
func WithRequestTimeout(d time.Duration) CallOption {
	return func(o *callOptions) {
		o.timeout = d
	}
}

// execute builds, signs and issues a single request, then maps the response.
// It returns the raw response body; a body carrying one of the service error
// envelopes is returned as a typed *Error instead. A non-JSON body passes
// through untouched.
func (c *Client) execute(ctx context.Context, method, path string, queries, headers map[string]string, body []byte, opts ...CallOption) ([]byte, error) {
	var co callOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&co)
		}
	}

	hdrs := map[string]string{
		"Content-Type":               "application/json",
		"Date":                       time.Now().UTC().Format(http.TimeFormat),
		common.HeaderAPIVersion:      common.APIVersion,
		common.HeaderSignatureMethod: common.SignatureMethod,
	}
	for name, value := range headers {
		hdrs[name] = value
	}
	if c.cfg.SecurityToken != "" {
		hdrs[common.HeaderSecurityToken] = c.cfg.SecurityToken
	}
	if len(body) > 0 {
		sum := md5.Sum(body)
		hdrs["Content-MD5"] = strings.ToUpper(hex.EncodeToString(sum[:]))
		hdrs["Content-Length"] = strconv.Itoa(len(body))
	}

	resource := path
	if method == http.MethodGet && len(queries) > 0 {
		resource = canonicalizedResource(path, queries)
	}
	hdrs["Authorization"] = common.AuthScheme + " " + c.cfg.AccessKeyID + ":" +
		signature(method, resource, hdrs, c.cfg.AccessKeySecret)

	timeout := defaultRequestTimeout
	if c.cfg.Timeout > 0 {
		timeout = c.cfg.Timeout
	}
	if co.timeout > 0 {
		timeout = co.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	targetURL := c.buildURL(path, queries)
	req, err := http.NewRequestWithContext(ctx, method, targetURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, path)
	}
	for name, value := range hdrs {
		// net/http derives Content-Length from the body; the header entry
		// exists only for signing.
		if strings.EqualFold(name, "Content-Length") {
			continue
		}
		req.Header.Set(name, value)
	}

	log.WithField("url", targetURL).Debugf("%s %s", method, path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, errors.Wrapf(ErrRequestTimeout, "%s %s", method, path)
		}
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, errors.Wrapf(ErrRequestTimeout, "%s %s", method, path)
		}
		return nil, errors.Wrapf(err, "read response of %s %s", method, path)
	}

	if !strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		return data, nil
	}
	if svcErr := serviceError(resp.StatusCode, resp.Header.Get(common.HeaderRequestID), data); svcErr != nil {
		log.WithField("code", svcErr.Code).WithField("requestID", svcErr.RequestID).
			Debugf("service error on %s %s", method, path)
		return nil, svcErr
	}
	return data, nil
}

// buildURL assembles scheme://[project.]endpoint[path][?querystring].
func (c *Client) buildURL(path string, queries map[string]string) string {
	scheme := "https"
	host := c.cfg.Endpoint
	switch {
	case strings.HasPrefix(host, "http://"):
		scheme = "http"
		host = strings.TrimPrefix(host, "http://")
	case strings.HasPrefix(host, "https://"):
		host = strings.TrimPrefix(host, "https://")
	}
	if c.cfg.Project != "" {
		host = c.cfg.Project + "." + host
	}
	u := scheme + "://" + host + path
	if len(queries) > 0 {
		u += "?" + urlQueryString(queries)
	}
	return u
}

// isTimeout reports whether the exchange failed because the bounded deadline
// elapsed, as opposed to any other transport failure.
func isTimeout(err error) bool {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
