package sls

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"sort"
	"strings"
)

// Header name prefixes that participate in the canonicalized-headers string.
var signedHeaderPrefixes = []string{"x-log-", "x-acs-"}

// headerIndex builds a lowercased-key index over a header mapping for
// case-insensitive lookup. Built once per signing call.
func headerIndex(headers map[string]string) map[string]string {
	index := make(map[string]string, len(headers))
	for name, value := range headers {
		index[strings.ToLower(name)] = value
	}
	return index
}

// canonicalizedHeaders renders the deterministic header string used as signature
// input: headers with a signed prefix, names lowercased, sorted by name, joined
// as "name:value" lines. The output is independent of the case and iteration
// order of the input keys.
func canonicalizedHeaders(headers map[string]string) string {
	var lines []string
	for name, value := range headers {
		lower := strings.ToLower(name)
		for _, prefix := range signedHeaderPrefixes {
			if strings.HasPrefix(lower, prefix) {
				lines = append(lines, lower+":"+strings.TrimSpace(value))
				break
			}
		}
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n")
}

// canonicalizedResource renders the deterministic path+query string used as
// signature input: the request path, then "?" and the query parameters sorted
// lexicographically by key as "key=value" joined with "&". An empty value
// renders as "key=".
func canonicalizedResource(path string, queries map[string]string) string {
	if len(queries) == 0 {
		return path
	}
	keys := make([]string, 0, len(queries))
	for k := range queries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+queries[k])
	}
	return path + "?" + strings.Join(pairs, "&")
}

// signString assembles the six positional fields of the string to sign. Every
// field contributes its separator even when empty; the structure is positional.
func signString(method, resource string, headers map[string]string) string {
	index := headerIndex(headers)
	return strings.Join([]string{
		method,
		index["content-md5"],
		index["content-type"],
		index["date"],
		canonicalizedHeaders(headers),
		resource,
	}, "\n")
}

// signature computes the base64-encoded HMAC-SHA1 of the sign string with the
// access key secret. The same inputs always produce the same signature.
func signature(method, resource string, headers map[string]string, secret string) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write([]byte(signString(method, resource, headers)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// urlQueryString renders the query component of the request URL: parameters
// sorted by key, names and values percent-encoded.
func urlQueryString(queries map[string]string) string {
	keys := make([]string, 0, len(queries))
	for k := range queries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, url.QueryEscape(k)+"="+url.QueryEscape(queries[k]))
	}
	return strings.Join(pairs, "&")
}
