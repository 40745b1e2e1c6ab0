package sls

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pkg/errors"

	"github.com/openlogs/sls-client-go/common"
)

// PutLogs writes the log data to the named logstore through the load-balanced
// shard endpoint. The payload is encoded into the binary log-group format and
// sent as application/x-protobuf.
func (c *Client) PutLogs(ctx context.Context, logstore string, data *LogData, opts ...CallOption) error {
	if data == nil || len(data.Entries) == 0 {
		return errors.New("sls: no log entries to write")
	}
	body, err := data.encode()
	if err != nil {
		return errors.Wrap(err, "encode log group")
	}
	headers := map[string]string{
		"Content-Type":           "application/x-protobuf",
		common.HeaderBodyRawSize: strconv.Itoa(len(body)),
	}
	_, err = c.execute(ctx, http.MethodPost, "/logstores/"+logstore+"/shards/lb", nil, headers, body, opts...)
	return err
}

// GetLogsOptions are the optional parameters of a log query.
type GetLogsOptions struct {
	// Query is the free-text query expression.
	Query string

	// Topic restricts results to the given topic.
	Topic string

	// Line caps the number of returned results. Zero leaves the server default.
	Line int

	// Offset skips the given number of results for pagination.
	Offset int

	// Reverse returns results in reverse chronological order.
	Reverse bool

	// PowerSQL enables the enhanced SQL execution mode.
	PowerSQL bool
}

// GetLogs queries the named logstore over the [from, to) time window and
// returns the raw result objects. The window bounds follow the same
// second/millisecond epoch convention as log timestamps and are normalized to
// seconds. Each result carries the service metadata keys common.TopicKey,
// common.SourceKey, common.TimeKey and common.TimeNsPartKey next to its
// content fields.
func (c *Client) GetLogs(ctx context.Context, logstore string, from, to int64, opts *GetLogsOptions, callOpts ...CallOption) ([]map[string]interface{}, error) {
	fromSeconds, _ := splitTimestamp(from)
	toSeconds, _ := splitTimestamp(to)
	queries := map[string]string{
		"type": "log",
		"from": strconv.FormatInt(fromSeconds, 10),
		"to":   strconv.FormatInt(toSeconds, 10),
	}
	if opts != nil {
		if opts.Query != "" {
			queries["query"] = opts.Query
		}
		if opts.Topic != "" {
			queries["topic"] = opts.Topic
		}
		if opts.Line > 0 {
			queries["line"] = strconv.Itoa(opts.Line)
		}
		if opts.Offset > 0 {
			queries["offset"] = strconv.Itoa(opts.Offset)
		}
		if opts.Reverse {
			queries["reverse"] = "true"
		}
		if opts.PowerSQL {
			queries["powerSql"] = "true"
		}
	}
	data, err := c.execute(ctx, http.MethodGet, "/logstores/"+logstore, queries, nil, nil, callOpts...)
	if err != nil {
		return nil, err
	}
	var results []map[string]interface{}
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, errors.Wrap(err, "decode query results")
	}
	return results, nil
}

// Histogram is one bucket of a histogram query: the bucket window, the number
// of matching logs, and whether the bucket result is Complete or Incomplete.
type Histogram struct {
	From     int64  `json:"from"`
	To       int64  `json:"to"`
	Count    int64  `json:"count"`
	Progress string `json:"progress"`
}

// GetHistograms queries the log distribution of the named logstore over the
// [from, to) time window, with the same window convention as GetLogs. Topic
// and query are optional.
func (c *Client) GetHistograms(ctx context.Context, logstore string, from, to int64, topic, query string, callOpts ...CallOption) ([]Histogram, error) {
	fromSeconds, _ := splitTimestamp(from)
	toSeconds, _ := splitTimestamp(to)
	queries := map[string]string{
		"type": "histogram",
		"from": strconv.FormatInt(fromSeconds, 10),
		"to":   strconv.FormatInt(toSeconds, 10),
	}
	if topic != "" {
		queries["topic"] = topic
	}
	if query != "" {
		queries["query"] = query
	}
	data, err := c.execute(ctx, http.MethodGet, "/logstores/"+logstore, queries, nil, nil, callOpts...)
	if err != nil {
		return nil, err
	}
	var histograms []Histogram
	if err := json.Unmarshal(data, &histograms); err != nil {
		return nil, errors.Wrap(err, "decode histogram results")
	}
	return histograms, nil
}

// ListLogStoresResponse is the response of a logstore listing.
type ListLogStoresResponse struct {
	Count     int      `json:"count"`
	LogStores []string `json:"logstores"`
	Total     int      `json:"total"`
}

// ListLogStores lists the logstores of the configured project.
func (c *Client) ListLogStores(ctx context.Context, callOpts ...CallOption) (*ListLogStoresResponse, error) {
	data, err := c.execute(ctx, http.MethodGet, "/logstores", nil, nil, nil, callOpts...)
	if err != nil {
		return nil, err
	}
	var resp ListLogStoresResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, errors.Wrap(err, "decode logstore listing")
	}
	return &resp, nil
}

// CreateLogStore creates a logstore with the given retention in days and shard
// count.
func (c *Client) CreateLogStore(ctx context.Context, name string, ttlDays, shardCount int, callOpts ...CallOption) error {
	body, err := json.Marshal(map[string]interface{}{
		"logstoreName": name,
		"ttl":          ttlDays,
		"shardCount":   shardCount,
	})
	if err != nil {
		return errors.Wrap(err, "encode logstore settings")
	}
	_, err = c.execute(ctx, http.MethodPost, "/logstores", nil, nil, body, callOpts...)
	return err
}

// DeleteLogStore deletes the named logstore.
func (c *Client) DeleteLogStore(ctx context.Context, name string, callOpts ...CallOption) error {
	_, err := c.execute(ctx, http.MethodDelete, "/logstores/"+name, nil, nil, nil, callOpts...)
	return err
}
