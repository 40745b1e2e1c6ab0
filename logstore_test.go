package sls

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openlogs/sls-client-go/common"
	"github.com/openlogs/sls-client-go/pb"
)

// TestPutLogs verifies the write request: path, payload headers and a body that
// decodes back to the submitted entries.
func TestPutLogs(t *testing.T) {
	var (
		capturedPath   string
		capturedHeader http.Header
		capturedBody   []byte
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedHeader = r.Header.Clone()
		capturedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	data := &LogData{
		Entries: []*LogEntity{
			(&LogEntity{Timestamp: 1700000000}).Add("level", "info").Add("message", "hello"),
		},
		Topic: "app",
	}
	require.NoError(t, client.PutLogs(context.Background(), "app", data))

	assert.Equal(t, "/logstores/app/shards/lb", capturedPath)
	assert.Equal(t, "application/x-protobuf", capturedHeader.Get("Content-Type"))
	assert.Equal(t, strconv.Itoa(len(capturedBody)), capturedHeader.Get(common.HeaderBodyRawSize))

	group := &pb.LogGroup{}
	require.NoError(t, group.Unmarshal(capturedBody))
	require.Len(t, group.Logs, 1)
	assert.Equal(t, uint32(1700000000), group.Logs[0].Time)
	assert.Equal(t, []pb.LogContent{
		{Key: "level", Value: "info"},
		{Key: "message", Value: "hello"},
	}, group.Logs[0].Contents)
	assert.Equal(t, "app", group.Topic)
}

// TestPutLogsEmpty verifies that a write without entries is rejected locally.
func TestPutLogsEmpty(t *testing.T) {
	client := newTestClient(t, "cn-hangzhou.log.example.com", nil)
	assert.Error(t, client.PutLogs(context.Background(), "app", nil))
	assert.Error(t, client.PutLogs(context.Background(), "app", &LogData{}))
}

// TestGetLogs verifies the query request parameters and result decoding.
func TestGetLogs(t *testing.T) {
	var capturedQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = map[string]string{}
		for name := range r.URL.Query() {
			capturedQuery[name] = r.URL.Query().Get(name)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"__topic__":"app","__source__":"10.0.0.1","__time__":"1700000100","__time_ns_part__":"533000000","level":"error","message":"boom"}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	results, err := client.GetLogs(context.Background(), "app", 1700000000533, 1700000600, &GetLogsOptions{
		Query:    "level:error",
		Topic:    "app",
		Line:     100,
		Offset:   20,
		Reverse:  true,
		PowerSQL: true,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"type":     "log",
		"from":     "1700000000", // millisecond input normalized to seconds
		"to":       "1700000600",
		"query":    "level:error",
		"topic":    "app",
		"line":     "100",
		"offset":   "20",
		"reverse":  "true",
		"powerSql": "true",
	}, capturedQuery)

	require.Len(t, results, 1)
	assert.Equal(t, "boom", results[0]["message"])
	assert.Equal(t, "app", results[0][common.TopicKey])
	assert.Equal(t, "10.0.0.1", results[0][common.SourceKey])
	assert.Equal(t, "1700000100", results[0][common.TimeKey])
	assert.Equal(t, "533000000", results[0][common.TimeNsPartKey])
}

// TestGetLogsServiceError verifies that a query failing server-side surfaces
// the typed service error.
func TestGetLogsServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errorCode":"ParameterInvalid","errorMessage":"query parse error"}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	_, err := client.GetLogs(context.Background(), "app", 1700000000, 1700000600, nil)
	require.Error(t, err)

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Equal(t, "ParameterInvalid", svcErr.Code)
	assert.Equal(t, "query parse error", svcErr.Message)
}

// TestGetHistograms verifies the histogram request parameters and decoding.
func TestGetHistograms(t *testing.T) {
	var capturedQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = map[string]string{}
		for name := range r.URL.Query() {
			capturedQuery[name] = r.URL.Query().Get(name)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"from":1700000000,"to":1700000300,"count":12,"progress":"Complete"}]`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	histograms, err := client.GetHistograms(context.Background(), "app", 1700000000, 1700000600, "app", "level:error")
	require.NoError(t, err)

	assert.Equal(t, "histogram", capturedQuery["type"])
	assert.Equal(t, "app", capturedQuery["topic"])
	assert.Equal(t, "level:error", capturedQuery["query"])
	assert.Equal(t, []Histogram{
		{From: 1700000000, To: 1700000300, Count: 12, Progress: "Complete"},
	}, histograms)
}

// TestListLogStores verifies the listing request and response decoding.
func TestListLogStores(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/logstores", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"count":2,"logstores":["app","audit"],"total":2}`))
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	resp, err := client.ListLogStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &ListLogStoresResponse{
		Count:     2,
		LogStores: []string{"app", "audit"},
		Total:     2,
	}, resp)
}

// TestCreateLogStore verifies the creation request body and method.
func TestCreateLogStore(t *testing.T) {
	var (
		capturedMethod string
		capturedBody   []byte
		capturedHeader http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		capturedHeader = r.Header.Clone()
		capturedBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	require.NoError(t, client.CreateLogStore(context.Background(), "app", 30, 2))

	assert.Equal(t, http.MethodPost, capturedMethod)
	assert.JSONEq(t, `{"logstoreName":"app","ttl":30,"shardCount":2}`, string(capturedBody))
	assert.NotEmpty(t, capturedHeader.Get("Content-MD5"), "JSON bodies carry the integrity header")
}

// TestDeleteLogStore verifies the deletion request.
func TestDeleteLogStore(t *testing.T) {
	var (
		capturedMethod string
		capturedPath   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedMethod = r.Method
		capturedPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, nil)
	require.NoError(t, client.DeleteLogStore(context.Background(), "app"))
	assert.Equal(t, http.MethodDelete, capturedMethod)
	assert.Equal(t, "/logstores/app", capturedPath)
}
