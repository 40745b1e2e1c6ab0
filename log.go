package sls

import (
	"fmt"
	"sort"
	"time"

	"github.com/openlogs/sls-client-go/common"
	"github.com/openlogs/sls-client-go/pb"
)

// LogContent is a single key/value pair of a log entry. Values of any type are
// accepted; non-string values are rendered to their JSON form at encode time.
type LogContent struct {
	Key   string
	Value interface{}
}

// LogEntity is a single log record: ordered key/value content, an optional
// epoch timestamp, and an optional sub-second nanosecond part. The content
// insertion order is preserved on the wire. An entity is consumed at encode
// time and not modified afterwards.
type LogEntity struct {
	// Contents holds the record's key/value pairs in insertion order.
	Contents []LogContent

	// Timestamp is the event time as an epoch value, in seconds or in
	// milliseconds; values at or above 10^12 are taken as milliseconds. Zero
	// means the current time.
	Timestamp int64

	// TimestampNsPart is the explicit sub-second nanosecond part of the event
	// time. Zero means derive it from a millisecond-precision Timestamp.
	TimestampNsPart int64
}

// Add appends a key/value pair to the entity content and returns the entity
// for chaining.
func (e *LogEntity) Add(key string, value interface{}) *LogEntity {
	e.Contents = append(e.Contents, LogContent{Key: key, Value: value})
	return e
}

// LogData is the payload of a single write call: an ordered sequence of
// entries plus optional tag mappings, topic and source.
type LogData struct {
	Entries []*LogEntity
	Tags    []map[string]string
	Topic   string
	Source  string
}

// splitTimestamp normalizes a second/millisecond-ambiguous epoch value. A value
// below 10^12 is already in seconds; at or above it, the value is milliseconds
// and splits into whole seconds and the sub-second remainder in nanoseconds.
func splitTimestamp(ts int64) (seconds, nanoseconds int64) {
	if ts < common.TimestampMsThreshold {
		return ts, 0
	}
	return ts / 1000, (ts % 1000) * int64(time.Millisecond)
}

// contentValueString renders a content value to its wire string form.
func contentValueString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case fmt.Stringer:
		return t.String()
	default:
		s, err := json.MarshalToString(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return s
	}
}

// encode maps the log data into the binary log-group payload.
func (d *LogData) encode() ([]byte, error) {
	group := &pb.LogGroup{Topic: d.Topic, Source: d.Source}
	for _, e := range d.Entries {
		ts := e.Timestamp
		if ts == 0 {
			ts = time.Now().Unix()
		}
		seconds, nanoseconds := splitTimestamp(ts)
		if e.TimestampNsPart != 0 {
			nanoseconds = e.TimestampNsPart
		}
		entry := &pb.Log{Time: uint32(seconds), TimeNs: uint32(nanoseconds)}
		for _, c := range e.Contents {
			entry.Contents = append(entry.Contents, pb.LogContent{
				Key:   c.Key,
				Value: contentValueString(c.Value),
			})
		}
		group.Logs = append(group.Logs, entry)
	}
	for _, tags := range d.Tags {
		keys := make([]string, 0, len(tags))
		for k := range tags {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			group.LogTags = append(group.LogTags, pb.LogTag{Key: k, Value: tags[k]})
		}
	}
	return group.Marshal()
}
