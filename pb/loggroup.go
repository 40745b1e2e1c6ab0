// Package pb implements the protobuf wire codec for the SLS log group message.
//
// The schema is fixed by the service and never changes, so the messages are
// marshalled directly with the protowire primitives instead of generated code:
//
//	message Log {
//	    required uint32 Time = 1;
//	    message Content {
//	        required string Key   = 1;
//	        required string Value = 2;
//	    }
//	    repeated Content Contents = 2;
//	    optional fixed32 TimeNs   = 4;
//	}
//	message LogTag {
//	    required string Key   = 1;
//	    required string Value = 2;
//	}
//	message LogGroup {
//	    repeated Log    Logs     = 1;
//	    optional string Reserved = 2;
//	    optional string Topic    = 3;
//	    optional string Source   = 4;
//	    repeated LogTag LogTags  = 6;
//	}
package pb

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// LogContent is a single key/value pair of a log entry.
type LogContent struct {
	Key   string
	Value string
}

// Log is a single log entry: an event time in epoch seconds, an ordered list of
// key/value contents, and an optional sub-second nanosecond part (zero means absent).
type Log struct {
	Time     uint32
	Contents []LogContent
	TimeNs   uint32
}

// LogTag is a single key/value tag attached to a log group.
type LogTag struct {
	Key   string
	Value string
}

// LogGroup groups multiple log entries with optional topic/source/tag metadata
// for a single write call.
type LogGroup struct {
	Logs     []*Log
	Reserved string
	Topic    string
	Source   string
	LogTags  []LogTag
}

// Field numbers of the log group schema.
const (
	logFieldTime     = 1
	logFieldContents = 2
	logFieldTimeNs   = 4

	kvFieldKey   = 1
	kvFieldValue = 2

	groupFieldLogs     = 1
	groupFieldReserved = 2
	groupFieldTopic    = 3
	groupFieldSource   = 4
	groupFieldTags     = 6
)

func appendKeyValue(b []byte, key, value string) []byte {
	b = protowire.AppendTag(b, kvFieldKey, protowire.BytesType)
	b = protowire.AppendString(b, key)
	b = protowire.AppendTag(b, kvFieldValue, protowire.BytesType)
	b = protowire.AppendString(b, value)
	return b
}

func (l *Log) append(b []byte) []byte {
	b = protowire.AppendTag(b, logFieldTime, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(l.Time))
	for _, c := range l.Contents {
		b = protowire.AppendTag(b, logFieldContents, protowire.BytesType)
		b = protowire.AppendBytes(b, appendKeyValue(nil, c.Key, c.Value))
	}
	if l.TimeNs != 0 {
		b = protowire.AppendTag(b, logFieldTimeNs, protowire.Fixed32Type)
		b = protowire.AppendFixed32(b, l.TimeNs)
	}
	return b
}

// Marshal encodes the log group into the protobuf wire format.
func (g *LogGroup) Marshal() ([]byte, error) {
	var b []byte
	for _, l := range g.Logs {
		if l == nil {
			return nil, errors.New("log group contains a nil log entry")
		}
		b = protowire.AppendTag(b, groupFieldLogs, protowire.BytesType)
		b = protowire.AppendBytes(b, l.append(nil))
	}
	if g.Reserved != "" {
		b = protowire.AppendTag(b, groupFieldReserved, protowire.BytesType)
		b = protowire.AppendString(b, g.Reserved)
	}
	if g.Topic != "" {
		b = protowire.AppendTag(b, groupFieldTopic, protowire.BytesType)
		b = protowire.AppendString(b, g.Topic)
	}
	if g.Source != "" {
		b = protowire.AppendTag(b, groupFieldSource, protowire.BytesType)
		b = protowire.AppendString(b, g.Source)
	}
	for _, t := range g.LogTags {
		b = protowire.AppendTag(b, groupFieldTags, protowire.BytesType)
		b = protowire.AppendBytes(b, appendKeyValue(nil, t.Key, t.Value))
	}
	if b == nil {
		b = []byte{}
	}
	return b, nil
}

func consumeKeyValue(b []byte) (key, value string, err error) {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", "", protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.BytesType {
			return "", "", errors.Errorf("key/value pair: unexpected wire type %d for field %d", typ, num)
		}
		v, n := protowire.ConsumeString(b)
		if n < 0 {
			return "", "", protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case kvFieldKey:
			key = v
		case kvFieldValue:
			value = v
		}
	}
	return key, value, nil
}

func (l *Log) unmarshal(b []byte) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch {
		case num == logFieldTime && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			l.Time = uint32(v)
		case num == logFieldContents && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			key, value, err := consumeKeyValue(v)
			if err != nil {
				return err
			}
			l.Contents = append(l.Contents, LogContent{Key: key, Value: value})
		case num == logFieldTimeNs && typ == protowire.Fixed32Type:
			v, n := protowire.ConsumeFixed32(b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
			l.TimeNs = v
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return nil
}

// Unmarshal decodes a log group from the protobuf wire format.
func (g *LogGroup) Unmarshal(data []byte) error {
	b := data
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		if typ != protowire.BytesType {
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return protowire.ParseError(m)
			}
			b = b[m:]
			continue
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		switch num {
		case groupFieldLogs:
			l := &Log{}
			if err := l.unmarshal(v); err != nil {
				return errors.Wrap(err, "decode log entry")
			}
			g.Logs = append(g.Logs, l)
		case groupFieldReserved:
			g.Reserved = string(v)
		case groupFieldTopic:
			g.Topic = string(v)
		case groupFieldSource:
			g.Source = string(v)
		case groupFieldTags:
			key, value, err := consumeKeyValue(v)
			if err != nil {
				return errors.Wrap(err, "decode log tag")
			}
			g.LogTags = append(g.LogTags, LogTag{Key: key, Value: value})
		}
	}
	return nil
}
