package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Timestamp is an instant in UTC exchanged as seconds since the UNIX epoch.
//
// It always encodes as a signed integer. It decodes from either an integer
// or an RFC3339 string; any other JSON kind is a type error.
// Optional timestamps are modelled as *Timestamp where nil means absent.
type Timestamp struct {
	time.Time
}

var (
	minTimestamp = time.Date(-262143, time.January, 1, 0, 0, 0, 0, time.UTC).Unix()
	maxTimestamp = time.Date(262142, time.December, 31, 23, 59, 59, 0, time.UTC).Unix()
)

// NewTimestamp returns t in UTC truncated to whole seconds.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// TimestampFromUnix converts seconds since the epoch into a Timestamp.
func TimestampFromUnix(sec int64) (Timestamp, error) {
	if sec < minTimestamp || sec > maxTimestamp {
		return Timestamp{}, fmt.Errorf("%w: %d", ErrInvalidTimestamp, sec)
	}
	return Timestamp{Time: time.Unix(sec, 0).UTC()}, nil
}

// ParseTimestamp parses an RFC3339 string and normalises it to UTC. Fractional
// seconds are truncated, as on encode.
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %v", ErrInvalidISO8601, err)
	}
	return NewTimestamp(t), nil
}

// Ptr returns a pointer to a copy of ts, for optional fields.
func (ts Timestamp) Ptr() *Timestamp {
	return &ts
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, ts.Unix(), 10), nil
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrTimestampType
	}

	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseTimestamp(s)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	case c == '-' || (c >= '0' && c <= '9'):
		sec, err := parseEpoch(string(data))
		if err != nil {
			return err
		}
		parsed, err := TimestampFromUnix(sec)
		if err != nil {
			return err
		}
		*ts = parsed
		return nil
	default:
		return ErrTimestampType
	}
}

// parseEpoch accepts integral JSON numbers only. Unsigned values above
// MaxInt64 and fractional or exponent forms are out of range.
func parseEpoch(num string) (int64, error) {
	sec, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTimestamp, num)
	}
	return sec, nil
}
