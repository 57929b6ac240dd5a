package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidReading marks a payload that is not a single JSON reading object.
	ErrInvalidReading = errors.New("invalid reading payload")
	// ErrTimestampOutOfRange marks a timestamp the store cannot represent in nanoseconds.
	ErrTimestampOutOfRange = errors.New("timestamp out of range")
)

// Storable timestamp bounds (about 1677-09-21 to 2262-04-11 UTC).
var (
	MinTimestamp = time.Unix(0, math.MinInt64).UTC()
	MaxTimestamp = time.Unix(0, math.MaxInt64).UTC()
)

// TimestampInRange reports whether t survives a round trip through UnixNano.
func TimestampInRange(t time.Time) bool {
	return !t.Before(MinTimestamp) && !t.After(MaxTimestamp)
}

// DecodeReading parses one reading as sent over HTTP or MQTT. An empty or
// whitespace-only payload is an empty reading; trailing data after the object is rejected.
func DecodeReading(payload []byte) (Reading, error) {
	var r Reading
	if len(bytes.TrimSpace(payload)) == 0 {
		return r, nil
	}
	if err := json.Unmarshal(payload, &r); err != nil {
		return Reading{}, fmt.Errorf("%w: %v", ErrInvalidReading, err)
	}
	if r.Timestamp != nil && !r.Timestamp.IsZero() && !TimestampInRange(*r.Timestamp) {
		return Reading{}, fmt.Errorf("%w: %w (%s)", ErrInvalidReading, ErrTimestampOutOfRange, r.Timestamp.Format(time.RFC3339))
	}
	return r, nil
}
