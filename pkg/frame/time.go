package frame

import (
	"strings"
	"time"

	"github.com/rxtech-lab/zentools/pkg/errors"
)

// TimestampLayouts are the layouts ParseTimestamp tries, in order.
var TimestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a date or date-time string in UTC using TimestampLayouts.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errors.New(errors.ErrCodeInvalidInput, "empty timestamp")
	}

	for _, layout := range TimestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errors.Newf(errors.ErrCodeInvalidInput, "unrecognized timestamp %q", value)
}
