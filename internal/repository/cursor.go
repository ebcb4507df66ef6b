package repository

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"
)

const timeFormat = "2006-01-02T15:04:05.999Z07:00" // reduced precision to ms

const cursorSeparator = ","

// EncodeCursor will encode the (created_at, id) page boundary into an
// opaque cursor. The id disambiguates comments sharing a creation time.
func EncodeCursor(t time.Time, id string) string {
	boundary := t.Format(timeFormat) + cursorSeparator + id

	return base64.StdEncoding.EncodeToString([]byte(boundary))
}

// DecodeCursor will decode the cursor back into its (created_at, id)
// boundary
func DecodeCursor(cursor string) (time.Time, string, error) {
	byt, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", err
	}

	timeString, id, found := strings.Cut(string(byt), cursorSeparator)
	if !found {
		return time.Time{}, "", errors.New("malformed cursor")
	}
	t, err := time.Parse(timeFormat, timeString)
	if err != nil {
		return time.Time{}, "", err
	}

	return t, id, nil
}
