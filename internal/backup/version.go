package backup

import (
	"fmt"
	"time"
)

// DataVersionKey is the metadata key holding the data-version marker.
const DataVersionKey = "data_version"

// Timestamp formats t the way markers and headers store it.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// DataVersion returns the store's data-version marker. When the marker is
// unset it returns a timestamp for now; nothing is written.
func DataVersion(s MetaStore, now time.Time) (string, error) {
	version, ok, err := s.GetMeta(DataVersionKey)
	if err != nil {
		return "", fmt.Errorf("reading data version: %w", err)
	}
	if !ok {
		return Timestamp(now), nil
	}
	return version, nil
}

// AdvanceDataVersion sets the data-version marker to now and returns it.
func AdvanceDataVersion(s MetaStore, now time.Time) (string, error) {
	version := Timestamp(now)
	if err := s.SetMeta(DataVersionKey, version); err != nil {
		return "", fmt.Errorf("updating data version: %w", err)
	}
	return version, nil
}
