package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
)

// The job's ExtractedData column is a JSON blob of cached intelligence
// results keyed by feature ("enhancedSalaryAnalysis", "matchScore", ...),
// each paired with a "<feature>Date" timestamp. The blob is overwritten as a
// whole: last-writer-wins.

// analysisTTL is how long a cached result stays valid.
const analysisTTL = 24 * time.Hour

// blobField returns the raw bytes of one cached feature, untouched, so a
// cache hit is byte-identical to what was stored.
func blobField(blob, field string) (json.RawMessage, bool) {
	if blob == "" {
		return nil, false
	}
	v := gjson.Get(blob, field)
	if !v.Exists() {
		return nil, false
	}
	return json.RawMessage(v.Raw), true
}

// blobFieldTime reads the feature's cache timestamp.
func blobFieldTime(blob, field string) (time.Time, bool) {
	v := gjson.Get(blob, field+"Date")
	if !v.Exists() {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, v.String())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// cacheValid reports whether a cached result may be served: present, younger
// than the TTL, and not bypassed by forceRefresh.
func cacheValid(blob, field string, now time.Time, forceRefresh bool) bool {
	if forceRefresh {
		return false
	}
	if _, ok := blobField(blob, field); !ok {
		return false
	}
	at, ok := blobFieldTime(blob, field)
	if !ok {
		return false
	}
	return now.Sub(at) < analysisTTL
}

// blobKeyMatches reports whether the cached result was computed from the
// same input key. An empty key means the feature has no per-input variance.
func blobKeyMatches(blob, field, key string) bool {
	if key == "" {
		return true
	}
	return gjson.Get(blob, field+"Key").String() == key
}

// setBlobFields stores several entries at once, preserving the bytes of
// every other field in the blob.
func setBlobFields(blob string, entries map[string]any) (string, error) {
	fields := map[string]json.RawMessage{}
	if blob != "" {
		if err := json.Unmarshal([]byte(blob), &fields); err != nil {
			// A corrupt blob is rebuilt rather than kept.
			fields = map[string]json.RawMessage{}
		}
	}

	for name, value := range entries {
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("encode %s: %w", name, err)
		}
		fields[name] = encoded
	}

	out, err := json.Marshal(fields)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// setBlobField stores a feature result and its timestamp.
func setBlobField(blob, field string, value any, now time.Time) (string, error) {
	return setBlobFields(blob, map[string]any{
		field:          value,
		field + "Date": now.UTC().Format(time.RFC3339),
	})
}
