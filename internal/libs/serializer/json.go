// Package serializer provides serialization interfaces and implementations for converting
// run records and aggregated results to and from byte slices. It is used to decode
// canonical run documents and to persist baselines in the store backends.
//
// The package includes a default JSON serializer implementation that uses the goccy/go-json
// library for efficient JSON marshaling and unmarshaling operations.
package serializer

import (
	"github.com/goccy/go-json"

	"github.com/hyp3rd/ewrap"
)

// DefaultJSONSerializer leverages `goccy/go-json` to serialize run documents.
type DefaultJSONSerializer struct{}

// Marshal serializes the given value into a byte slice.
func (*DefaultJSONSerializer) Marshal(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to marshal json")
	}

	return data, nil
}

// Unmarshal deserializes the given byte slice into the value pointed to by v.
func (*DefaultJSONSerializer) Unmarshal(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	if err != nil {
		return ewrap.Wrap(err, "failed to unmarshal json")
	}

	return nil
}
