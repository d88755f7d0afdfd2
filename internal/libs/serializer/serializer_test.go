package serializer

import (
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/benchreporter/internal/sentinel"
)

type sampleDoc struct {
	Name    string    `json:"name"`
	Samples []float64 `json:"samples"`
	Better  bool      `json:"better"`
}

func TestRegistry_RoundTrip(t *testing.T) {
	registry := NewSerializerRegistry()

	for _, name := range registry.Names() {
		t.Run(name, func(t *testing.T) {
			ser, err := registry.New(name)
			assert.NoError(t, err)

			in := sampleDoc{Name: "FrameTime", Samples: []float64{1.5, 2.25, 3}, Better: true}

			data, err := ser.Marshal(&in)
			assert.NoError(t, err)

			var out sampleDoc

			err = ser.Unmarshal(data, &out)
			assert.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestRegistry_Names(t *testing.T) {
	assert.Equal(t, []string{"cbor", "json", "msgpack"}, NewSerializerRegistry().Names())
	assert.Equal(t, 0, len(NewEmptySerializerRegistry().Names()))
}

func TestRegistry_Errors(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, sentinel.ErrParamCannotBeEmpty) {
		t.Fatalf("expected ErrParamCannotBeEmpty, got %v", err)
	}

	_, err = New("xml")
	if !errors.Is(err, sentinel.ErrSerializerNotFound) {
		t.Fatalf("expected ErrSerializerNotFound, got %v", err)
	}

	if !errors.Is(err, sentinel.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput class, got %v", err)
	}
}
