package estimate

import (
	"errors"
	"testing"

	"github.com/Simplici0/framequote/internal/catalog"
)

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"setQuantity","itemId":5,"quantity":"12.5"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	q, ok := ev.(*SetQuantity)
	if !ok {
		t.Fatalf("decoded %T, want *SetQuantity", ev)
	}
	if q.ItemID != 5 || q.Quantity.String() != "12.5" {
		t.Fatalf("unexpected fields %+v", q)
	}
}

func TestDecodeEvent_EmbeddedDimensions(t *testing.T) {
	ev, err := DecodeEvent([]byte(`{"type":"setDimensions","width":40,"length":50,"height":16}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	d := ev.(*SetDimensions)
	if d.Width != 40 || d.Length != 50 || d.Height != 16 {
		t.Fatalf("unexpected dimensions %+v", d.Dimensions)
	}
}

func TestDecodeEvent_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{name: "not json", body: `{type:`, want: ErrInvalidInput},
		{name: "unknown type", body: `{"type":"explode"}`, want: ErrUnknownEvent},
		{name: "missing type", body: `{"itemId":1}`, want: ErrUnknownEvent},
		{name: "bad field", body: `{"type":"toggleItem","itemId":"one"}`, want: ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodedEventsApply(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	s := referenceState(t, eng)

	for _, body := range []string{
		`{"type":"setFrameType","frameType":"post"}`,
		`{"type":"toggleItem","itemId":104}`,
		`{"type":"setSizes","itemId":12,"sizes":[{"width":4,"height":3,"quantity":1}]}`,
	} {
		ev, err := DecodeEvent([]byte(body))
		if err != nil {
			t.Fatalf("decode %s: %v", body, err)
		}
		s = mustApply(t, eng, s, ev)
	}

	if s.Frame.FrameType != catalog.FramePost {
		t.Fatalf("frame type = %s, want post", s.Frame.FrameType)
	}
	if itemOf(t, s, 104).Enabled {
		t.Fatalf("concrete still enabled")
	}
	if got := qtyOf(t, s, catalog.IDWindows); got != 1 {
		t.Fatalf("windows = %d, want 1", got)
	}
}

func TestEventTypes_CoversFactories(t *testing.T) {
	types := EventTypes()
	if len(types) != len(eventFactories) {
		t.Fatalf("got %d types, want %d", len(types), len(eventFactories))
	}
	for i := 1; i < len(types); i++ {
		if types[i-1] >= types[i] {
			t.Fatalf("types not sorted: %v", types)
		}
	}
}

func TestDecodeEvents(t *testing.T) {
	single, err := DecodeEvents([]byte(` {"type":"reset"} `))
	if err != nil || len(single) != 1 {
		t.Fatalf("single envelope: %v, %d events", err, len(single))
	}

	batch, err := DecodeEvents([]byte(`[{"type":"toggleItem","itemId":1},{"type":"reset"}]`))
	if err != nil {
		t.Fatalf("batch: %v", err)
	}
	if len(batch) != 2 || batch[1].Type() != "reset" {
		t.Fatalf("unexpected batch %v", batch)
	}

	if _, err := DecodeEvents([]byte(`[]`)); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("empty batch: %v", err)
	}
	if _, err := DecodeEvents([]byte(`[{"type":"reset"},{"type":"nope"}]`)); !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("bad batch member: %v", err)
	}
}
