package estimate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

var eventFactories = map[string]func() Event{
	SetDimensions{}.Type():    func() Event { return &SetDimensions{} },
	SetRoof{}.Type():          func() Event { return &SetRoof{} },
	SetCostConfig{}.Type():    func() Event { return &SetCostConfig{} },
	SetFrameType{}.Type():     func() Event { return &SetFrameType{} },
	SetStudSize{}.Type():      func() Event { return &SetStudSize{} },
	SetPostSize{}.Type():      func() Event { return &SetPostSize{} },
	SetPostDiameter{}.Type():  func() Event { return &SetPostDiameter{} },
	SetQuantity{}.Type():      func() Event { return &SetQuantity{} },
	SetUnitPrice{}.Type():     func() Event { return &SetUnitPrice{} },
	PromoteToDefault{}.Type(): func() Event { return &PromoteToDefault{} },
	ToggleItem{}.Type():       func() Event { return &ToggleItem{} },
	SetSizes{}.Type():         func() Event { return &SetSizes{} },
	AddItem{}.Type():          func() Event { return &AddItem{} },
	RemoveItem{}.Type():       func() Event { return &RemoveItem{} },
	Reset{}.Type():            func() Event { return &Reset{} },
}

// DecodeEvent parses a JSON envelope {"type": "...", ...fields}.
func DecodeEvent(data []byte) (Event, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: event is not valid JSON", ErrInvalidInput)
	}
	typ := gjson.GetBytes(data, "type").String()
	factory, ok := eventFactories[typ]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEvent, typ)
	}
	ev := factory()
	if err := json.Unmarshal(data, ev); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrInvalidInput, typ, err)
	}
	return ev, nil
}

// DecodeEvents parses a single envelope or a JSON array of envelopes.
func DecodeEvents(data []byte) ([]Event, error) {
	data = bytes.TrimSpace(data)
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: events are not valid JSON", ErrInvalidInput)
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		ev, err := DecodeEvent(data)
		if err != nil {
			return nil, err
		}
		return []Event{ev}, nil
	}

	var events []Event
	var decodeErr error
	doc.ForEach(func(_, v gjson.Result) bool {
		ev, err := DecodeEvent([]byte(v.Raw))
		if err != nil {
			decodeErr = fmt.Errorf("event %d: %w", len(events), err)
			return false
		}
		events = append(events, ev)
		return true
	})
	if decodeErr != nil {
		return nil, decodeErr
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("%w: no events", ErrInvalidInput)
	}
	return events, nil
}

// EventTypes lists every accepted event type.
func EventTypes() []string {
	types := make([]string, 0, len(eventFactories))
	for t := range eventFactories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
