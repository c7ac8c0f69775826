package server

import (
	"encoding/json"
	"fmt"
	"math"

	"galaxygenerator/core"
	"galaxygenerator/panel"
)

// Message is what panel clients send, over the websocket or POST /api/params
type Message struct {
	Type   string             `json:"type"` // set, commit, reset, replace
	Field  string             `json:"field,omitempty"`
	Value  json.RawMessage    `json:"value,omitempty"`
	Params *core.ParameterSet `json:"params,omitempty"`
	Commit bool               `json:"commit,omitempty"`
}

// Status is broadcast to every client after the galaxy changes
type Status struct {
	Type   string            `json:"type"`
	Params core.ParameterSet `json:"params"`
	Points int               `json:"points"`
	State  string            `json:"state"`
	Error  string            `json:"error,omitempty"`
	Field  string            `json:"field,omitempty"`
}

// ErrorReply answers a message that could not be applied
type ErrorReply struct {
	Type  string `json:"type"`
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func errorReply(err error) ErrorReply {
	field, _ := core.InvalidField(err)
	return ErrorReply{Type: "error", Error: err.Error(), Field: field}
}

// toEdit validates m and converts it into a panel edit
func (m Message) toEdit() (panel.Edit, error) {
	switch m.Type {
	case "commit":
		return panel.Edit{Commit: true}, nil
	case "reset":
		return panel.Edit{Reset: true, Commit: true}, nil
	case "replace":
		if m.Params == nil {
			return panel.Edit{}, fmt.Errorf("replace needs params")
		}
		if err := m.Params.CheckDomain(); err != nil {
			return panel.Edit{}, err
		}
		return panel.Edit{Params: m.Params, Commit: true}, nil
	case "set", "":
		return m.setEdit()
	}
	return panel.Edit{}, fmt.Errorf("unknown message type %q", m.Type)
}

func (m Message) setEdit() (panel.Edit, error) {
	edit := panel.Edit{Field: m.Field, Commit: m.Commit}

	if _, ok := core.DomainOf(m.Field); ok {
		var v float64
		if err := json.Unmarshal(m.Value, &v); err != nil {
			return panel.Edit{}, &core.InvalidParameterError{Field: m.Field, Value: math.NaN(), Reason: "value must be a number"}
		}
		edit.Number = v
		return edit, nil
	}

	if _, ok := core.DefaultParameters().Color(m.Field); ok {
		var c core.RGB
		if err := json.Unmarshal(m.Value, &c); err != nil {
			return panel.Edit{}, &core.InvalidParameterError{Field: m.Field, Value: math.NaN(), Reason: "value must be a #rrggbb color"}
		}
		edit.Color = &c
		return edit, nil
	}

	return panel.Edit{}, fmt.Errorf("%w: %q", panel.ErrUnknownField, m.Field)
}
