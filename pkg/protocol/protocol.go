// Package protocol defines the wire format between a Quartz live session
// and its client: JSON frames carrying platform operations downstream and
// user events upstream.
package protocol

import (
	"encoding/json"
	"fmt"
)

// OpCode identifies one platform operation.
type OpCode string

const (
	OpCreateElement  OpCode = "createElement"
	OpCreateText     OpCode = "createText"
	OpSetText        OpCode = "setText"
	OpSetElementText OpCode = "setElementText"
	OpInsert         OpCode = "insert"
	OpRemove         OpCode = "remove"
	OpSetAttr        OpCode = "setAttr"
	OpRemoveAttr     OpCode = "removeAttr"
	OpListen         OpCode = "listen"
	OpUnlisten       OpCode = "unlisten"
)

// Op is one platform operation applied to the client's document.
type Op struct {
	Code     OpCode `json:"op"`
	NodeID   uint64 `json:"id,omitempty"`
	ParentID uint64 `json:"parent,omitempty"`
	AnchorID uint64 `json:"anchor,omitempty"`
	Tag      string `json:"tag,omitempty"`
	Key      string `json:"key,omitempty"`
	Value    string `json:"value,omitempty"`
}

// FrameType discriminates websocket frames.
type FrameType string

const (
	FrameOps   FrameType = "ops"
	FrameEvent FrameType = "event"
	FrameError FrameType = "error"
)

// Frame is one websocket message in either direction.
type Frame struct {
	Type  FrameType `json:"type"`
	Ops   []Op      `json:"ops,omitempty"`
	Event *Event    `json:"event,omitempty"`
	Error string    `json:"error,omitempty"`
}

// Event is a user interaction reported by the client.
type Event struct {
	NodeID uint64 `json:"node"`
	Name   string `json:"name"`
}

// EncodeOps builds an ops frame.
func EncodeOps(ops []Op) ([]byte, error) {
	data, err := json.Marshal(Frame{Type: FrameOps, Ops: ops})
	if err != nil {
		return nil, fmt.Errorf("encode ops frame: %w", err)
	}
	return data, nil
}

// EncodeError builds an error frame.
func EncodeError(msg string) ([]byte, error) {
	data, err := json.Marshal(Frame{Type: FrameError, Error: msg})
	if err != nil {
		return nil, fmt.Errorf("encode error frame: %w", err)
	}
	return data, nil
}

// DecodeFrame parses one incoming message.
func DecodeFrame(data []byte) (*Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	if f.Type == FrameEvent && f.Event == nil {
		return nil, fmt.Errorf("decode frame: event frame without event payload")
	}
	return &f, nil
}
