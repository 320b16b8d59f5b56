package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// MessageVersion is the current export message schema version.
const MessageVersion = 1

// Message asks a worker to render one export.
type Message struct {
	ExportID   string `json:"exportId"`
	RequestID  string `json:"requestId"`
	EnqueuedAt string `json:"enqueuedAt"`
	Version    int    `json:"version"`
}

// ErrInvalidMessage is returned by Validate.
var ErrInvalidMessage = errors.New("invalid export message")

// Validate checks the fields a worker needs before a message is published.
func (m Message) Validate() error {
	if strings.TrimSpace(m.ExportID) == "" {
		return fmt.Errorf("%w: exportId is required", ErrInvalidMessage)
	}
	if m.Version < 1 || m.Version > MessageVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidMessage, m.Version)
	}
	return nil
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
