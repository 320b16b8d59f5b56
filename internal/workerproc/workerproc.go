// Package workerproc turns export queue deliveries into Processor calls.
package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"resume-builder/internal/exports"
	"resume-builder/internal/queue"
)

// Processor renders and stores one export.
type Processor interface {
	Process(ctx context.Context, exportID string) error
}

// BodyMeta identifies a payload in logs without logging the payload itself.
type BodyMeta struct {
	Len    int
	SHA256 string
}

func bodyMeta(body string) BodyMeta {
	if body == "" {
		return BodyMeta{}
	}
	sum := sha256.Sum256([]byte(body))
	return BodyMeta{Len: len(body), SHA256: hex.EncodeToString(sum[:])}
}

// Reasons a payload is rejected. All of them are permanent.
var (
	ErrEmptyBody          = errors.New("empty message body")
	ErrMalformedBody      = errors.New("malformed message body")
	ErrMissingExportID    = errors.New("missing export id")
	ErrUnsupportedVersion = errors.New("unsupported message version")
)

// InvalidMessageError wraps one of the rejection reasons above with what
// could be recovered from the payload.
type InvalidMessageError struct {
	Reason    error
	Body      BodyMeta
	RequestID string
	Version   int
	Cause     error
}

func (e *InvalidMessageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %v", e.Reason, e.Cause)
	}
	return e.Reason.Error()
}

func (e *InvalidMessageError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Reason}
	}
	return []error{e.Reason, e.Cause}
}

// ProcessError is a failure after the message parsed cleanly. Whether it is
// retried depends on the cause.
type ProcessError struct {
	ExportID  string
	RequestID string
	Err       error
}

func (e *ProcessError) Error() string { return "process export " + e.ExportID + ": " + e.Err.Error() }
func (e *ProcessError) Unwrap() error { return e.Err }

// Unrecoverable reports whether redelivering the message can never succeed:
// the payload is invalid, or the export it names no longer exists.
func Unrecoverable(err error) bool {
	var invalid *InvalidMessageError
	return errors.As(err, &invalid) || errors.Is(err, exports.ErrNotFound)
}

// ParseMessage decodes and checks a queue payload. Version 0 is accepted for
// messages written before the field existed.
func ParseMessage(body string) (queue.Message, BodyMeta, error) {
	meta := bodyMeta(body)
	reject := func(msg queue.Message, reason, cause error) (queue.Message, BodyMeta, error) {
		return msg, meta, &InvalidMessageError{
			Reason:    reason,
			Body:      meta,
			RequestID: msg.RequestID,
			Version:   msg.Version,
			Cause:     cause,
		}
	}

	if strings.TrimSpace(body) == "" {
		return reject(queue.Message{}, ErrEmptyBody, nil)
	}
	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return reject(queue.Message{}, ErrMalformedBody, err)
	}
	switch {
	case strings.TrimSpace(msg.ExportID) == "":
		return reject(msg, ErrMissingExportID, nil)
	case msg.Version < 0 || msg.Version > queue.MessageVersion:
		return reject(msg, ErrUnsupportedVersion, nil)
	}
	return msg, meta, nil
}

// HandleMessage runs processor for a parsed message with the producer's
// request ID attached to ctx.
func HandleMessage(ctx context.Context, processor Processor, msg queue.Message) error {
	if processor == nil {
		return errors.New("export processor not configured")
	}
	if strings.TrimSpace(msg.ExportID) == "" {
		return &InvalidMessageError{Reason: ErrMissingExportID, RequestID: msg.RequestID}
	}
	if err := processor.Process(exports.WithRequestID(ctx, msg.RequestID), msg.ExportID); err != nil {
		return &ProcessError{ExportID: msg.ExportID, RequestID: msg.RequestID, Err: err}
	}
	return nil
}
