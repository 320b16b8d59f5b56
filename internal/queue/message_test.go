package queue

import "testing"

func TestEncodeMessageFieldNames(t *testing.T) {
	payload, err := EncodeMessage(Message{
		ExportID:   "export-123",
		RequestID:  "request-456",
		EnqueuedAt: "2026-01-30T22:00:00Z",
		Version:    MessageVersion,
	})
	if err != nil {
		t.Fatalf("encode message: %v", err)
	}
	want := `{"exportId":"export-123","requestId":"request-456","enqueuedAt":"2026-01-30T22:00:00Z","version":1}`
	if string(payload) != want {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestDecodeMessageRejectsGarbage(t *testing.T) {
	if _, err := DecodeMessage([]byte("{not json")); err == nil {
		t.Fatalf("expected decode error")
	}
	msg, err := DecodeMessage([]byte(`{"exportId":"e1","extra":true}`))
	if err != nil || msg.ExportID != "e1" {
		t.Fatalf("unexpected decode result %+v %v", msg, err)
	}
}

func TestMessageValidate(t *testing.T) {
	if err := (Message{ExportID: "e1", Version: MessageVersion}).Validate(); err != nil {
		t.Fatalf("expected valid message: %v", err)
	}
	for _, msg := range []Message{{ExportID: " ", Version: 1}, {ExportID: "e1", Version: 0}, {ExportID: "e1", Version: 2}} {
		if err := msg.Validate(); err == nil {
			t.Fatalf("%+v: expected validation error", msg)
		}
	}
}
