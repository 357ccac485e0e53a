package amqp

import (
	"testing"
)

func TestTransactionSyncMessageJSON(t *testing.T) {
	msg := NewTransactionSyncMessage(42)
	if msg.MessageID == "" {
		t.Error("message should carry an ID")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := TransactionSyncMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != 42 {
		t.Errorf("id = %d, want 42", decoded.ID)
	}
	if decoded.MessageID != msg.MessageID {
		t.Errorf("message_id = %q, want %q", decoded.MessageID, msg.MessageID)
	}
}

func TestTransactionSyncMessageFromInvalidJSON(t *testing.T) {
	if _, err := TransactionSyncMessageFromJSON([]byte("{broken")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
