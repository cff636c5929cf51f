package amqp

import (
	"testing"
	"time"
)

func TestPurchaseSyncMessageRoundTrip(t *testing.T) {
	msg := NewPurchaseSyncMessage("abc-123")

	if msg.PurchaseID != "abc-123" {
		t.Errorf("purchase ID = %q", msg.PurchaseID)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	decoded, err := PurchaseSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON: %v", err)
	}
	if decoded.PurchaseID != msg.PurchaseID {
		t.Errorf("purchase ID = %q, want %q", decoded.PurchaseID, msg.PurchaseID)
	}
	if !decoded.Timestamp.Truncate(time.Second).Equal(msg.Timestamp.Truncate(time.Second)) {
		t.Errorf("timestamp = %v, want %v", decoded.Timestamp, msg.Timestamp)
	}
}

func TestPurchaseSyncMessageFromInvalidJSON(t *testing.T) {
	if _, err := PurchaseSyncMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}
