package amqp

import (
	"encoding/json"
	"time"
)

// PurchaseSyncMessage asks the export worker to push one purchase to the
// spreadsheet. It carries only the ID; the worker fetches the full record
// from the database.
type PurchaseSyncMessage struct {
	PurchaseID string    `json:"purchase_id"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewPurchaseSyncMessage creates a sync message for a purchase ID.
func NewPurchaseSyncMessage(purchaseID string) *PurchaseSyncMessage {
	return &PurchaseSyncMessage{
		PurchaseID: purchaseID,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *PurchaseSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// PurchaseSyncMessageFromJSON creates a message from JSON bytes
func PurchaseSyncMessageFromJSON(data []byte) (*PurchaseSyncMessage, error) {
	var msg PurchaseSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
