package amqp

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransactionSyncMessage asks the worker to push one archived
// transaction downstream. It carries only the archive row ID; the
// worker fetches the full transaction from the archive.
type TransactionSyncMessage struct {
	MessageID string    `json:"message_id"`
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionSyncMessage creates a sync message for an archive row.
func NewTransactionSyncMessage(id int64) *TransactionSyncMessage {
	return &TransactionSyncMessage{
		MessageID: uuid.NewString(),
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *TransactionSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionSyncMessageFromJSON(data []byte) (*TransactionSyncMessage, error) {
	var msg TransactionSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
