package amqp

import (
	"encoding/json"
	"time"
)

// TransactionCreatedMessage is a lightweight notification that a transaction
// was appended to the store. It carries only the row reference; the export
// worker fetches the full row from the database before exporting.
type TransactionCreatedMessage struct {
	Ref       string    `json:"ref"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewTransactionCreatedMessage(ref string) *TransactionCreatedMessage {
	return &TransactionCreatedMessage{
		Ref:       ref,
		Version:   1,
		Timestamp: time.Now(),
	}
}

func (m *TransactionCreatedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func TransactionCreatedMessageFromJSON(data []byte) (*TransactionCreatedMessage, error) {
	var msg TransactionCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
