package amqp

import (
	"encoding/json"
	"time"

	"gastos/internal/core"
)

// RecordSyncMessage asks the worker to mirror one locally stored record to
// the sheet store. It carries only the row ID and kind; the worker fetches
// the full record from SQLite.
type RecordSyncMessage struct {
	ID        int64     `json:"id"`
	Kind      core.Kind `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

func NewRecordSyncMessage(id int64, kind core.Kind) *RecordSyncMessage {
	return &RecordSyncMessage{
		ID:        id,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

func (m *RecordSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func RecordSyncMessageFromJSON(data []byte) (*RecordSyncMessage, error) {
	var msg RecordSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
