package amqp

import (
	"encoding/json"
	"time"
)

// DaySyncMessage asks the worker to export one ledger day to the
// spreadsheet. It carries only the date key and the document revision
// observed at publish time; the worker reloads the full day from the
// store.
type DaySyncMessage struct {
	Date      string    `json:"date"`
	Revision  int64     `json:"revision"`
	Timestamp time.Time `json:"timestamp"`
}

// NewDaySyncMessage creates a sync message for a ledger date
func NewDaySyncMessage(date string, revision int64) *DaySyncMessage {
	return &DaySyncMessage{
		Date:      date,
		Revision:  revision,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *DaySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DaySyncMessageFromJSON creates a message from JSON bytes
func DaySyncMessageFromJSON(data []byte) (*DaySyncMessage, error) {
	var msg DaySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
