// Package events publishes ledger-change notifications over AMQP so the
// export worker can mirror the ledger without the server waiting on it.
package events

import (
	"encoding/json"
	"time"
)

// LedgerChangedMessage says the snapshot under Key reached Version. It is
// deliberately small: the worker reads the current ledger itself instead
// of trusting a possibly stale payload.
type LedgerChangedMessage struct {
	Key       string    `json:"key"`
	Version   int64     `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerChangedMessage(key string, version int64) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		Key:       key,
		Version:   version,
		Timestamp: time.Now(),
	}
}

func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
