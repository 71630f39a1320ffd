package amqp

import (
	"encoding/json"
	"time"
)

// Message types, used as the AMQP Type property.
const (
	TypeLedgerLoaded   = "ledger.loaded"
	TypeLedgerImported = "ledger.imported"
)

// LedgerLoadedMessage announces that a user's ledger was loaded for querying.
// It carries counts only, never amounts or query results.
type LedgerLoadedMessage struct {
	UserID    string    `json:"user_id"`
	Source    string    `json:"source"`
	Records   int       `json:"records"`
	Malformed int       `json:"malformed"`
	Timestamp time.Time `json:"timestamp"`
}

// LedgerImportedMessage announces that a ledger file was copied into the store.
type LedgerImportedMessage struct {
	Source    string    `json:"source"`
	Imported  int       `json:"imported"`
	Malformed int       `json:"malformed"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerLoadedMessage(userID, source string, records, malformed int) *LedgerLoadedMessage {
	return &LedgerLoadedMessage{
		UserID:    userID,
		Source:    source,
		Records:   records,
		Malformed: malformed,
		Timestamp: time.Now(),
	}
}

func NewLedgerImportedMessage(source string, imported, malformed int) *LedgerImportedMessage {
	return &LedgerImportedMessage{
		Source:    source,
		Imported:  imported,
		Malformed: malformed,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *LedgerLoadedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ToJSON converts the message to JSON bytes
func (m *LedgerImportedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerLoadedMessageFromJSON creates a message from JSON bytes
func LedgerLoadedMessageFromJSON(data []byte) (*LedgerLoadedMessage, error) {
	var msg LedgerLoadedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
