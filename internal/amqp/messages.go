package amqp

import (
	"encoding/json"
	"time"
)

// EventKind names the customer mutations that go on the wire.
type EventKind string

const (
	CustomerCreated EventKind = "customer.created"
	CustomerUpdated EventKind = "customer.updated"
)

func (k EventKind) IsValid() bool {
	switch k {
	case CustomerCreated, CustomerUpdated:
		return true
	default:
		return false
	}
}

// CustomerEventMessage is a lightweight mutation notice. It carries only the
// customer id; consumers fetch the current record from the store, so a
// reordered delivery can never apply stale fields.
type CustomerEventMessage struct {
	CustomerID string    `json:"customerId"`
	Kind       EventKind `json:"kind"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewCustomerEventMessage(kind EventKind, customerID string) *CustomerEventMessage {
	return &CustomerEventMessage{
		CustomerID: customerID,
		Kind:       kind,
		Timestamp:  time.Now(),
	}
}

func (m *CustomerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func CustomerEventMessageFromJSON(data []byte) (*CustomerEventMessage, error) {
	var msg CustomerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
