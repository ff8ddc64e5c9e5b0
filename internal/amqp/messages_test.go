package amqp

import "testing"

func TestCustomerEventMessageJSON(t *testing.T) {
	msg := NewCustomerEventMessage(CustomerCreated, "a1")
	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := CustomerEventMessageFromJSON(body)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.CustomerID != "a1" || decoded.Kind != CustomerCreated {
		t.Errorf("round trip mismatch: %+v", decoded)
	}
	if decoded.Timestamp.IsZero() {
		t.Error("timestamp should be set")
	}
}

func TestCustomerEventMessageFromJSONInvalid(t *testing.T) {
	if _, err := CustomerEventMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("malformed payload should fail")
	}
}

func TestEventKindIsValid(t *testing.T) {
	if !CustomerCreated.IsValid() || !CustomerUpdated.IsValid() {
		t.Error("declared kinds should be valid")
	}
	if EventKind("customer.deleted").IsValid() {
		t.Error("deletion is not part of the contract")
	}
}
