package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/vitrina/services/catalog/domain/events"
)

func TestProductChangedEvent_JSONFieldNames(t *testing.T) {
	evt := events.ProductChangedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ProductID:  uuid.New(),
		BusinessID: uuid.New(),
		Change:     events.ChangeUpdated,
		OccurredAt: time.Now().UTC(),
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal to map failed: %v", err)
	}

	for _, field := range []string{"event_id", "version", "product_id", "business_id", "change", "occurred_at"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected JSON field %q not found in: %s", field, data)
		}
	}
}

func TestTopicProductChanged_Value(t *testing.T) {
	if events.TopicProductChanged != "product.changed" {
		t.Errorf("expected %q, got %q", "product.changed", events.TopicProductChanged)
	}
}
