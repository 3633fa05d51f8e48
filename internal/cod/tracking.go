package cod

import (
	"hash/fnv"
	"strconv"
	"strings"
	"time"

	"github.com/glow24organics/storefront-backend/pkg/enums"
)

// defaultDeliveryDays is used when the pincode cannot be parsed.
const defaultDeliveryDays = 3

// StageStatus is one milestone in the simulated tracking timeline.
type StageStatus struct {
	Stage     enums.TrackingStage `json:"stage"`
	Label     string              `json:"label"`
	Completed bool                `json:"completed"`
	Timestamp *time.Time          `json:"timestamp,omitempty"`
}

// Tracking is the simulated delivery view for one order.
type Tracking struct {
	OrderID           string              `json:"orderId"`
	CurrentStage      enums.TrackingStage `json:"currentStage"`
	Stages            []StageStatus       `json:"stages"`
	DeliveryDays      int                 `json:"deliveryDays"`
	EstimatedDelivery time.Time           `json:"estimatedDelivery"`
}

// DeliveryDays derives the delivery estimate from the pincode. Unparseable
// pincodes fall back to the default window.
func DeliveryDays(pincode string) int {
	pin, err := strconv.Atoi(strings.TrimSpace(pincode))
	if err != nil || pin <= 0 {
		return defaultDeliveryDays
	}
	return pin%3 + 2
}

// SimulateTracking fabricates a deterministic tracking timeline from the
// order id. The same order always renders the same progress, which keeps the
// confirmation screen stable across reloads.
func SimulateTracking(orderID, pincode string, now time.Time) Tracking {
	h := fnv.New32a()
	h.Write([]byte(orderID))
	seed := h.Sum32()

	// a fresh COD order has cleared one or two stages
	completed := 1 + int(seed%2)

	stages := enums.TrackingStages()
	statuses := make([]StageStatus, 0, len(stages))
	current := stages[0]
	for i, stage := range stages {
		status := StageStatus{Stage: stage, Label: stage.Label()}
		if i < completed {
			status.Completed = true
			ts := now.Add(-time.Duration(completed-i) * 6 * time.Hour)
			status.Timestamp = &ts
			current = stage
		}
		statuses = append(statuses, status)
	}

	days := DeliveryDays(pincode)
	return Tracking{
		OrderID:           orderID,
		CurrentStage:      current,
		Stages:            statuses,
		DeliveryDays:      days,
		EstimatedDelivery: now.AddDate(0, 0, days),
	}
}
