package enums

// TrackingStage names the simulated delivery milestones shown during the COD
// confirmation flow. The sequence is illustrative, not a logistics feed.
type TrackingStage string

const (
	TrackingStageOrderPlaced    TrackingStage = "order_placed"
	TrackingStagePacked         TrackingStage = "packed"
	TrackingStageShipped        TrackingStage = "shipped"
	TrackingStageOutForDelivery TrackingStage = "out_for_delivery"
	TrackingStageDelivered      TrackingStage = "delivered"
)

// TrackingStages returns the canonical stage order.
func TrackingStages() []TrackingStage {
	return []TrackingStage{
		TrackingStageOrderPlaced,
		TrackingStagePacked,
		TrackingStageShipped,
		TrackingStageOutForDelivery,
		TrackingStageDelivered,
	}
}

// Label returns the human-readable stage name.
func (t TrackingStage) Label() string {
	switch t {
	case TrackingStageOrderPlaced:
		return "Order Placed"
	case TrackingStagePacked:
		return "Packed"
	case TrackingStageShipped:
		return "Shipped"
	case TrackingStageOutForDelivery:
		return "Out for Delivery"
	case TrackingStageDelivered:
		return "Delivered"
	}
	return string(t)
}
