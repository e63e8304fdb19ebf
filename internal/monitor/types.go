package monitor

// Alert is a single qualifying discount event. Alerts are delivered once
// and not stored; the ID exists for log correlation.
type Alert struct {
	ID             string
	Item           string
	LowestPrice    int64
	ReferencePrice int64
	DiscountRatio  float64
}
