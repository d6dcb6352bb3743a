package model

// Direction is the sign of a live price change.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
	DirectionFlat Direction = "flat"
)

// Glyph returns the arrow shown next to live prices.
func (d Direction) Glyph() string {
	switch d {
	case DirectionUp:
		return "↑"
	case DirectionDown:
		return "↓"
	default:
		return "→"
	}
}

// LiveDelta is the change of the last price against the session open.
// PercentChange is NaN when the open price is zero.
type LiveDelta struct {
	Open          float64
	Last          float64
	PriceDiff     float64
	PercentChange float64
	Direction     Direction
}
