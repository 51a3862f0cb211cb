package layout

import "log/slog"

// Axis identifies the direction of a cut attempt.
type Axis int

const (
	// AxisHorizontal cuts along a y-coordinate, separating rows.
	AxisHorizontal Axis = iota
	// AxisVertical cuts along an x-coordinate, separating columns.
	AxisVertical
)

func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// Tracer observes ordering decisions for debugging. Implementations must
// not influence the computed order.
type Tracer interface {
	// Cut reports a successful cut with the counts on each side.
	Cut(axis Axis, coord float64, first, second int)

	// FallbackSort reports that a group was ordered positionally because
	// no qualifying cut was found.
	FallbackSort(count int)

	// Insert reports a masked element placed before the given anchor.
	Insert(maskedID, anchorID, position int, distance float64)

	// Append reports a masked element placed without an eligible anchor.
	Append(maskedID, position int)
}

// NopTracer discards all trace events.
type NopTracer struct{}

func (NopTracer) Cut(Axis, float64, int, int)   {}
func (NopTracer) FallbackSort(int)              {}
func (NopTracer) Insert(int, int, int, float64) {}
func (NopTracer) Append(int, int)               {}

// SlogTracer logs trace events at debug level.
type SlogTracer struct {
	Logger *slog.Logger
}

func (t SlogTracer) logger() *slog.Logger {
	if t.Logger != nil {
		return t.Logger
	}
	return slog.Default()
}

func (t SlogTracer) Cut(axis Axis, coord float64, first, second int) {
	t.logger().Debug("cut", "axis", axis.String(), "coord", coord,
		"first", first, "second", second)
}

func (t SlogTracer) FallbackSort(count int) {
	t.logger().Debug("fallback sort", "count", count)
}

func (t SlogTracer) Insert(maskedID, anchorID, position int, distance float64) {
	t.logger().Debug("insert masked element", "id", maskedID,
		"anchor", anchorID, "position", position, "distance", distance)
}

func (t SlogTracer) Append(maskedID, position int) {
	t.logger().Debug("append masked element", "id", maskedID, "position", position)
}
