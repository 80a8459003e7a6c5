package clip

// ClipType selects the boolean operation. Values match the engine's wire
// encoding.
type ClipType uint8

const (
	Intersection ClipType = 1
	Union        ClipType = 2
	Difference   ClipType = 3
	Xor          ClipType = 4
)

func (c ClipType) String() string {
	switch c {
	case Intersection:
		return "Intersection"
	case Union:
		return "Union"
	case Difference:
		return "Difference"
	case Xor:
		return "Xor"
	default:
		return "Intersection"
	}
}

// FillRule selects how self-overlapping regions are filled. Values match the
// engine's wire encoding.
type FillRule uint8

const (
	EvenOdd  FillRule = 0
	NonZero  FillRule = 1
	Positive FillRule = 2
	Negative FillRule = 3
)

func (f FillRule) String() string {
	switch f {
	case NonZero:
		return "NonZero"
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "EvenOdd"
	}
}

// Engine is the external polygon engine, consumed over flat path buffers.
// Implementations perform the full boolean algebra; this package only ships
// the rectangle fast path (RectClipper).
type Engine interface {
	BooleanOp(op ClipType, rule FillRule, subjects, clips []float64) []float64
}
