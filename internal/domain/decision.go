package domain

// Decision is the tagged outcome of one research-loop step. Modeling it as
// a closed type keeps branch handling exhaustive instead of comparing
// sentinel strings.
type Decision int

const (
	// Continue requests another article from the remaining candidates.
	Continue Decision = iota
	// Skip abandons the remaining candidates without reading them.
	Skip
	// End finishes the loop and returns the accumulated record.
	End
)

func (d Decision) String() string {
	switch d {
	case Continue:
		return "continue"
	case Skip:
		return "skip"
	case End:
		return "end"
	default:
		return "unknown"
	}
}
