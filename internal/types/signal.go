package types

type SignalType string

const (
	// SignalTypeBuy is a signal that tells the strategy to open a long position
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeSell is a signal that tells the strategy to open a short position
	SignalTypeSell SignalType = "SELL"
	// SignalTypeNoAction is a signal that tells the strategy to take no action
	SignalTypeNoAction SignalType = "none"
)

// Direction returns +1 for a long entry, -1 for a short entry and 0 for
// no action.
func (s SignalType) Direction() float64 {
	switch s {
	case SignalTypeBuy:
		return 1
	case SignalTypeSell:
		return -1
	default:
		return 0
	}
}
