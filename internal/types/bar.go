package types

// Bar is a MarketData observation enriched with derived indicator values.
// Bars are produced in one batch by the indicator pipeline; once returned
// they are read-only for every downstream component. A Bar only exists for
// observations where every derived field is defined (warm-up rows are
// dropped before Bars are built).
type Bar struct {
	MarketData

	EMAFast     float64
	EMASlow     float64
	PrevEMAFast float64
	PrevEMASlow float64
	ATR         float64
	RSI         float64
	VWAP        float64
	VolumeMA    float64
}
