package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-scalper/internal/types"
	"github.com/rxtech-lab/argo-scalper/pkg/errors"
)

// Pipeline enriches a raw bar series with derived indicator fields. The EMA
// spans are configurable; the ATR, RSI and volume-MA windows are fixed design
// constants shared with the strategy filters.
type Pipeline struct {
	emaFastPeriod  int
	emaSlowPeriod  int
	atrPeriod      int
	rsiPeriod      int
	volumeMAPeriod int
}

// NewPipeline creates a pipeline with the given EMA spans and the default
// ATR/RSI/volume windows.
func NewPipeline(emaFastPeriod, emaSlowPeriod int) (*Pipeline, error) {
	if emaFastPeriod <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "ema fast period must be positive, got %d", emaFastPeriod)
	}

	if emaSlowPeriod <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "ema slow period must be positive, got %d", emaSlowPeriod)
	}

	return &Pipeline{
		emaFastPeriod:  emaFastPeriod,
		emaSlowPeriod:  emaSlowPeriod,
		atrPeriod:      DefaultATRPeriod,
		rsiPeriod:      DefaultRSIPeriod,
		volumeMAPeriod: DefaultVolumeMAPeriod,
	}, nil
}

// WarmupBars returns the minimum number of raw bars needed before the first
// enriched bar can exist.
func (p *Pipeline) WarmupBars() int {
	warmup := 2 // prev EMA needs one preceding bar

	if p.atrPeriod > warmup {
		warmup = p.atrPeriod
	}

	if p.rsiPeriod+1 > warmup {
		warmup = p.rsiPeriod + 1
	}

	if p.volumeMAPeriod > warmup {
		warmup = p.volumeMAPeriod
	}

	return warmup
}

// Enrich computes all derived series over data and returns the bars where
// every derived field is defined, reindexed contiguously from 0. Input order
// is preserved; duplicate timestamps pass through untouched. A series shorter
// than the warm-up returns an empty (non-nil) slice, which downstream
// components treat as "no usable bars", not as an error.
func (p *Pipeline) Enrich(data []types.MarketData) []types.Bar {
	closes := make([]float64, len(data))
	volumes := make([]float64, len(data))

	for i, d := range data {
		closes[i] = d.Close
		volumes[i] = d.Volume
	}

	emaFast := EMASeries(closes, p.emaFastPeriod)
	emaSlow := EMASeries(closes, p.emaSlowPeriod)
	atr := ATRSeries(data, p.atrPeriod)
	rsi := RSISeries(closes, p.rsiPeriod)
	vwap := VWAPSeries(data)
	volumeMA := SMASeries(volumes, p.volumeMAPeriod)

	bars := make([]types.Bar, 0, len(data))

	for i := range data {
		if i == 0 {
			// prev EMA undefined on the first bar
			continue
		}

		if anyNaN(atr[i], rsi[i], vwap[i], volumeMA[i]) {
			continue
		}

		bars = append(bars, types.Bar{
			MarketData:  data[i],
			EMAFast:     emaFast[i],
			EMASlow:     emaSlow[i],
			PrevEMAFast: emaFast[i-1],
			PrevEMASlow: emaSlow[i-1],
			ATR:         atr[i],
			RSI:         rsi[i],
			VWAP:        vwap[i],
			VolumeMA:    volumeMA[i],
		})
	}

	return bars
}

func anyNaN(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}

	return false
}
