package indicator

import (
	"math"
	"testing"
	"time"

	"AlphaLens/internal/model"
)

// barsFromCloses builds a daily series where each bar trades in a ±1 band
// around its close. Enough for every indicator except SuperTrend scenarios,
// which build their bars by hand.
func barsFromCloses(closes ...float64) []model.PriceBar {
	bars := make([]model.PriceBar, len(closes))
	day := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Date:   day.AddDate(0, 0, i),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

func constantCloses(n int, c float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = c
	}
	return closes
}

func seriesFromCloses(closes ...float64) *model.IndicatorSeries {
	return &model.IndicatorSeries{Symbol: "TEST.NS", Bars: barsFromCloses(closes...)}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddEMA_ConstantClose(t *testing.T) {
	s := seriesFromCloses(constantCloses(30, 250)...)
	if err := AddEMA(s, DefaultEMAPeriod); err != nil {
		t.Fatalf("AddEMA: %v", err)
	}
	for i, v := range s.EMA {
		if !almostEqual(v, 250) {
			t.Errorf("EMA[%d] = %v, want 250", i, v)
		}
	}
}

func TestAddEMA_SeededFromFirstClose(t *testing.T) {
	s := seriesFromCloses(10, 20, 15)
	if err := AddEMA(s, DefaultEMAPeriod); err != nil {
		t.Fatalf("AddEMA: %v", err)
	}
	alpha := 2.0 / float64(DefaultEMAPeriod+1)
	want1 := alpha*20 + (1-alpha)*10
	want2 := alpha*15 + (1-alpha)*want1
	if !almostEqual(s.EMA[0], 10) {
		t.Errorf("EMA[0] = %v, want 10", s.EMA[0])
	}
	if !almostEqual(s.EMA[1], want1) {
		t.Errorf("EMA[1] = %v, want %v", s.EMA[1], want1)
	}
	if !almostEqual(s.EMA[2], want2) {
		t.Errorf("EMA[2] = %v, want %v", s.EMA[2], want2)
	}
}

func TestAddRSI_ConstantCloseUndefined(t *testing.T) {
	s := seriesFromCloses(constantCloses(30, 100)...)
	if err := AddRSI(s, DefaultRSIPeriod); err != nil {
		t.Fatalf("AddRSI: %v", err)
	}
	// Zero average gain over zero average loss is 0/0: undefined everywhere.
	for i, v := range s.RSI {
		if !math.IsNaN(v) {
			t.Errorf("RSI[%d] = %v, want NaN", i, v)
		}
	}
}

func TestAddRSI_StrictlyIncreasingSaturates(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	s := seriesFromCloses(closes...)
	if err := AddRSI(s, DefaultRSIPeriod); err != nil {
		t.Fatalf("AddRSI: %v", err)
	}
	// Zero average loss makes RS infinite and RSI saturate at 100.
	for i := DefaultRSIPeriod - 1; i < len(closes); i++ {
		if !almostEqual(s.RSI[i], 100) {
			t.Errorf("RSI[%d] = %v, want 100", i, s.RSI[i])
		}
	}
}

func TestAddRSI_WarmUpAndBounds(t *testing.T) {
	// Alternating moves put both gains and losses in every window.
	closes := make([]float64, 40)
	closes[0] = 100
	for i := 1; i < len(closes); i++ {
		if i%2 == 0 {
			closes[i] = closes[i-1] - 1
		} else {
			closes[i] = closes[i-1] + 3
		}
	}
	s := seriesFromCloses(closes...)
	if err := AddRSI(s, DefaultRSIPeriod); err != nil {
		t.Fatalf("AddRSI: %v", err)
	}
	for i := 0; i < DefaultRSIPeriod-1; i++ {
		if !math.IsNaN(s.RSI[i]) {
			t.Errorf("RSI[%d] = %v, want NaN during warm-up", i, s.RSI[i])
		}
	}
	for i := DefaultRSIPeriod - 1; i < len(closes); i++ {
		v := s.RSI[i]
		if math.IsNaN(v) || v < 0 || v > 100 {
			t.Errorf("RSI[%d] = %v, want defined value in [0,100]", i, v)
		}
	}
}

func TestAddADX_WarmUpAndBounds(t *testing.T) {
	// Random-walk closes with mixed up and down moves.
	deltas := []float64{2, -1, 3, -2, 1, -3, 2, 2, -1}
	closes := make([]float64, 60)
	closes[0] = 500
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] + deltas[i%len(deltas)]
	}
	s := seriesFromCloses(closes...)
	if err := AddADX(s, DefaultADXPeriod); err != nil {
		t.Fatalf("AddADX: %v", err)
	}

	// Two smoothing stages: ADX is undefined through index 2*period-2.
	firstDefined := 2*DefaultADXPeriod - 1
	for i := 0; i < firstDefined; i++ {
		if !math.IsNaN(s.ADX[i]) {
			t.Errorf("ADX[%d] = %v, want NaN during warm-up", i, s.ADX[i])
		}
	}
	for i := firstDefined; i < len(closes); i++ {
		v := s.ADX[i]
		if math.IsNaN(v) || v < 0 || v > 100 {
			t.Errorf("ADX[%d] = %v, want defined value in [0,100]", i, v)
		}
	}
	// Directional indexes come out of the first smoothing stage only.
	for i := DefaultADXPeriod; i < len(closes); i++ {
		if math.IsNaN(s.PlusDI[i]) || math.IsNaN(s.MinusDI[i]) {
			t.Errorf("DI[%d] undefined after first smoothing stage", i)
		}
	}
}

func TestAddVWAP_CumulativeFromStart(t *testing.T) {
	bars := []model.PriceBar{
		{High: 12, Low: 8, Close: 10, Volume: 100},
		{High: 22, Low: 18, Close: 20, Volume: 300},
		{High: 32, Low: 28, Close: 30, Volume: 600},
	}
	s := &model.IndicatorSeries{Symbol: "TEST.NS", Bars: bars}
	if err := AddVWAP(s); err != nil {
		t.Fatalf("AddVWAP: %v", err)
	}

	// Typical prices are 10, 20, 30; the ratio accumulates over the whole
	// window and never resets.
	want := []float64{
		10,
		(10*100 + 20*300) / 400.0,
		(10*100 + 20*300 + 30*600) / 1000.0,
	}
	for i, w := range want {
		if !almostEqual(s.VWAP[i], w) {
			t.Errorf("VWAP[%d] = %v, want %v", i, s.VWAP[i], w)
		}
	}
}

func TestAddBollingerBands_ConstantClose(t *testing.T) {
	s := seriesFromCloses(constantCloses(25, 80)...)
	if err := AddBollingerBands(s, DefaultBBPeriod, DefaultBBStdDev); err != nil {
		t.Fatalf("AddBollingerBands: %v", err)
	}
	for i := 0; i < DefaultBBPeriod-1; i++ {
		if !math.IsNaN(s.BBMiddle[i]) || !math.IsNaN(s.BBUpper[i]) || !math.IsNaN(s.BBLower[i]) {
			t.Errorf("bands[%d] defined during warm-up", i)
		}
	}
	// Zero deviation collapses all three bands to the close.
	for i := DefaultBBPeriod - 1; i < s.Len(); i++ {
		if !almostEqual(s.BBMiddle[i], 80) || !almostEqual(s.BBUpper[i], 80) || !almostEqual(s.BBLower[i], 80) {
			t.Errorf("bands[%d] = (%v, %v, %v), want all 80",
				i, s.BBUpper[i], s.BBMiddle[i], s.BBLower[i])
		}
	}
}

func TestAddBollingerBands_SampleStdDev(t *testing.T) {
	s := seriesFromCloses(1, 2, 3, 4)
	if err := AddBollingerBands(s, 3, 2.0); err != nil {
		t.Fatalf("AddBollingerBands: %v", err)
	}
	// Window {1,2,3}: mean 2, sample std 1 (n-1 divisor).
	if !almostEqual(s.BBMiddle[2], 2) {
		t.Errorf("BBMiddle[2] = %v, want 2", s.BBMiddle[2])
	}
	if !almostEqual(s.BBUpper[2], 4) {
		t.Errorf("BBUpper[2] = %v, want 4", s.BBUpper[2])
	}
	if !almostEqual(s.BBLower[2], 0) {
		t.Errorf("BBLower[2] = %v, want 0", s.BBLower[2])
	}
}

func TestAddAll_Idempotent(t *testing.T) {
	deltas := []float64{4, -2, 1, -5, 3, 2, -1}
	closes := make([]float64, 80)
	closes[0] = 1000
	for i := 1; i < len(closes); i++ {
		closes[i] = closes[i-1] + deltas[i%len(deltas)]
	}

	a := seriesFromCloses(closes...)
	b := seriesFromCloses(closes...)
	if err := AddAll(a); err != nil {
		t.Fatalf("AddAll: %v", err)
	}
	if err := AddAll(b); err != nil {
		t.Fatalf("AddAll: %v", err)
	}

	columns := []struct {
		name string
		a, b []float64
	}{
		{model.ColEMA, a.EMA, b.EMA},
		{model.ColRSI, a.RSI, b.RSI},
		{model.ColADX, a.ADX, b.ADX},
		{model.ColVWAP, a.VWAP, b.VWAP},
		{model.ColBBUpper, a.BBUpper, b.BBUpper},
		{model.ColBBMiddle, a.BBMiddle, b.BBMiddle},
		{model.ColBBLower, a.BBLower, b.BBLower},
		{model.ColSuperTrend, a.SuperTrend, b.SuperTrend},
		{model.ColSuperTrendDir, a.SuperTrendDir, b.SuperTrendDir},
	}
	for _, col := range columns {
		if len(col.a) != len(col.b) {
			t.Fatalf("%s: length mismatch %d vs %d", col.name, len(col.a), len(col.b))
		}
		for i := range col.a {
			// Bit comparison so NaN positions must match too.
			if math.Float64bits(col.a[i]) != math.Float64bits(col.b[i]) {
				t.Errorf("%s[%d] = %v vs %v, want bit-identical", col.name, i, col.a[i], col.b[i])
			}
		}
	}
}
