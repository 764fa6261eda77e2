package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorPair_Pick(t *testing.T) {
	pair := ColorPair{Color1: ColorTeal, Color2: ColorRed}

	assert.Equal(t, ColorTeal, pair.Pick(1, 2))
	assert.Equal(t, ColorTeal, pair.Pick(2, 2))
	assert.Equal(t, ColorRed, pair.Pick(2, 1))
}

func TestSolidAppearance(t *testing.T) {
	appearance := SolidAppearance(ColorLime)
	assert.Equal(t, BarAppearance{BarColor: ColorLime, BorderColor: ColorLime, WickColor: ColorLime}, appearance)
}

func TestDataframe_Update(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	df := NewDataframe("BTCUSDT")

	assert.True(t, df.Update(Candle{Time: start, Open: 1, Close: 2, Metadata: map[string]float64{"signal": 1}}))
	assert.True(t, df.Update(Candle{Time: start.Add(time.Hour), Open: 2, Close: 3, Metadata: map[string]float64{"signal": 2}}))
	assert.False(t, df.Update(Candle{Time: start.Add(time.Hour), Open: 2, Close: 5, Metadata: map[string]float64{"signal": 3}}))

	require.Equal(t, 2, df.Len())
	assert.Equal(t, []float64{2, 5}, df.Close.Values())
	assert.Equal(t, []float64{1, 3}, df.Metadata["signal"].Values())
	assert.Equal(t, start.Add(time.Hour), df.LastUpdate)

	sample := df.Sample(1)
	assert.Equal(t, 1, sample.Len())
	assert.Equal(t, 5.0, sample.Close.Last(0))
	assert.Equal(t, []float64{3}, sample.Metadata["signal"].Values())

	whole := df.Sample(10)
	assert.Equal(t, 2, whole.Len())
}

func TestSeries(t *testing.T) {
	series := Series[float64]{1, 2, 3, 4}

	assert.Equal(t, 4, series.Length())
	assert.Equal(t, 4.0, series.Last(0))
	assert.Equal(t, 1.0, series.Last(3))
	assert.Equal(t, []float64{3, 4}, series.LastValues(2))
	assert.Equal(t, []float64{1, 2, 3, 4}, series.LastValues(10))
	assert.True(t, series.Above(3.5))
	assert.False(t, series.Above(4))
	assert.False(t, Series[float64]{}.Above(0))
}

func TestCandle_Less(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a := Candle{Pair: "A", Time: start, UpdatedAt: start}
	b := Candle{Pair: "B", Time: start, UpdatedAt: start}
	c := Candle{Pair: "A", Time: start.Add(time.Minute), UpdatedAt: start.Add(time.Minute)}
	d := Candle{Pair: "A", Time: start, UpdatedAt: start.Add(time.Second)}

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, a.Less(c))
	assert.True(t, a.Less(d))
	assert.True(t, d.Less(c))
}

func TestCandle_ToHeikinAshi(t *testing.T) {
	ha := NewHeikinAshi()
	first := Candle{Pair: "A", Open: 10, Close: 12, High: 13, Low: 9, Metadata: map[string]float64{"x": 1}}
	converted := first.ToHeikinAshi(ha)

	assert.Equal(t, 11.0, converted.Open)
	assert.Equal(t, 11.0, converted.Close)
	assert.Equal(t, 13.0, converted.High)
	assert.Equal(t, 9.0, converted.Low)
	assert.Equal(t, first.Metadata, converted.Metadata)

	second := Candle{Pair: "A", Open: 12, Close: 14, High: 16, Low: 10}.ToHeikinAshi(ha)
	assert.Equal(t, 11.0, second.Open)
	assert.Equal(t, 13.0, second.Close)
}

func TestCandle_ToSlice(t *testing.T) {
	candle := Candle{Time: time.Unix(60, 0), Open: 1, Close: 2, Low: 0.5, High: 2.25, Volume: 10}
	assert.Equal(t, []string{"60", "1.00", "2.00", "0.50", "2.25", "10.00"}, candle.ToSlice(2))
	assert.True(t, Candle{}.Empty())
	assert.False(t, candle.Empty())
}
