package plugin

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rodrigo-brito/barcolor/model"
	"github.com/rodrigo-brito/barcolor/plot"
)

type recorder struct {
	id      string
	reasons []UpdateReason
	counts  []int
	clears  int
	chart   *plot.Chart
}

func (r *recorder) ID() string {
	return r.id
}

func (r *recorder) OnUpdate(args UpdateArgs) {
	r.reasons = append(r.reasons, args.Reason)
	r.counts = append(r.counts, r.chart.Count())
}

func (r *recorder) OnClear() {
	r.clears++
}

var start = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func candle(pair string, minute int, close float64) model.Candle {
	return model.Candle{
		Pair:  pair,
		Time:  start.Add(time.Duration(minute) * time.Minute),
		Open:  close,
		Close: close,
	}
}

func TestController_OnCandle(t *testing.T) {
	chart := plot.NewChart(plot.WithPair("BTCUSDT"))
	ind := &recorder{id: "rec", chart: chart}
	controller := NewController(chart, ind)

	visible, found := chart.RendererVisible("rec")
	require.True(t, found)
	assert.True(t, visible)
	assert.Empty(t, chart.Indicators())

	controller.Preload([]model.Candle{
		candle("BTCUSDT", 0, 1),
		candle("BTCUSDT", 1, 2),
	})
	controller.Start()

	controller.OnCandle(candle("BTCUSDT", 2, 3))
	controller.OnCandle(candle("BTCUSDT", 2, 4))
	controller.OnCandle(candle("BTCUSDT", 1, 9))
	controller.OnCandle(candle("ETHUSDT", 3, 9))

	assert.Equal(t, []UpdateReason{Historical, Historical, NewBar, NewTick}, ind.reasons)
	assert.Equal(t, []int{1, 2, 3, 3}, ind.counts)
	assert.Equal(t, 4, controller.Updates())
	assert.Equal(t, 4.0, chart.Close(0))
	assert.Same(t, chart, controller.Chart())
}

func TestController_Remove(t *testing.T) {
	chart := plot.NewChart()
	ind := &recorder{id: "rec", chart: chart}
	controller := NewController(chart, ind)
	controller.Start()
	controller.OnCandle(candle("BTCUSDT", 0, 1))

	controller.Remove()
	controller.Remove()
	controller.OnCandle(candle("BTCUSDT", 1, 1))

	assert.True(t, controller.Removed())
	assert.Equal(t, 1, ind.clears)
	assert.Equal(t, 1, controller.Updates())
	assert.Equal(t, 1, chart.Count())

	_, found := chart.RendererVisible("rec")
	assert.False(t, found)
}

func TestUpdateReason_String(t *testing.T) {
	assert.Equal(t, "historical", Historical.String())
	assert.Equal(t, "new_bar", NewBar.String())
	assert.Equal(t, "new_tick", NewTick.String())
	assert.Equal(t, "unknown", UpdateReason(42).String())
}
