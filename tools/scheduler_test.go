package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rodrigo-brito/barcolor/model"
)

type switchRecorder struct {
	calls []bool
}

func (s *switchRecorder) SetVisible(indicatorID string, visible bool) bool {
	s.calls = append(s.calls, visible)
	return indicatorID == "ind"
}

func dataframe(bars int) *model.Dataframe {
	df := model.NewDataframe("BTCUSDT")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < bars; i++ {
		df.Update(model.Candle{Time: start.Add(time.Duration(i) * time.Hour), Close: float64(i)})
	}
	return df
}

func TestScheduler(t *testing.T) {
	recorder := &switchRecorder{}
	scheduler := NewScheduler("ind")
	scheduler.HideAt(3)
	scheduler.ShowAt(5)
	scheduler.HideWhen(func(df *model.Dataframe) bool {
		return df.Close.Above(8)
	})
	assert.Equal(t, 3, scheduler.Pending())

	scheduler.Update(dataframe(2), recorder)
	assert.Empty(t, recorder.calls)

	scheduler.Update(dataframe(3), recorder)
	scheduler.Update(dataframe(4), recorder)
	assert.Equal(t, []bool{false}, recorder.calls)
	assert.Equal(t, 2, scheduler.Pending())

	scheduler.Update(dataframe(6), recorder)
	assert.Equal(t, []bool{false, true}, recorder.calls)

	scheduler.Update(dataframe(10), recorder)
	assert.Equal(t, []bool{false, true, false}, recorder.calls)
	assert.Zero(t, scheduler.Pending())

	scheduler.Update(dataframe(20), recorder)
	assert.Len(t, recorder.calls, 3)
}
