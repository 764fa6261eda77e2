// 定义指标包，存放可以叠加在图表上的指标。
package indicator

import (
	"fmt"
	"time"

	"github.com/markcheno/go-talib"

	"github.com/rodrigo-brito/barcolor/model"
	"github.com/rodrigo-brito/barcolor/plot"
)

// SMA 创建一条简单移动平均线
func SMA(period int, color model.Color) plot.Indicator {
	return &sma{
		Period: period,
		Color:  color,
	}
}

type sma struct {
	Period int
	Color  model.Color
	Values model.Series[float64]
	Time   []time.Time
}

func (s sma) Warmup() int {
	return s.Period
}

func (s sma) Name() string {
	return fmt.Sprintf("SMA(%d)", s.Period)
}

func (s sma) Overlay() bool {
	return true
}

// Load 用 TA-Lib 计算整条均线。前 Period-1 个位置没有足够数据，被裁掉，
// 所以 Values[0] 对应第 Period 根K线。
func (s *sma) Load(dataframe *model.Dataframe) {
	if len(dataframe.Time) < s.Period {
		s.Values = nil
		s.Time = nil
		return
	}

	s.Values = talib.Sma(dataframe.Close, s.Period)[s.Period-1:]
	s.Time = dataframe.Time[s.Period-1:]
}

func (s sma) Metrics() []plot.IndicatorMetric {
	return []plot.IndicatorMetric{
		{
			Name:   "MA",
			Style:  plot.StyleLine,
			Color:  s.Color,
			Values: s.Values,
			Time:   s.Time,
		},
	}
}
