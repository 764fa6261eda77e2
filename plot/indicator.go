package plot

import (
	"time"

	"github.com/samber/lo"

	"github.com/rodrigo-brito/barcolor/model"
)

// 指标线的绘制样式
const (
	StyleLine    = "line"
	StyleScatter = "scatter"
)

// Indicator 是可以叠加在图表上绘制的指标
type Indicator interface {
	Name() string                    // 指标名称，如 "SMA(20)"
	Overlay() bool                   // 是否叠加在主图K线上
	Warmup() int                     // 计算前至少需要的K线数量
	Metrics() []IndicatorMetric      // 指标包含的线
	Load(dataframe *model.Dataframe) // 根据数据帧计算指标线
}

// IndicatorMetric 指标中的一条线
type IndicatorMetric struct {
	Name   string
	Color  model.Color
	Style  string
	Values model.Series[float64]
	Time   []time.Time
}

// PlotIndicator 是图表绘制某个指标时使用的数据
type PlotIndicator struct {
	Name    string
	Overlay bool
	Warmup  int
	Metrics []IndicatorMetric
}

// Indicators 用当前K线数据重新计算每个叠加指标，返回绘图数据
func (c *Chart) Indicators() []PlotIndicator {
	dataframe := c.Dataframe()

	c.Lock()
	indicators := c.indicators
	c.Unlock()

	plots := make([]PlotIndicator, 0, len(indicators))
	for _, i := range indicators {
		i.Load(dataframe)

		plots = append(plots, PlotIndicator{
			Name:    i.Name(),
			Overlay: i.Overlay(),
			Warmup:  i.Warmup(),
			Metrics: i.Metrics(),
		})
	}
	return plots
}

// AddIndicator 在图表上叠加一个指标
func (c *Chart) AddIndicator(indicator Indicator) {
	c.Lock()
	defer c.Unlock()

	c.indicators = append(c.indicators, indicator)
}

// RemoveIndicator 从图表上移除一个叠加指标
func (c *Chart) RemoveIndicator(indicator Indicator) {
	c.Lock()
	defer c.Unlock()

	c.indicators = lo.Reject(c.indicators, func(i Indicator, _ int) bool {
		return i == indicator
	})
}
