package plugin

import (
	"github.com/rodrigo-brito/barcolor/model"
	"github.com/rodrigo-brito/barcolor/plot"
	"github.com/rodrigo-brito/barcolor/tools/log"
)

// Controller 把一个指标插件挂到图表上，按K线事件驱动它的生命周期。
// 所有回调都在调用方的 goroutine 上同步执行。
type Controller struct {
	chart     *plot.Chart
	indicator Indicator
	started   bool
	removed   bool
	updates   int
}

// NewController 在图表上为指标创建渲染器；指标同时实现 plot.Indicator 时也叠加绘制它
func NewController(chart *plot.Chart, indicator Indicator) *Controller {
	chart.AttachIndicator(indicator.ID())
	if overlay, ok := indicator.(plot.Indicator); ok {
		chart.AddIndicator(overlay)
	}

	return &Controller{
		chart:     chart,
		indicator: indicator,
	}
}

// Start 之后的K线事件以 NewBar/NewTick 传给指标，之前的以 Historical 传入
func (c *Controller) Start() {
	c.started = true
}

// Chart 返回控制器使用的图表
func (c *Controller) Chart() *plot.Chart {
	return c.chart
}

// Updates 返回已经调用 OnUpdate 的次数
func (c *Controller) Updates() int {
	return c.updates
}

// Removed 指标是否已被移除
func (c *Controller) Removed() bool {
	return c.removed
}

// Preload 依次写入历史K线
func (c *Controller) Preload(candles []model.Candle) {
	for _, candle := range candles {
		c.OnCandle(candle)
	}
}

// OnCandle 写入一根K线（完成的或未完成的）并调用一次指标的 OnUpdate
func (c *Controller) OnCandle(candle model.Candle) {
	if c.removed {
		return
	}

	if pair := c.chart.Pair(); pair != "" && candle.Pair != "" && candle.Pair != pair {
		log.Warnf("candle for %s dropped by %s chart", candle.Pair, pair)
		return
	}

	if last, ok := c.chart.LastTime(); ok && candle.Time.Before(last) {
		log.Errorf("late candle received: %#v", candle)
		return
	}

	appended := c.chart.OnCandle(candle)

	reason := NewTick
	switch {
	case !c.started:
		reason = Historical
	case appended:
		reason = NewBar
	}

	c.updates++
	c.indicator.OnUpdate(UpdateArgs{Reason: reason, Candle: candle})
}

// Remove 从图表上移除指标并调用一次 OnClear，重复调用无效
func (c *Controller) Remove() {
	if c.removed {
		return
	}
	c.removed = true

	c.chart.DetachIndicator(c.indicator.ID())
	if overlay, ok := c.indicator.(plot.Indicator); ok {
		c.chart.RemoveIndicator(overlay)
	}
	c.indicator.OnClear()
}
