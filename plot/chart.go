package plot

import (
	"sync"
	"time"

	"github.com/StudioSol/set"
	"github.com/samber/lo"

	"github.com/rodrigo-brito/barcolor/model"
	"github.com/rodrigo-brito/barcolor/tools/log"
)

// DefaultDataStyle 图表默认的K线涨跌颜色
var DefaultDataStyle = model.ColorPair{
	Color1: model.ColorTeal,
	Color2: model.ColorRed,
}

// Chart 是一个内存中的宿主图表：保存已加载的K线、每根K线的外观覆盖、
// 指标渲染器（带可见开关）以及图表设置。它实现了 service.Host。
type Chart struct {
	sync.Mutex
	pair        string
	dataframe   *model.Dataframe
	appearances map[int]model.BarAppearance // 绝对下标 -> 外观覆盖
	painted     *set.LinkedHashSetINT64     // 被覆盖过外观的K线下标，按首次覆盖顺序
	renderers   []*IndicatorRenderer
	settings    []model.Setting
	indicators  []Indicator
	lastUpdate  time.Time
}

// IndicatorRenderer 图表上某个指标实例的渲染包装，Visible 即用户在界面上的显示开关。
type IndicatorRenderer struct {
	IndicatorID string
	Visible     bool
}

// Bar 是图表上一根K线的渲染结果
type Bar struct {
	Time       time.Time
	Open       float64
	Close      float64
	High       float64
	Low        float64
	Appearance model.BarAppearance
	Painted    bool // true 表示外观来自指标覆盖，false 表示图表原生颜色
}

// Option 配置 Chart 的函数选项
type Option func(*Chart)

// WithPair 设置图表的交易对
func WithPair(pair string) Option {
	return func(chart *Chart) {
		chart.pair = pair
	}
}

// WithSettings 替换图表的全部设置
func WithSettings(settings ...model.Setting) Option {
	return func(chart *Chart) {
		chart.settings = settings
	}
}

// WithDataStyle 设置K线原生涨跌颜色
func WithDataStyle(style model.ColorPair) Option {
	return func(chart *Chart) {
		chart.setSetting(model.DataStyleSetting, style)
	}
}

// WithCustomIndicators 设置在图表上叠加绘制的指标
func WithCustomIndicators(indicators ...Indicator) Option {
	return func(chart *Chart) {
		chart.indicators = indicators
	}
}

// NewChart 创建一个新的图表，默认带有 "Data style" 设置
func NewChart(options ...Option) *Chart {
	chart := &Chart{
		appearances: make(map[int]model.BarAppearance),
		painted:     set.NewLinkedHashSetINT64(),
		settings: []model.Setting{
			{Name: model.DataStyleSetting, Value: DefaultDataStyle},
		},
	}

	for _, option := range options {
		option(chart)
	}

	chart.dataframe = model.NewDataframe(chart.pair)
	return chart
}

// Pair 返回图表的交易对
func (c *Chart) Pair() string {
	return c.pair
}

// OnCandle 把K线写入图表。与最后一根时间相同则覆盖（未完成K线），
// 早于最后一根的K线被丢弃。返回 true 表示新增了一根K线。
func (c *Chart) OnCandle(candle model.Candle) bool {
	c.Lock()
	defer c.Unlock()

	if c.pair != "" && candle.Pair != "" && candle.Pair != c.pair {
		log.Warnf("chart %s: ignoring candle for %s", c.pair, candle.Pair)
		return false
	}

	if n := c.dataframe.Len(); n > 0 && candle.Time.Before(c.dataframe.Time[n-1]) {
		return false
	}

	c.lastUpdate = time.Now()
	return c.dataframe.Update(candle)
}

// LastTime 返回最后一根K线的时间，图表为空时 ok 为 false
func (c *Chart) LastTime() (t time.Time, ok bool) {
	c.Lock()
	defer c.Unlock()

	if n := c.dataframe.Len(); n > 0 {
		return c.dataframe.Time[n-1], true
	}
	return time.Time{}, false
}

// Dataframe 返回图表数据的副本，供绘图指标计算
func (c *Chart) Dataframe() *model.Dataframe {
	c.Lock()
	defer c.Unlock()

	sample := c.dataframe.Sample(c.dataframe.Len())
	return &sample
}

// Count 实现 service.PriceSeries
func (c *Chart) Count() int {
	c.Lock()
	defer c.Unlock()

	return c.dataframe.Len()
}

// Close 实现 service.PriceSeries
func (c *Chart) Close(offset int) float64 {
	c.Lock()
	defer c.Unlock()

	return c.dataframe.Close.Last(offset)
}

// Open 实现 service.PriceSeries
func (c *Chart) Open(offset int) float64 {
	c.Lock()
	defer c.Unlock()

	return c.dataframe.Open.Last(offset)
}

// SetBarAppearance 实现 service.BarPainter。越界的 offset 被忽略。
func (c *Chart) SetBarAppearance(offset int, appearance model.BarAppearance) {
	c.Lock()
	defer c.Unlock()

	index := c.dataframe.Len() - 1 - offset
	if offset < 0 || index < 0 {
		return
	}

	c.appearances[index] = appearance
	c.painted.Add(int64(index))
}

// AttachIndicator 为指标实例创建一个可见的渲染器
func (c *Chart) AttachIndicator(indicatorID string) {
	c.Lock()
	defer c.Unlock()

	if _, ok := c.renderer(indicatorID); ok {
		return
	}
	c.renderers = append(c.renderers, &IndicatorRenderer{IndicatorID: indicatorID, Visible: true})
}

// DetachIndicator 移除指标实例的渲染器
func (c *Chart) DetachIndicator(indicatorID string) {
	c.Lock()
	defer c.Unlock()

	c.renderers = lo.Reject(c.renderers, func(r *IndicatorRenderer, _ int) bool {
		return r.IndicatorID == indicatorID
	})
}

// SetVisible 切换指标渲染器的显示开关，找不到渲染器时返回 false
func (c *Chart) SetVisible(indicatorID string, visible bool) bool {
	c.Lock()
	defer c.Unlock()

	r, ok := c.renderer(indicatorID)
	if !ok {
		return false
	}
	r.Visible = visible
	return true
}

// RendererVisible 实现 service.VisibilityProvider
func (c *Chart) RendererVisible(indicatorID string) (visible bool, found bool) {
	c.Lock()
	defer c.Unlock()

	r, ok := c.renderer(indicatorID)
	if !ok {
		return false, false
	}
	return r.Visible, true
}

func (c *Chart) renderer(indicatorID string) (*IndicatorRenderer, bool) {
	return lo.Find(c.renderers, func(r *IndicatorRenderer) bool {
		return r.IndicatorID == indicatorID
	})
}

// Setting 实现 service.SettingsProvider
func (c *Chart) Setting(name string) (value any, found bool) {
	c.Lock()
	defer c.Unlock()

	setting, ok := lo.Find(c.settings, func(s model.Setting) bool {
		return s.Name == name
	})
	if !ok {
		return nil, false
	}
	return setting.Value, true
}

// SetSetting 新增或覆盖一个图表设置
func (c *Chart) SetSetting(name string, value any) {
	c.Lock()
	defer c.Unlock()

	c.setSetting(name, value)
}

// RemoveSetting 删除一个图表设置
func (c *Chart) RemoveSetting(name string) {
	c.Lock()
	defer c.Unlock()

	c.settings = lo.Reject(c.settings, func(s model.Setting, _ int) bool {
		return s.Name == name
	})
}

func (c *Chart) setSetting(name string, value any) {
	for i := range c.settings {
		if c.settings[i].Name == name {
			c.settings[i].Value = value
			return
		}
	}
	c.settings = append(c.settings, model.Setting{Name: name, Value: value})
}

// Appearance 返回绝对下标 index 处K线的外观，overridden 表示是否被指标覆盖过
func (c *Chart) Appearance(index int) (appearance model.BarAppearance, overridden bool) {
	c.Lock()
	defer c.Unlock()

	if a, ok := c.appearances[index]; ok {
		return a, true
	}
	return c.nativeAppearance(index), false
}

// PaintedIndexes 返回被覆盖过外观的K线下标，按首次覆盖的顺序
func (c *Chart) PaintedIndexes() []int {
	c.Lock()
	defer c.Unlock()

	indexes := make([]int, 0)
	for index := range c.painted.Iter() {
		indexes = append(indexes, int(index))
	}
	return indexes
}

// ResetAppearances 清除所有外观覆盖
func (c *Chart) ResetAppearances() {
	c.Lock()
	defer c.Unlock()

	c.appearances = make(map[int]model.BarAppearance)
	c.painted = set.NewLinkedHashSetINT64()
}

// Bars 返回所有K线的渲染结果，按时间从旧到新
func (c *Chart) Bars() []Bar {
	c.Lock()
	defer c.Unlock()

	bars := make([]Bar, c.dataframe.Len())
	for i := range bars {
		appearance, painted := c.appearances[i]
		if !painted {
			appearance = c.nativeAppearance(i)
		}
		bars[i] = Bar{
			Time:       c.dataframe.Time[i],
			Open:       c.dataframe.Open[i],
			Close:      c.dataframe.Close[i],
			High:       c.dataframe.High[i],
			Low:        c.dataframe.Low[i],
			Appearance: appearance,
			Painted:    painted,
		}
	}
	return bars
}

// LastUpdate 返回最后一次写入K线的时间
func (c *Chart) LastUpdate() time.Time {
	c.Lock()
	defer c.Unlock()

	return c.lastUpdate
}

// nativeAppearance 图表自身对一根K线的着色；设置缺失或类型不符时用默认颜色
func (c *Chart) nativeAppearance(index int) model.BarAppearance {
	style := DefaultDataStyle
	if setting, ok := lo.Find(c.settings, func(s model.Setting) bool {
		return s.Name == model.DataStyleSetting
	}); ok {
		if pair, ok := setting.Value.(model.ColorPair); ok {
			style = pair
		}
	}

	if index < 0 || index >= c.dataframe.Len() {
		return model.SolidAppearance(style.Color1)
	}
	return model.SolidAppearance(style.Pick(c.dataframe.Open[index], c.dataframe.Close[index]))
}
