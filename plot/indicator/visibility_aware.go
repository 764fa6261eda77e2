package indicator

import (
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
	"gonum.org/v1/gonum/stat"

	"github.com/rodrigo-brito/barcolor/model"
	"github.com/rodrigo-brito/barcolor/plot"
	"github.com/rodrigo-brito/barcolor/plugin"
	"github.com/rodrigo-brito/barcolor/service"
	"github.com/rodrigo-brito/barcolor/tools/log"
)

// 周期参数的取值范围和默认值
const (
	MinPeriod     = 1
	MaxPeriod     = 500
	DefaultPeriod = 5

	DefaultLogInterval = time.Second
)

// 默认颜色
var (
	DefaultAboveColor = model.ColorLime
	DefaultBelowColor = model.ColorMagenta
	DefaultLineColor  = model.ColorCyan
)

// ErrInvalidPeriod 周期超出 [MinPeriod, MaxPeriod]
var ErrInvalidPeriod = errors.New("invalid period")

// VisibilityAware 按收盘价在均线上方或下方给当前K线着色。
// 指标在图表上被隐藏时不再着色，并在从可见变为隐藏的那一次更新中
// 把所有已加载的K线恢复成图表原生的涨跌颜色。
//
// 宿主保证 OnUpdate 和 OnClear 串行调用，所以内部状态不加锁。
type VisibilityAware struct {
	id          string
	host        service.Host
	period      int
	aboveColor  model.Color
	belowColor  model.Color
	lineColor   model.Color
	logInterval time.Duration
	now         func() time.Time

	wasVisible          bool
	lastVisibilityCheck time.Time
	visibilityLog       *log.Throttle
	dataStyleWarned     bool

	value    float64
	hasValue bool
	line     plot.Indicator
}

// Option 配置 VisibilityAware 的函数选项
type Option func(*VisibilityAware)

// WithPeriod 设置均线周期 N
func WithPeriod(period int) Option {
	return func(v *VisibilityAware) {
		v.period = period
	}
}

// WithAboveColor 设置收盘价高于均线时的颜色
func WithAboveColor(color model.Color) Option {
	return func(v *VisibilityAware) {
		v.aboveColor = color
	}
}

// WithBelowColor 设置收盘价不高于均线时的颜色
func WithBelowColor(color model.Color) Option {
	return func(v *VisibilityAware) {
		v.belowColor = color
	}
}

// WithLineColor 设置均线的颜色
func WithLineColor(color model.Color) Option {
	return func(v *VisibilityAware) {
		v.lineColor = color
	}
}

// WithLogInterval 设置可见性日志的最短输出间隔
func WithLogInterval(interval time.Duration) Option {
	return func(v *VisibilityAware) {
		v.logInterval = interval
	}
}

// WithClock 替换时钟，测试用
func WithClock(now func() time.Time) Option {
	return func(v *VisibilityAware) {
		v.now = now
	}
}

// WithID 指定指标实例的ID，默认生成一个 ULID
func WithID(id string) Option {
	return func(v *VisibilityAware) {
		v.id = id
	}
}

// NewVisibilityAware 创建指标。host 提供价格、着色、可见性和图表设置。
func NewVisibilityAware(host service.Host, options ...Option) (*VisibilityAware, error) {
	v := &VisibilityAware{
		host:        host,
		period:      DefaultPeriod,
		aboveColor:  DefaultAboveColor,
		belowColor:  DefaultBelowColor,
		lineColor:   DefaultLineColor,
		logInterval: DefaultLogInterval,
		now:         time.Now,
		wasVisible:  true,
	}

	for _, option := range options {
		option(v)
	}

	if v.period < MinPeriod || v.period > MaxPeriod {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidPeriod, v.period, MinPeriod, MaxPeriod)
	}

	if v.id == "" {
		v.id = ulid.Make().String()
	}

	v.visibilityLog = log.NewThrottle(v.logInterval)
	v.line = SMA(v.period, v.lineColor)
	return v, nil
}

// ID 返回指标实例的ID，图表用它找到对应的渲染器
func (v *VisibilityAware) ID() string {
	return v.id
}

// Period 返回均线周期
func (v *VisibilityAware) Period() int {
	return v.period
}

// Value 返回最近一次计算的均线值，K线不足 N 根时 ok 为 false
func (v *VisibilityAware) Value() (value float64, ok bool) {
	return v.value, v.hasValue
}

// Visible 返回上一次检查到的可见状态
func (v *VisibilityAware) Visible() bool {
	return v.wasVisible
}

// LastVisibilityCheck 返回上一次检查可见性的时间，从未检查时为零值
func (v *VisibilityAware) LastVisibilityCheck() time.Time {
	return v.lastVisibilityCheck
}

// OnUpdate 每次价格更新时由宿主调用
func (v *VisibilityAware) OnUpdate(_ plugin.UpdateArgs) {
	if v.host.Count() < v.period {
		return
	}

	ma := v.movingAverage()
	v.value, v.hasValue = ma, true

	visible := v.checkVisibility()
	if v.wasVisible && !visible {
		v.restoreAllBars()
	}
	v.wasVisible = visible

	if !visible {
		return
	}

	color := v.belowColor
	if v.host.Close(0) > ma {
		color = v.aboveColor
	}
	v.host.SetBarAppearance(0, model.SolidAppearance(color))
}

// OnClear 指标被移除时由宿主调用，无条件恢复一次原生颜色
func (v *VisibilityAware) OnClear() {
	v.restoreAllBars()
}

// movingAverage 最近 N 根收盘价（含当前K线）的算术平均
func (v *VisibilityAware) movingAverage() float64 {
	closes := make([]float64, v.period)
	for i := range closes {
		closes[i] = v.host.Close(i)
	}
	return stat.Mean(closes, nil)
}

// checkVisibility 找不到渲染器时视为可见
func (v *VisibilityAware) checkVisibility() bool {
	visible, found := v.host.RendererVisible(v.id)
	if !found {
		visible = true
	}

	now := v.now()
	if v.visibilityLog.Allow(now) {
		log.WithFields(log.Fields{
			"indicator": v.id,
			"found":     found,
		}).Debugf("visibility:%t", visible)
	}
	v.lastVisibilityCheck = now

	return visible
}

// restoreAllBars 按 "Data style" 设置把每根已加载的K线恢复成原生颜色，从最旧到最新。
// 设置缺失或不是颜色对时什么都不做，每个实例只警告一次。
func (v *VisibilityAware) restoreAllBars() {
	value, found := v.host.Setting(model.DataStyleSetting)
	style, ok := value.(model.ColorPair)
	if !found || !ok {
		if !v.dataStyleWarned {
			log.WithField("indicator", v.id).
				Warnf("chart setting %q missing or not a color pair (%T), bars not restored",
					model.DataStyleSetting, value)
			v.dataStyleWarned = true
		}
		return
	}

	for offset := v.host.Count() - 1; offset >= 0; offset-- {
		color := style.Pick(v.host.Open(offset), v.host.Close(offset))
		v.host.SetBarAppearance(offset, model.SolidAppearance(color))
	}
}

func (v *VisibilityAware) Name() string {
	return fmt.Sprintf("VisibilityAware(%d)", v.period)
}

func (v *VisibilityAware) Overlay() bool {
	return true
}

func (v *VisibilityAware) Warmup() int {
	return v.period
}

// Load 计算整条均线，供图表绘制
func (v *VisibilityAware) Load(dataframe *model.Dataframe) {
	v.line.Load(dataframe)
}

func (v *VisibilityAware) Metrics() []plot.IndicatorMetric {
	return v.line.Metrics()
}
