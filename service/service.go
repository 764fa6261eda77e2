package service

import (
	"github.com/rodrigo-brito/barcolor/model"
)

// Host 是指标插件从宿主图表平台获得的全部能力。
type Host interface {
	PriceSeries
	BarPainter
	VisibilityProvider
	SettingsProvider
}

// PriceSeries 只读的价格序列，offset 为回看位置，0 表示当前（最新）K线。
type PriceSeries interface {
	Count() int               // 当前已加载的K线数量
	Close(offset int) float64 // 往前数 offset 根K线的收盘价
	Open(offset int) float64  // 往前数 offset 根K线的开盘价
}

// BarPainter 设置单根K线的渲染外观，不改变价格数据。
type BarPainter interface {
	SetBarAppearance(offset int, appearance model.BarAppearance)
}

// VisibilityProvider 查询某个指标实例的渲染器是否可见。
// found 为 false 表示图表上找不到该指标的渲染器。
type VisibilityProvider interface {
	RendererVisible(indicatorID string) (visible bool, found bool)
}

// SettingsProvider 按名称读取图表设置，值的类型由宿主决定。
type SettingsProvider interface {
	Setting(name string) (value any, found bool)
}
