package plugin

import (
	"github.com/rodrigo-brito/barcolor/model"
)

// UpdateReason 表示宿主为什么调用 OnUpdate
type UpdateReason int

const (
	// Historical 控制器启动前的预加载K线
	Historical UpdateReason = iota
	// NewBar 新增了一根K线
	NewBar
	// NewTick 最后一根K线被更新（未完成K线）
	NewTick
)

func (r UpdateReason) String() string {
	switch r {
	case Historical:
		return "historical"
	case NewBar:
		return "new_bar"
	case NewTick:
		return "new_tick"
	}
	return "unknown"
}

// UpdateArgs 是每次更新时传给指标的参数
type UpdateArgs struct {
	Reason UpdateReason
	Candle model.Candle
}

// Indicator 是宿主加载的指标插件需要实现的生命周期回调。
// 宿主保证这些回调串行、不重入。
type Indicator interface {
	// ID 指标实例的唯一标识，图表用它找到该实例的渲染器
	ID() string
	// OnUpdate 每次价格更新（新K线或K线更新）时调用
	OnUpdate(args UpdateArgs)
	// OnClear 指标被移除时调用一次
	OnClear()
}
