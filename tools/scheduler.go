package tools

import (
	"github.com/samber/lo"

	"github.com/rodrigo-brito/barcolor/model"
)

// VisibilitySwitch 是可以切换指标渲染器显示开关的图表，plot.Chart 实现了它
type VisibilitySwitch interface {
	SetVisible(indicatorID string, visible bool) bool
}

// VisibilityCondition 满足 Condition 时把指标设置为 Visible
type VisibilityCondition struct {
	Condition func(df *model.Dataframe) bool
	Visible   bool
}

// Scheduler 模拟用户在图表界面上隐藏/显示指标，每个条件只触发一次
type Scheduler struct {
	indicatorID string
	conditions  []VisibilityCondition
}

// NewScheduler 为某个指标实例创建调度器
func NewScheduler(indicatorID string) *Scheduler {
	return &Scheduler{indicatorID: indicatorID}
}

// HideWhen 满足条件时隐藏指标
func (s *Scheduler) HideWhen(condition func(df *model.Dataframe) bool) {
	s.conditions = append(s.conditions, VisibilityCondition{Condition: condition, Visible: false})
}

// ShowWhen 满足条件时显示指标
func (s *Scheduler) ShowWhen(condition func(df *model.Dataframe) bool) {
	s.conditions = append(s.conditions, VisibilityCondition{Condition: condition, Visible: true})
}

// HideAt 图表上有 bars 根K线时隐藏指标
func (s *Scheduler) HideAt(bars int) {
	s.HideWhen(barCount(bars))
}

// ShowAt 图表上有 bars 根K线时显示指标
func (s *Scheduler) ShowAt(bars int) {
	s.ShowWhen(barCount(bars))
}

// Pending 返回还没有触发的条件数量
func (s *Scheduler) Pending() int {
	return len(s.conditions)
}

// Update 检查每个条件，满足的切换一次开关并被移除
func (s *Scheduler) Update(df *model.Dataframe, chart VisibilitySwitch) {
	s.conditions = lo.Filter(s.conditions, func(vc VisibilityCondition, _ int) bool {
		if !vc.Condition(df) {
			return true
		}
		chart.SetVisible(s.indicatorID, vc.Visible)
		return false
	})
}

func barCount(bars int) func(df *model.Dataframe) bool {
	return func(df *model.Dataframe) bool {
		return df.Len() >= bars
	}
}
