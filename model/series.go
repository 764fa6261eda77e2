package model

import (
	"golang.org/x/exp/constraints"
)

// Series 是按时间从旧到新排列的泛型序列，Last(0) 是最新的值
type Series[T constraints.Ordered] []T

// Values 返回序列中的所有值
func (s Series[T]) Values() []T {
	return s
}

// Length 返回序列中值的数量
func (s Series[T]) Length() int {
	return len(s)
}

// Last 返回往前数 position 个位置的值，position 为 0 时返回最新值
func (s Series[T]) Last(position int) T {
	return s[len(s)-1-position]
}

// LastValues 返回最近的 size 个值（按时间从旧到新），不足时返回整个序列
func (s Series[T]) LastValues(size int) []T {
	if l := len(s); l > size {
		return s[l-size:]
	}
	return s
}

// Above 判断最新值是否严格大于 ref
func (s Series[T]) Above(ref T) bool {
	return len(s) > 0 && s.Last(0) > ref
}
