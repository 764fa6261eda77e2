package model

import "sync"

// PriorityQueue 是一个最小堆，按 Item.Less 排序。回放时用它把乱序读入的K线按时间弹出。
type PriorityQueue struct {
	sync.Mutex
	length int
	data   []Item
}

// Item 是可以放入优先队列的元素
type Item interface {
	Less(Item) bool
}

// NewPriorityQueue 用已有元素建堆
func NewPriorityQueue(data []Item) *PriorityQueue {
	q := &PriorityQueue{data: data, length: len(data)}
	if q.length > 0 {
		for i := (q.length >> 1) - 1; i >= 0; i-- {
			q.down(i)
		}
	}
	return q
}

// Push 加入一个元素
func (q *PriorityQueue) Push(item Item) {
	q.Lock()
	defer q.Unlock()

	q.data = append(q.data, item)
	q.length++
	q.up(q.length - 1)
}

// Pop 弹出最小的元素，队列为空时返回 nil
func (q *PriorityQueue) Pop() Item {
	q.Lock()
	defer q.Unlock()

	if q.length == 0 {
		return nil
	}
	top := q.data[0]
	q.length--
	if q.length > 0 {
		q.data[0] = q.data[q.length]
		q.down(0)
	}
	q.data = q.data[:q.length]
	return top
}

// Peek 返回但不删除最小的元素
func (q *PriorityQueue) Peek() Item {
	q.Lock()
	defer q.Unlock()

	if q.length == 0 {
		return nil
	}
	return q.data[0]
}

// Len 返回队列长度
func (q *PriorityQueue) Len() int {
	q.Lock()
	defer q.Unlock()

	return q.length
}

func (q *PriorityQueue) down(pos int) {
	data := q.data
	halfLength := q.length >> 1
	item := data[pos]
	for pos < halfLength {
		left := (pos << 1) + 1
		right := left + 1
		best := left
		if right < q.length && data[right].Less(data[best]) {
			best = right
		}
		if !data[best].Less(item) {
			break
		}
		data[pos] = data[best]
		pos = best
	}
	data[pos] = item
}

func (q *PriorityQueue) up(pos int) {
	data := q.data
	item := data[pos]
	for pos > 0 {
		parent := (pos - 1) >> 1
		current := data[parent]
		if !item.Less(current) {
			break
		}
		data[pos] = current
		pos = parent
	}
	data[pos] = item
}
