package lifecycle

import "time"

// Navigator 周分页游标
// Next / Previous / JumpTo 均夹在 [0, Len()-1] 内，到边界时不变、不回绕。
type Navigator struct {
	groups []WeekGroup
	index  int
}

// NewNavigator 创建游标；若某周包含 today 则定位到该周，否则定位到第 0 周
func NewNavigator(groups []WeekGroup, today time.Time) *Navigator {
	n := &Navigator{groups: groups}
	if i := IndexOfDay(groups, today); i >= 0 {
		n.index = i
	}
	return n
}

// IndexOfDay 查找包含 day 的周下标，不存在返回 -1
func IndexOfDay(groups []WeekGroup, day time.Time) int {
	for i := range groups {
		if groups[i].Contains(day) {
			return i
		}
	}
	return -1
}

// Len 总周数
func (n *Navigator) Len() int { return len(n.groups) }

// Index 当前周下标（无数据时为 0）
func (n *Navigator) Index() int { return n.index }

// Groups 全部周分组
func (n *Navigator) Groups() []WeekGroup { return n.groups }

// Current 当前周；无数据时 ok=false
func (n *Navigator) Current() (WeekGroup, bool) {
	if len(n.groups) == 0 {
		return WeekGroup{}, false
	}
	return n.groups[n.index], true
}

// Next 下一周
func (n *Navigator) Next() int { return n.JumpTo(n.index + 1) }

// Previous 上一周
func (n *Navigator) Previous() int { return n.JumpTo(n.index - 1) }

// JumpTo 跳转到指定周
func (n *Navigator) JumpTo(i int) int {
	if len(n.groups) == 0 {
		n.index = 0
		return 0
	}
	if i < 0 {
		i = 0
	}
	if last := len(n.groups) - 1; i > last {
		i = last
	}
	n.index = i
	return n.index
}

// HasNext 是否还有下一周
func (n *Navigator) HasNext() bool { return n.index < len(n.groups)-1 }

// HasPrevious 是否还有上一周
func (n *Navigator) HasPrevious() bool { return n.index > 0 }
