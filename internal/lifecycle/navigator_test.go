package lifecycle

import (
	"testing"
)

func TestNavigator_AutoSelectsToday(t *testing.T) {
	start := day(2026, 10, 5)
	groups := GroupByWeek(twoWeeks(start))

	today := day(2026, 10, 16) // 第二周
	n := NewNavigator(groups, today)
	if n.Index() != 1 {
		t.Errorf("期望定位到包含今天的第 1 周，实际=%d", n.Index())
	}
	cur, ok := n.Current()
	if !ok || cur.WeekScheduleID != "W2" {
		t.Errorf("当前周期望 W2，实际=%s", cur.WeekScheduleID)
	}
}

func TestNavigator_NoTodayDefaultsToFirst(t *testing.T) {
	groups := GroupByWeek(twoWeeks(day(2026, 3, 2)))

	n := NewNavigator(groups, day(2026, 10, 16))
	if n.Index() != 0 {
		t.Errorf("无今天的周时应定位到 0，实际=%d", n.Index())
	}
}

func TestNavigator_Clamp(t *testing.T) {
	groups := GroupByWeek(twoWeeks(day(2026, 3, 2)))
	n := NewNavigator(groups, day(2026, 10, 16))

	if got := n.Previous(); got != 0 {
		t.Errorf("第 0 周 Previous 应保持 0，实际=%d", got)
	}
	if got := n.Next(); got != 1 {
		t.Errorf("Next 期望 1，实际=%d", got)
	}
	if got := n.Next(); got != 1 {
		t.Errorf("最后一周 Next 应保持不变，实际=%d", got)
	}
	if n.HasNext() {
		t.Error("最后一周不应 HasNext")
	}
	if got := n.JumpTo(-5); got != 0 {
		t.Errorf("JumpTo(-5) 期望 0，实际=%d", got)
	}
	if got := n.JumpTo(99); got != 1 {
		t.Errorf("JumpTo(99) 期望 1，实际=%d", got)
	}
	if !n.HasPrevious() {
		t.Error("第 1 周应 HasPrevious")
	}
}

func TestNavigator_Empty(t *testing.T) {
	n := NewNavigator(GroupByWeek(nil), day(2026, 10, 16))

	if n.Len() != 0 {
		t.Errorf("期望 0 周，实际=%d", n.Len())
	}
	if _, ok := n.Current(); ok {
		t.Error("无数据时 Current 应返回 ok=false")
	}
	if n.Next() != 0 || n.Previous() != 0 || n.JumpTo(3) != 0 {
		t.Error("无数据时游标应始终为 0")
	}
	if n.HasNext() || n.HasPrevious() {
		t.Error("无数据时不应有上一周/下一周")
	}
}
