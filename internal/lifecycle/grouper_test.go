package lifecycle

import (
	"testing"
	"time"

	"training-portal/backend/internal/model"
)

func TestGroupByWeek_Empty(t *testing.T) {
	groups := GroupByWeek(nil)
	if groups == nil {
		t.Fatal("空输入应返回非 nil 切片")
	}
	if len(groups) != 0 {
		t.Errorf("期望 0 组，实际=%d", len(groups))
	}
}

func TestGroupByWeek_OrderAndCount(t *testing.T) {
	start := day(2026, 3, 2)
	groups := GroupByWeek(twoWeeks(start))

	if len(groups) != 2 {
		t.Fatalf("期望 2 组，实际=%d", len(groups))
	}
	if groups[0].WeekScheduleID != "W1" || groups[1].WeekScheduleID != "W2" {
		t.Errorf("组间应按首日升序，实际=%s,%s", groups[0].WeekScheduleID, groups[1].WeekScheduleID)
	}
	for _, g := range groups {
		if len(g.Schedules) != 7 {
			t.Errorf("%s 期望 7 条，实际=%d", g.WeekScheduleID, len(g.Schedules))
		}
		for i := 1; i < len(g.Schedules); i++ {
			if g.Schedules[i].Date.Before(g.Schedules[i-1].Date) {
				t.Errorf("%s 组内未按日期升序: 下标 %d", g.WeekScheduleID, i)
			}
		}
	}
	if !groups[0].FirstDate().Equal(start) {
		t.Errorf("首周首日期望 %v，实际 %v", start, groups[0].FirstDate())
	}
}

func TestGroupByWeek_DistinctKeys(t *testing.T) {
	base := day(2026, 1, 5)
	records := []model.DailySchedule{
		record(1, "A", base.AddDate(0, 0, 14)),
		record(2, "B", base),
		record(3, "C", base.AddDate(0, 0, 7)),
		record(4, "B", base.AddDate(0, 0, 1)),
		record(5, "A", base.AddDate(0, 0, 15)),
	}

	groups := GroupByWeek(records)
	if len(groups) != 3 {
		t.Fatalf("期望 3 组，实际=%d", len(groups))
	}
	want := []string{"B", "C", "A"}
	for i, id := range want {
		if groups[i].WeekScheduleID != id {
			t.Errorf("下标 %d 期望 %s，实际 %s", i, id, groups[i].WeekScheduleID)
		}
	}
}

func TestGroupByWeek_StableTies(t *testing.T) {
	d := day(2026, 5, 4)
	records := []model.DailySchedule{
		record(10, "X", d),
		record(11, "Y", d),
		record(12, "X", d),
	}

	groups := GroupByWeek(records)
	if groups[0].WeekScheduleID != "X" || groups[1].WeekScheduleID != "Y" {
		t.Errorf("首日相同时应保持首次出现顺序，实际=%s,%s", groups[0].WeekScheduleID, groups[1].WeekScheduleID)
	}
	if groups[0].Schedules[0].Sno != 10 || groups[0].Schedules[1].Sno != 12 {
		t.Error("同日记录应保持输入顺序")
	}
}

func TestGroupByWeek_Idempotent(t *testing.T) {
	first := GroupByWeek(twoWeeks(day(2026, 3, 2)))
	second := GroupByWeek(Flatten(first))

	if len(first) != len(second) {
		t.Fatalf("重新分组后组数变化: %d → %d", len(first), len(second))
	}
	for i := range first {
		if first[i].WeekScheduleID != second[i].WeekScheduleID {
			t.Errorf("下标 %d 组 ID 变化", i)
		}
		for j := range first[i].Schedules {
			if first[i].Schedules[j].Sno != second[i].Schedules[j].Sno {
				t.Errorf("组 %d 下标 %d 记录变化", i, j)
			}
		}
	}
}

func TestGroupByWeek_DoesNotMutateInput(t *testing.T) {
	input := twoWeeks(day(2026, 3, 2))
	firstSno := input[0].Sno

	_ = GroupByWeek(input)
	if input[0].Sno != firstSno {
		t.Error("GroupByWeek 不应修改输入切片顺序")
	}
}

func TestSameDay(t *testing.T) {
	shanghai := time.FixedZone("CST", 8*3600)
	if !SameDay(day(2026, 10, 16), time.Date(2026, 10, 16, 23, 59, 0, 0, shanghai)) {
		t.Error("同一日历日应判定为同一天")
	}
	if SameDay(day(2026, 10, 16), day(2026, 10, 17)) {
		t.Error("不同日期不应判定为同一天")
	}
}
