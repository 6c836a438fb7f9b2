package lifecycle

import (
	"sort"
	"time"

	"training-portal/backend/internal/model"
)

// WeekGroup 同一 weekScheduleId 的每日记录（派生数据，不持久化）
// Schedules 按日期升序，且至少包含一条记录
type WeekGroup struct {
	WeekScheduleID string
	Schedules      []model.DailySchedule
}

// FirstDate 组内最早日期
func (g WeekGroup) FirstDate() time.Time {
	if len(g.Schedules) == 0 {
		return time.Time{}
	}
	return g.Schedules[0].Date
}

// Contains 组内是否有日期与 day 同一天的记录
func (g WeekGroup) Contains(day time.Time) bool {
	for i := range g.Schedules {
		if SameDay(g.Schedules[i].Date, day) {
			return true
		}
	}
	return false
}

// GroupByWeek 将扁平记录按 weekScheduleId 分组
//
// 组内按日期升序，组间按各组首条记录日期升序；日期相同时保持输入中的出现顺序。
// 空输入返回长度为 0 的非 nil 切片。
func GroupByWeek(records []model.DailySchedule) []WeekGroup {
	groups := make([]WeekGroup, 0)
	index := make(map[string]int)

	for _, r := range records {
		i, ok := index[r.WeekScheduleID]
		if !ok {
			i = len(groups)
			index[r.WeekScheduleID] = i
			groups = append(groups, WeekGroup{WeekScheduleID: r.WeekScheduleID})
		}
		groups[i].Schedules = append(groups[i].Schedules, r)
	}

	for i := range groups {
		s := groups[i].Schedules
		sort.SliceStable(s, func(a, b int) bool { return s[a].Date.Before(s[b].Date) })
	}
	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].FirstDate().Before(groups[b].FirstDate())
	})

	return groups
}

// Flatten 按分组顺序展开为扁平列表
func Flatten(groups []WeekGroup) []model.DailySchedule {
	n := 0
	for _, g := range groups {
		n += len(g.Schedules)
	}
	out := make([]model.DailySchedule, 0, n)
	for _, g := range groups {
		out = append(out, g.Schedules...)
	}
	return out
}

// SameDay 两个时间是否为同一日历日（各自按所在时区取年月日）
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
