package lifecycle

import (
	"time"

	"training-portal/backend/internal/model"
)

// ── 测试辅助 ──

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(sno int64, week string, date time.Time) model.DailySchedule {
	return model.DailySchedule{
		Sno:            sno,
		WeekScheduleID: week,
		TrainingID:     "T1",
		OwnerEmail:     "trainer@example.com",
		Date:           date,
		Day:            date.Weekday().String(),
		Attendance:     model.AttendanceNotUpdated,
		ModifyStatus:   model.ModifyDisabled,
	}
}

// twoWeeks 生成两周共 14 条记录（输入顺序打乱：第二周在前、组内倒序）
func twoWeeks(start time.Time) []model.DailySchedule {
	var out []model.DailySchedule
	for i := 13; i >= 7; i-- {
		out = append(out, record(int64(i+1), "W2", start.AddDate(0, 0, i)))
	}
	for i := 6; i >= 0; i-- {
		out = append(out, record(int64(i+1), "W1", start.AddDate(0, 0, i)))
	}
	return out
}
