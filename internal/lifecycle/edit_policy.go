package lifecycle

import (
	"time"

	"training-portal/backend/internal/model"
)

// 描述输入框占位提示
const (
	PlaceholderOnLeave          = "Trainer on leave"
	PlaceholderEnterDescription = "Enter description"
	PlaceholderContactAdmin     = "Contact admin to enable"
)

// EditPermission 判断单日记录在 today 是否允许编辑，并给出占位提示
//
// 规则严格按顺序求值：
//  1. 请假 → 不可编辑（即使管理员已开启 modifyStatus）
//  2. modifyStatus=enabled → 可编辑
//  3. 记录日期为今天 → 可编辑
//  4. 其他 → 不可编辑，需联系管理员开启
func EditPermission(record model.DailySchedule, today time.Time) (bool, string) {
	switch {
	case record.Attendance == model.AttendanceLeave:
		return false, PlaceholderOnLeave
	case IsUnlocked(record, today):
		return true, PlaceholderEnterDescription
	default:
		return false, PlaceholderContactAdmin
	}
}

// IsUnlocked 记录在 today 是否处于可修改窗口：管理员已开启，或记录日期即今天
// 出勤下拉只受此窗口约束；描述输入还要求非请假。
func IsUnlocked(record model.DailySchedule, today time.Time) bool {
	return record.ModifyStatus == model.ModifyEnabled || SameDay(record.Date, today)
}
