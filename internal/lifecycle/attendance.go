package lifecycle

import (
	"strings"

	"training-portal/backend/internal/model"
	apperrors "training-portal/backend/pkg/errors"
)

var (
	ErrAttendanceInvalid       = apperrors.New(apperrors.KindRejected, "无效的出勤状态")
	ErrDescriptionOnLeave      = apperrors.New(apperrors.KindRejected, "请假当天不能填写描述")
	ErrAttendanceResetWithNote = apperrors.New(apperrors.KindRejected, "已填写描述的记录不能重置为未更新")
)

// ApplyAttendance 变更出勤状态
// 设为 LEAVE 时无条件清空描述。
func ApplyAttendance(record model.DailySchedule, attendance model.Attendance) (model.DailySchedule, error) {
	switch attendance {
	case model.AttendanceLeave:
		record.Attendance = attendance
		record.Description = ""
	case model.AttendancePresent:
		record.Attendance = attendance
	case model.AttendanceNotUpdated:
		if hasText(record.Description) {
			return record, ErrAttendanceResetWithNote
		}
		record.Attendance = attendance
	default:
		return record, ErrAttendanceInvalid
	}
	return record, nil
}

// ApplyDescription 写入描述
// 未更新出勤的记录写入非空描述时，出勤同时置为 PRESENT。
func ApplyDescription(record model.DailySchedule, description string) (model.DailySchedule, error) {
	if record.Attendance == model.AttendanceLeave {
		if hasText(description) {
			return record, ErrDescriptionOnLeave
		}
		record.Description = ""
		return record, nil
	}
	record.Description = description
	if hasText(description) && record.Attendance == model.AttendanceNotUpdated {
		record.Attendance = model.AttendancePresent
	}
	return record, nil
}

// Normalize 提交前统一修正：请假无描述、有描述必有出勤
func Normalize(record model.DailySchedule) model.DailySchedule {
	switch {
	case record.Attendance == model.AttendanceLeave:
		record.Description = ""
	case record.Attendance == model.AttendanceNotUpdated && hasText(record.Description):
		record.Attendance = model.AttendancePresent
	case record.Attendance == "":
		record.Attendance = model.AttendanceNotUpdated
		if hasText(record.Description) {
			record.Attendance = model.AttendancePresent
		}
	}
	return record
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}
