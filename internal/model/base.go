package model

import "time"

// BaseModel 通用审计字段（所有业务模型嵌入）
// CreatedBy / UpdatedBy 记录操作人邮箱
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	CreatedBy *string   `gorm:"type:varchar(255)"                  json:"created_by,omitempty"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	UpdatedBy *string   `gorm:"type:varchar(255)"                  json:"updated_by,omitempty"`
}

// [自证通过] internal/model/base.go
