package lifecycle

import (
	"training-portal/backend/internal/model"
	apperrors "training-portal/backend/pkg/errors"
)

var (
	ErrTrainingStatusInvalid    = apperrors.New(apperrors.KindRejected, "无效的培训状态")
	ErrTrainingNotPending       = apperrors.New(apperrors.KindRejected, "仅待审批的培训可以审批")
	ErrTrainingAwaitingApproval = apperrors.New(apperrors.KindRejected, "培训尚未审批，不能直接修改状态")
	ErrTrainingBackToPending    = apperrors.New(apperrors.KindRejected, "培训状态不能回退到待审批")
)

// IsKnownStatus 是否为合法的培训状态
func IsKnownStatus(status model.TrainingStatus) bool {
	_, ok := model.ParseTrainingStatus(string(status))
	return ok
}

// Approve 审批：只允许 PENDING → PLANNED，不接受目标状态参数
func Approve(current model.TrainingStatus) (model.TrainingStatus, error) {
	if current != model.TrainingPending {
		return current, ErrTrainingNotPending
	}
	return model.TrainingPlanned, nil
}

// Assign 审批后的直接状态设置
//
// PLANNED / INPROGRESS / COMPLETED 之间可任意前进或回退；
// 任何情况下都不能回到 PENDING，PENDING 也只能通过 Approve 离开。
func Assign(current, target model.TrainingStatus) (model.TrainingStatus, error) {
	if !IsKnownStatus(target) || !IsKnownStatus(current) {
		return current, ErrTrainingStatusInvalid
	}
	if target == model.TrainingPending {
		return current, ErrTrainingBackToPending
	}
	if current == model.TrainingPending {
		return current, ErrTrainingAwaitingApproval
	}
	return target, nil
}

// AllowedTargets 当前状态下可直接选择的目标状态
// PENDING 返回空：只能执行审批操作。
func AllowedTargets(current model.TrainingStatus) []model.TrainingStatus {
	switch current {
	case model.TrainingPlanned, model.TrainingInProgress, model.TrainingCompleted:
		return []model.TrainingStatus{model.TrainingPlanned, model.TrainingInProgress, model.TrainingCompleted}
	default:
		return nil
	}
}
