package lifecycle

import (
	"training-portal/backend/internal/model"
	apperrors "training-portal/backend/pkg/errors"
)

var (
	ErrDecisionInvalid    = apperrors.New(apperrors.KindRejected, "无效的审批结论")
	ErrDecisionNotAllowed = apperrors.New(apperrors.KindRejected, "当前状态不允许该审批操作")
	ErrRequestClosed      = apperrors.New(apperrors.KindRejected, "申请已结束，不能再次审批")
	ErrSuperAdminReadOnly = apperrors.New(apperrors.KindRejected, "超级管理员账号不可审批")
)

// Workflow 审批状态机：submit → initial，decide(approve|reject) 按转移表跳转
// 没有任何出边的状态为终态。
type Workflow[S ~string] struct {
	initial     S
	transitions map[S]map[model.Decision]S
}

// Submit 新提交的申请状态
func (w Workflow[S]) Submit() S { return w.initial }

// Decide 对 current 执行审批
func (w Workflow[S]) Decide(current S, decision model.Decision) (S, error) {
	if decision != model.DecisionApprove && decision != model.DecisionReject {
		return current, ErrDecisionInvalid
	}
	edges := w.transitions[current]
	if len(edges) == 0 {
		return current, ErrRequestClosed
	}
	next, ok := edges[decision]
	if !ok {
		return current, ErrDecisionNotAllowed
	}
	return next, nil
}

// Actions 当前状态下可执行的审批操作（固定顺序：approve 在前）
func (w Workflow[S]) Actions(current S) []model.Decision {
	edges := w.transitions[current]
	out := make([]model.Decision, 0, 2)
	for _, d := range []model.Decision{model.DecisionApprove, model.DecisionReject} {
		if _, ok := edges[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// IsTerminal 是否为终态
func (w Workflow[S]) IsTerminal(current S) bool {
	return len(w.transitions[current]) == 0
}

// EditRequestWorkflow 编辑申请审批
//
// 已批准的申请仍可被驳回，但驳回后为终态，不能再批准。
// 这种不对称沿用线上行为，未做对称化处理。
var EditRequestWorkflow = Workflow[model.EditRequestStatus]{
	initial: model.EditRequestPending,
	transitions: map[model.EditRequestStatus]map[model.Decision]model.EditRequestStatus{
		model.EditRequestPending: {
			model.DecisionApprove: model.EditRequestApproved,
			model.DecisionReject:  model.EditRequestRejected,
		},
		model.EditRequestApproved: {
			model.DecisionReject: model.EditRequestRejected,
		},
	},
}

// UserAccountWorkflow 用户账号审批
// 已激活账号只能被封禁；封禁账号可重新审核。
var UserAccountWorkflow = Workflow[model.UserStatus]{
	initial: model.UserPending,
	transitions: map[model.UserStatus]map[model.Decision]model.UserStatus{
		model.UserPending: {
			model.DecisionApprove: model.UserActive,
			model.DecisionReject:  model.UserBlocked,
		},
		model.UserBlocked: {
			model.DecisionApprove: model.UserActive,
			model.DecisionReject:  model.UserBlocked,
		},
		model.UserActive: {
			model.DecisionReject: model.UserBlocked,
		},
	},
}

// DecideUser 对用户账号执行审批；super_admin 账号只读
func DecideUser(target model.User, decision model.Decision) (model.UserStatus, error) {
	if target.Role == model.RoleSuperAdmin {
		return target.Status, ErrSuperAdminReadOnly
	}
	return UserAccountWorkflow.Decide(target.Status, decision)
}

// UserActions 用户账号可执行的审批操作；super_admin 账号不展示任何操作
func UserActions(target model.User) []model.Decision {
	if target.Role == model.RoleSuperAdmin {
		return []model.Decision{}
	}
	return UserAccountWorkflow.Actions(target.Status)
}
