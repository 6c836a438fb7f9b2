package lifecycle

import (
	"errors"
	"testing"

	"training-portal/backend/internal/model"
)

func TestEditRequestWorkflow_ApproveThenReject(t *testing.T) {
	w := EditRequestWorkflow

	st := w.Submit()
	if st != model.EditRequestPending {
		t.Fatalf("提交后期望 pending，实际=%s", st)
	}

	st, err := w.Decide(st, model.DecisionApprove)
	if err != nil || st != model.EditRequestApproved {
		t.Fatalf("pending → approved 应成功: %s, %v", st, err)
	}

	st, err = w.Decide(st, model.DecisionReject)
	if err != nil || st != model.EditRequestRejected {
		t.Fatalf("approved → rejected 应成功: %s, %v", st, err)
	}
}

func TestEditRequestWorkflow_RejectedIsTerminal(t *testing.T) {
	w := EditRequestWorkflow

	for _, d := range []model.Decision{model.DecisionApprove, model.DecisionReject} {
		st, err := w.Decide(model.EditRequestRejected, d)
		if !errors.Is(err, ErrRequestClosed) {
			t.Errorf("rejected + %s 期望 ErrRequestClosed，实际: %v", d, err)
		}
		if st != model.EditRequestRejected {
			t.Errorf("失败时应保持 rejected，实际=%s", st)
		}
	}
	if !w.IsTerminal(model.EditRequestRejected) {
		t.Error("rejected 应为终态")
	}
	if got := w.Actions(model.EditRequestRejected); len(got) != 0 {
		t.Errorf("rejected 不应有可执行操作，实际=%v", got)
	}
}

func TestEditRequestWorkflow_ApprovedCannotReapprove(t *testing.T) {
	_, err := EditRequestWorkflow.Decide(model.EditRequestApproved, model.DecisionApprove)
	if !errors.Is(err, ErrDecisionNotAllowed) {
		t.Errorf("期望 ErrDecisionNotAllowed，实际: %v", err)
	}
	got := EditRequestWorkflow.Actions(model.EditRequestApproved)
	if len(got) != 1 || got[0] != model.DecisionReject {
		t.Errorf("approved 仅可驳回，实际=%v", got)
	}
}

func TestWorkflow_InvalidDecision(t *testing.T) {
	_, err := EditRequestWorkflow.Decide(model.EditRequestPending, model.Decision("maybe"))
	if !errors.Is(err, ErrDecisionInvalid) {
		t.Errorf("期望 ErrDecisionInvalid，实际: %v", err)
	}
}

func TestDecideUser(t *testing.T) {
	tests := []struct {
		name     string
		user     model.User
		decision model.Decision
		want     model.UserStatus
		wantErr  error
	}{
		{"待审批通过", model.User{Role: model.RoleTrainer, Status: model.UserPending}, model.DecisionApprove, model.UserActive, nil},
		{"待审批驳回", model.User{Role: model.RoleTrainer, Status: model.UserPending}, model.DecisionReject, model.UserBlocked, nil},
		{"封禁后复审通过", model.User{Role: model.RoleManager, Status: model.UserBlocked}, model.DecisionApprove, model.UserActive, nil},
		{"封禁已激活账号", model.User{Role: model.RoleTrainer, Status: model.UserActive}, model.DecisionReject, model.UserBlocked, nil},
		{"重复激活", model.User{Role: model.RoleTrainer, Status: model.UserActive}, model.DecisionApprove, model.UserActive, ErrDecisionNotAllowed},
		{"超级管理员只读", model.User{Role: model.RoleSuperAdmin, Status: model.UserPending}, model.DecisionApprove, model.UserPending, ErrSuperAdminReadOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecideUser(tt.user, tt.decision)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("期望 %v，实际: %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("应成功: %v", err)
			}
			if got != tt.want {
				t.Errorf("期望 %s，实际 %s", tt.want, got)
			}
		})
	}
}

func TestUserActions_SuperAdminHidden(t *testing.T) {
	if got := UserActions(model.User{Role: model.RoleSuperAdmin, Status: model.UserPending}); len(got) != 0 {
		t.Errorf("super_admin 不应展示操作，实际=%v", got)
	}
	if got := UserActions(model.User{Role: model.RoleTrainer, Status: model.UserPending}); len(got) != 2 {
		t.Errorf("pending 期望 2 个操作，实际=%v", got)
	}
}
