package lifecycle

import (
	"errors"
	"testing"

	"training-portal/backend/internal/model"
)

func TestStatusChangeSet_StageAndEntries(t *testing.T) {
	set := NewStatusChangeSet()

	if err := set.Stage(model.Training{TrainingID: "T2", Status: model.TrainingPlanned}, model.TrainingCompleted); err != nil {
		t.Fatalf("Stage 应成功: %v", err)
	}
	if err := set.Stage(model.Training{TrainingID: "T1", Status: model.TrainingInProgress}, model.TrainingPlanned); err != nil {
		t.Fatalf("Stage 应成功: %v", err)
	}
	// 同一培训再次暂存，后写覆盖
	if err := set.Stage(model.Training{TrainingID: "T2", Status: model.TrainingPlanned}, model.TrainingInProgress); err != nil {
		t.Fatalf("Stage 应成功: %v", err)
	}

	entries := set.Entries()
	if len(entries) != 2 {
		t.Fatalf("期望 2 条，实际=%d", len(entries))
	}
	if entries[0].TrainingID != "T1" || entries[1].TrainingID != "T2" {
		t.Errorf("应按培训 ID 排序，实际=%v", entries)
	}
	if entries[1].Status != model.TrainingInProgress {
		t.Errorf("T2 期望 INPROGRESS，实际=%s", entries[1].Status)
	}
}

func TestStatusChangeSet_StageSameStatusUnstages(t *testing.T) {
	set := NewStatusChangeSet()
	tr := model.Training{TrainingID: "T1", Status: model.TrainingPlanned}

	_ = set.Stage(tr, model.TrainingCompleted)
	_ = set.Stage(tr, model.TrainingPlanned)

	if set.Len() != 0 {
		t.Errorf("改回原状态应撤销暂存，实际 Len=%d", set.Len())
	}
}

func TestStatusChangeSet_StageRejectsPending(t *testing.T) {
	set := NewStatusChangeSet()

	err := set.Stage(model.Training{TrainingID: "T1", Status: model.TrainingPending}, model.TrainingInProgress)
	if !errors.Is(err, ErrTrainingAwaitingApproval) {
		t.Errorf("期望 ErrTrainingAwaitingApproval，实际: %v", err)
	}
	if set.Len() != 0 {
		t.Error("非法变更不应被暂存")
	}
}

func TestStatusChangeSet_OverlayAndClear(t *testing.T) {
	set := NewStatusChangeSet()
	trainings := []model.Training{
		{TrainingID: "T1", Status: model.TrainingPlanned},
		{TrainingID: "T2", Status: model.TrainingPlanned},
	}
	_ = set.Stage(trainings[0], model.TrainingCompleted)

	view := set.Overlay(trainings)
	if view[0].Status != model.TrainingCompleted {
		t.Errorf("展示副本应叠加暂存状态，实际=%s", view[0].Status)
	}
	if trainings[0].Status != model.TrainingPlanned {
		t.Error("Overlay 不应修改已确认状态")
	}

	set.Clear()
	if set.Len() != 0 {
		t.Error("Clear 后应为空")
	}
	if _, ok := set.Get("T1"); ok {
		t.Error("Clear 后不应再查询到暂存")
	}
}

func TestStatusChangeSet_Restore(t *testing.T) {
	set := NewStatusChangeSet()
	set.Restore([]StatusChange{
		{TrainingID: "T2", Status: model.TrainingInProgress},
		{TrainingID: "T1", Status: model.TrainingCompleted},
	})

	entries := set.Entries()
	if len(entries) != 2 || entries[0].TrainingID != "T1" || entries[1].Status != model.TrainingInProgress {
		t.Errorf("恢复后条目不符: %+v", entries)
	}
}
