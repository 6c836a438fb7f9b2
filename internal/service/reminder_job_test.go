package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"training-portal/backend/internal/model"
	apperrors "training-portal/backend/pkg/errors"
)

func TestReminderJob_Run(t *testing.T) {
	repo, mocks := newMockRepository()
	job := NewReminderJob(repo, time.UTC, zap.NewNop())
	job.clock.now = fixedNow

	seedTraining(mocks.training, "T1", model.TrainingInProgress, trainerCaller.Email)
	seedTraining(mocks.training, "T2", model.TrainingInProgress, otherTrainer.Email)
	seedSchedules(t, mocks, "T1")
	seedSchedules(t, mocks, "T2")
	// otherTrainer 已全部填报
	for _, r := range mocks.schedule.records {
		if r.OwnerEmail == otherTrainer.Email {
			r.Attendance = model.AttendancePresent
		}
	}

	n, err := job.Run(context.Background())
	if err != nil {
		t.Fatalf("Run 应成功: %v", err)
	}
	if n != 1 {
		t.Fatalf("期望 1 条通知，实际=%d", n)
	}

	got := mocks.notification.items[0]
	if got.RecipientEmail != trainerCaller.Email || got.Type != NotificationTypeAttendanceReminder {
		t.Errorf("通知对象或类型不符: %s/%s", got.RecipientEmail, got.Type)
	}
	// 10-05 ~ 10-15 共 11 天未填报，今天不计入
	if !strings.Contains(got.Content, "11 条") || !strings.Contains(got.Content, "2026-10-05") {
		t.Errorf("通知内容不符: %s", got.Content)
	}
}

func TestReminderJob_Run_NothingPending(t *testing.T) {
	repo, mocks := newMockRepository()
	job := NewReminderJob(repo, time.UTC, zap.NewNop())

	n, err := job.Run(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("期望 0 条且无错误，实际=%d %v", n, err)
	}
	if len(mocks.notification.items) != 0 {
		t.Error("不应生成通知")
	}
}

func TestReminderJob_Run_StorageFailure(t *testing.T) {
	repo, mocks := newMockRepository()
	job := NewReminderJob(repo, time.UTC, zap.NewNop())
	mocks.schedule.err = apperrors.Wrap(apperrors.KindTransport, "查询失败", errStorage)

	if _, err := job.Run(context.Background()); !errors.Is(err, errStorage) {
		t.Fatalf("期望透传存储错误，实际: %v", err)
	}
}

func TestNotificationService_List(t *testing.T) {
	repo, mocks := newMockRepository()
	svc := NewNotificationService(repo, zap.NewNop())
	ctx := context.Background()

	if _, err := svc.List(ctx, trainerCaller, 0); !errors.Is(err, ErrNoNotifications) {
		t.Fatalf("期望 ErrNoNotifications，实际: %v", err)
	}

	_ = mocks.notification.BulkCreate(ctx, []model.Notification{
		{RecipientEmail: trainerCaller.Email, Type: NotificationTypeAttendanceReminder, Title: "提醒", Content: "x"},
		{RecipientEmail: otherTrainer.Email, Type: NotificationTypeAttendanceReminder, Title: "提醒", Content: "y"},
	})
	list, err := svc.List(ctx, trainerCaller, 0)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 || list[0].Content != "x" {
		t.Errorf("只应返回本人通知，实际=%v", list)
	}
}
