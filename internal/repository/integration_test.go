//go:build integration

package repository_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	apperrors "training-portal/backend/pkg/errors"

	"training-portal/backend/internal/lifecycle"
	"training-portal/backend/internal/model"
	"training-portal/backend/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=training_portal_test sslmode=disable TimeZone=Asia/Kolkata"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	err = testDB.AutoMigrate(
		&model.User{},
		&model.Training{},
		&model.DailySchedule{},
		&model.EditRequest{},
		&model.Notification{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

// setupTestData 创建讲师与两个培训（一个 PENDING，一个 PLANNED），返回清理函数
func setupTestData(t *testing.T) (user *model.User, pending, planned *model.Training, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	user = &model.User{
		Email:        fmt.Sprintf("trainer-%d@example.com", time.Now().UnixNano()),
		Name:         "测试讲师",
		PasswordHash: "x",
		Role:         model.RoleTrainer,
		Status:       model.UserActive,
	}
	if err := testDB.WithContext(ctx).Create(user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	start := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	pending = &model.Training{
		Name: "Go 基础", StartDate: start, EndDate: start.AddDate(0, 0, 13),
		Status: model.TrainingPending, OwnerEmail: user.Email,
	}
	planned = &model.Training{
		Name: "Go 进阶", StartDate: start, EndDate: start.AddDate(0, 0, 13),
		Status: model.TrainingPlanned, OwnerEmail: user.Email,
	}
	for _, tr := range []*model.Training{pending, planned} {
		if err := testDB.WithContext(ctx).Create(tr).Error; err != nil {
			t.Fatalf("创建培训失败: %v", err)
		}
	}

	cleanup = func() {
		testDB.Where("owner_email = ?", user.Email).Delete(&model.DailySchedule{})
		testDB.Where("owner_email = ?", user.Email).Delete(&model.Training{})
		testDB.Where("email = ?", user.Email).Delete(&model.User{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: Transaction
// ═══════════════════════════════════════════════════════════

func TestTransaction_Rollback(t *testing.T) {
	user, _, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	if err != nil {
		t.Fatalf("BeginTx 失败: %v", err)
	}
	txRepo := repo.WithTx(tx)

	tr := &model.Training{
		Name: "事务内培训", StartDate: time.Now(), EndDate: time.Now(),
		Status: model.TrainingPending, OwnerEmail: user.Email,
	}
	if err := txRepo.Training.Create(ctx, tr); err != nil {
		tx.Rollback()
		t.Fatalf("事务内创建培训失败: %v", err)
	}

	tx.Rollback()

	_, err = repo.Training.GetByID(ctx, tr.TrainingID)
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("期望回滚后查不到培训，实际 err=%v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Training status
// ═══════════════════════════════════════════════════════════

func TestUpdateStatuses_AllOrNothing(t *testing.T) {
	_, pending, planned, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 第二条指向 PENDING 培训，整批应回滚
	changes := []lifecycle.StatusChange{
		{TrainingID: planned.TrainingID, Status: model.TrainingCompleted},
		{TrainingID: pending.TrainingID, Status: model.TrainingInProgress},
	}
	err := repo.Training.UpdateStatuses(ctx, changes, "manager@example.com")
	if !errors.Is(err, apperrors.ErrRejected) {
		t.Fatalf("期望 Rejected，实际=%v", err)
	}

	got, _ := repo.Training.GetByID(ctx, planned.TrainingID)
	if got.Status != model.TrainingPlanned {
		t.Errorf("回滚后状态应保持 PLANNED，实际=%s", got.Status)
	}
}

func TestApprove_OnlyFromPending(t *testing.T) {
	_, pending, planned, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Training.Approve(ctx, pending.TrainingID, "manager@example.com"); err != nil {
		t.Fatalf("审批失败: %v", err)
	}
	got, _ := repo.Training.GetByID(ctx, pending.TrainingID)
	if got.Status != model.TrainingPlanned {
		t.Errorf("期望 PLANNED，实际=%s", got.Status)
	}

	if err := repo.Training.Approve(ctx, planned.TrainingID, "manager@example.com"); !errors.Is(err, repository.ErrStaleState) {
		t.Errorf("非 PENDING 审批期望 ErrStaleState，实际=%v", err)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Daily schedule batch
// ═══════════════════════════════════════════════════════════

func TestDailySchedule_BatchUpdateRollback(t *testing.T) {
	user, _, planned, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	records := []model.DailySchedule{
		{WeekScheduleID: "2026-W41", TrainingID: planned.TrainingID, OwnerEmail: user.Email,
			Date: planned.StartDate, Day: "Monday", Attendance: model.AttendanceNotUpdated, ModifyStatus: model.ModifyDisabled},
	}
	if err := repo.DailySchedule.BulkCreate(ctx, records); err != nil {
		t.Fatalf("BulkCreate 失败: %v", err)
	}

	updates := []model.DailyScheduleUpdate{
		{Sno: records[0].Sno, Description: "讲解接口", Attendance: model.AttendancePresent},
		{Sno: -1, Description: "不存在", Attendance: model.AttendancePresent},
	}
	err := repo.DailySchedule.BatchUpdate(ctx, updates, user.Email)
	if !errors.Is(err, apperrors.ErrRejected) {
		t.Fatalf("期望 Rejected，实际=%v", err)
	}

	got, err := repo.DailySchedule.GetBySno(ctx, records[0].Sno)
	if err != nil {
		t.Fatalf("GetBySno 失败: %v", err)
	}
	if got.Description != "" || got.Attendance != model.AttendanceNotUpdated {
		t.Errorf("回滚后记录不应改变，实际=%+v", got)
	}
}

func TestDailySchedule_ListUnreported(t *testing.T) {
	user, _, planned, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	d := planned.StartDate
	records := []model.DailySchedule{
		{WeekScheduleID: "W", TrainingID: planned.TrainingID, OwnerEmail: user.Email, Date: d, Day: "Monday",
			Attendance: model.AttendanceNotUpdated, ModifyStatus: model.ModifyDisabled},
		{WeekScheduleID: "W", TrainingID: planned.TrainingID, OwnerEmail: user.Email, Date: d.AddDate(0, 0, 1), Day: "Tuesday",
			Attendance: model.AttendancePresent, Description: "x", ModifyStatus: model.ModifyDisabled},
	}
	if err := repo.DailySchedule.BulkCreate(ctx, records); err != nil {
		t.Fatalf("BulkCreate 失败: %v", err)
	}

	got, err := repo.DailySchedule.ListUnreported(ctx, d.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("ListUnreported 失败: %v", err)
	}
	found := 0
	for _, r := range got {
		if r.OwnerEmail == user.Email {
			found++
		}
	}
	if found != 1 {
		t.Errorf("期望 1 条未填报记录，实际=%d", found)
	}
}
