package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"training-portal/backend/config"
)

type countingJob struct {
	calls int
	err   error
}

func (j *countingJob) Run(ctx context.Context) (int, error) {
	j.calls++
	return 3, j.err
}

func TestStartJobs_Disabled(t *testing.T) {
	c, err := StartJobs(&config.CronConfig{Enabled: false}, time.UTC, &countingJob{}, zap.NewNop())
	if err != nil {
		t.Fatalf("未启用时不应报错: %v", err)
	}
	if c != nil {
		t.Error("未启用时不应返回调度器")
	}
}

func TestStartJobs_InvalidSpec(t *testing.T) {
	_, err := StartJobs(&config.CronConfig{Enabled: true, ReminderSchedule: "not a spec"}, time.UTC, &countingJob{}, zap.NewNop())
	if err == nil {
		t.Error("非法 cron 表达式应报错")
	}
}

func TestStartJobs_Registered(t *testing.T) {
	c, err := StartJobs(&config.CronConfig{Enabled: true, ReminderSchedule: "@daily"}, time.UTC, &countingJob{}, zap.NewNop())
	if err != nil {
		t.Fatalf("StartJobs 失败: %v", err)
	}
	defer c.Stop()

	if n := len(c.Entries()); n != 1 {
		t.Errorf("期望注册 1 个任务，实际=%d", n)
	}
}

func TestWrap_RunsJob(t *testing.T) {
	job := &countingJob{}
	wrap("test", job, zap.NewNop())()
	if job.calls != 1 {
		t.Errorf("期望执行 1 次，实际=%d", job.calls)
	}

	failing := &countingJob{err: errors.New("boom")}
	wrap("test", failing, zap.NewNop())()
	if failing.calls != 1 {
		t.Errorf("失败任务也应执行 1 次，实际=%d", failing.calls)
	}
}
