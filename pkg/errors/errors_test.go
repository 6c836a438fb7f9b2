package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestAppError_IsByKind(t *testing.T) {
	errTrainingMissing := New(KindNotFound, "培训不存在")
	wrapped := fmt.Errorf("查询失败: %w", errTrainingMissing)

	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("NotFound 类错误应匹配 ErrNotFound")
	}
	if errors.Is(wrapped, ErrRejected) {
		t.Error("NotFound 类错误不应匹配 ErrRejected")
	}
	if !errors.Is(wrapped, errTrainingMissing) {
		t.Error("应匹配原始哨兵")
	}

	other := New(KindNotFound, "申请不存在")
	if errors.Is(wrapped, other) {
		t.Error("同类但不同的具体错误不应互相匹配")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", errors.New("connection refused"), KindTransport},
		{"rejected", New(KindRejected, "x"), KindRejected},
		{"wrapped unauthorized", fmt.Errorf("ctx: %w", New(KindUnauthorized, "x")), KindUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("期望 %v，实际 %v", tt.want, got)
			}
		})
	}
}

func TestMessageOf(t *testing.T) {
	if got := MessageOf(New(KindRejected, "培训状态不可修改"), "操作失败"); got != "培训状态不可修改" {
		t.Errorf("应使用业务消息，实际=%s", got)
	}
	if got := MessageOf(errors.New("dial tcp: timeout"), "操作失败"); got != "操作失败" {
		t.Errorf("底层错误应回退，实际=%s", got)
	}
	if got := MessageOf(Wrap(KindTransport, "db down", errors.New("x")), "操作失败"); got != "操作失败" {
		t.Errorf("Transport 错误应回退，实际=%s", got)
	}
}

func TestKind_String(t *testing.T) {
	if KindNotFound.String() != "not_found" {
		t.Errorf("实际=%s", KindNotFound.String())
	}
	if KindUnauthorized.String() != "unauthorized" {
		t.Errorf("实际=%s", KindUnauthorized.String())
	}
	if KindRejected.String() != "failed" || KindTransport.String() != "failed" {
		t.Error("Rejected/Transport 应渲染为 failed")
	}
}
