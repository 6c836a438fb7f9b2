package lifecycle

import (
	"sort"

	"training-portal/backend/internal/model"
)

// StatusChange 一条待提交的培训状态变更
type StatusChange struct {
	TrainingID string               `json:"training_id"`
	Status     model.TrainingStatus `json:"status"`
}

// StatusChangeSet 本地暂存的培训状态变更（按培训 ID 去重，后写覆盖先写）
//
// 与服务端确认的状态分离保存：只有在批量提交被确认后才调用 Clear，
// 提交失败时保持原样，调用方可直接重试。
type StatusChangeSet struct {
	changes map[string]model.TrainingStatus
}

// NewStatusChangeSet 创建空变更集
func NewStatusChangeSet() *StatusChangeSet {
	return &StatusChangeSet{changes: make(map[string]model.TrainingStatus)}
}

// Stage 暂存一条变更；按当前已确认状态校验合法性
// 目标状态与当前状态相同时视为撤销该条暂存。
func (s *StatusChangeSet) Stage(training model.Training, target model.TrainingStatus) error {
	next, err := Assign(training.Status, target)
	if err != nil {
		return err
	}
	if next == training.Status {
		delete(s.changes, training.TrainingID)
		return nil
	}
	s.changes[training.TrainingID] = next
	return nil
}

// Restore 从持久化的暂存条目恢复（不重新校验，提交时会按最新状态再校验）
func (s *StatusChangeSet) Restore(changes []StatusChange) {
	for _, ch := range changes {
		s.changes[ch.TrainingID] = ch.Status
	}
}

// Unstage 撤销某培训的暂存变更
func (s *StatusChangeSet) Unstage(trainingID string) {
	delete(s.changes, trainingID)
}

// Get 查询某培训的暂存状态
func (s *StatusChangeSet) Get(trainingID string) (model.TrainingStatus, bool) {
	st, ok := s.changes[trainingID]
	return st, ok
}

// Len 暂存条数
func (s *StatusChangeSet) Len() int { return len(s.changes) }

// Entries 按培训 ID 排序输出，作为一次批量提交的内容
func (s *StatusChangeSet) Entries() []StatusChange {
	out := make([]StatusChange, 0, len(s.changes))
	for id, st := range s.changes {
		out = append(out, StatusChange{TrainingID: id, Status: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TrainingID < out[j].TrainingID })
	return out
}

// Clear 清空（仅在提交确认后调用）
func (s *StatusChangeSet) Clear() {
	s.changes = make(map[string]model.TrainingStatus)
}

// Overlay 返回叠加暂存状态后的展示副本，不修改入参
func (s *StatusChangeSet) Overlay(trainings []model.Training) []model.Training {
	out := make([]model.Training, len(trainings))
	copy(out, trainings)
	for i := range out {
		if st, ok := s.changes[out[i].TrainingID]; ok {
			out[i].Status = st
		}
	}
	return out
}
