package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"training-portal/backend/internal/dto"
	"training-portal/backend/internal/lifecycle"
	"training-portal/backend/internal/model"
	"training-portal/backend/internal/repository"
	apperrors "training-portal/backend/pkg/errors"
)

// ── 每日排课模块业务错误 ──

var (
	ErrScheduleNotFound         = apperrors.New(apperrors.KindNotFound, "每日记录不存在")
	ErrNoSchedules              = apperrors.New(apperrors.KindNotFound, "暂无每日记录")
	ErrScheduleAlreadyGenerated = apperrors.New(apperrors.KindRejected, "该培训的每日记录已生成")
	ErrScheduleNotInTraining    = apperrors.New(apperrors.KindRejected, "记录不属于该培训")
	ErrScheduleLocked           = apperrors.New(apperrors.KindRejected, "记录已锁定，请联系管理员开启编辑")
	ErrTrainingNotApproved      = apperrors.New(apperrors.KindRejected, "培训尚未审批，不能生成每日记录")
)

// DailyScheduleService 每日排课业务接口
type DailyScheduleService interface {
	// Generate 按培训起止日期逐日生成记录，返回生成条数
	Generate(ctx context.Context, caller Caller, trainingID string) (int, error)
	// Records 培训的全部每日记录（按日期升序）
	Records(ctx context.Context, caller Caller, trainingID string) ([]model.DailySchedule, error)
	// View 按周分组后的单周视图；week 为空时定位到包含今天的周
	View(ctx context.Context, caller Caller, trainingID string, week *int) (*dto.WeekView, error)
	// SubmitBatch 整批校验后一次写入；任一条被拒绝则整批不写
	SubmitBatch(ctx context.Context, caller Caller, trainingID string, edits []dto.DailyScheduleEdit, week *int) (*dto.WeekView, error)
	ListMine(ctx context.Context, caller Caller, start, end string) ([]dto.ScheduleRow, error)
	// ListAll attendance 为空或 ALL 时不过滤
	ListAll(ctx context.Context, caller Caller, start, end, attendance string) ([]dto.ScheduleRow, error)
	SetModifyStatus(ctx context.Context, caller Caller, sno int64, status model.ModifyStatus) (*dto.ScheduleRow, error)
}

type dailyScheduleService struct {
	repo   *repository.Repository
	clock  clock
	logger *zap.Logger
}

// NewDailyScheduleService 创建 DailyScheduleService 实例
// loc 为判定“今天”的业务时区
func NewDailyScheduleService(repo *repository.Repository, loc *time.Location, logger *zap.Logger) DailyScheduleService {
	return &dailyScheduleService{repo: repo, clock: newClock(loc), logger: logger}
}

// ────────────────────── Generate ──────────────────────

func (s *dailyScheduleService) Generate(ctx context.Context, caller Caller, trainingID string) (int, error) {
	if err := authorize(caller, model.RoleTrainer, model.RoleManager); err != nil {
		return 0, err
	}

	training, err := s.ownedTraining(ctx, caller, trainingID)
	if err != nil {
		return 0, err
	}
	if training.Status == model.TrainingPending {
		return 0, ErrTrainingNotApproved
	}

	existing, err := s.repo.DailySchedule.ListByTraining(ctx, trainingID)
	if err != nil {
		s.logger.Error("查询每日记录失败", zap.String("training_id", trainingID), zap.Error(err))
		return 0, err
	}
	if len(existing) > 0 {
		return 0, ErrScheduleAlreadyGenerated
	}

	records := buildDailyRecords(training, caller.Email)
	if err := s.repo.DailySchedule.BulkCreate(ctx, records); err != nil {
		s.logger.Error("生成每日记录失败", zap.String("training_id", trainingID), zap.Error(err))
		return 0, err
	}

	s.logger.Info("每日记录已生成",
		zap.String("training_id", trainingID),
		zap.Int("count", len(records)),
	)
	return len(records), nil
}

// buildDailyRecords 起止日期内每天一条，同一 ISO 周共享 weekScheduleId
func buildDailyRecords(training *model.Training, createdBy string) []model.DailySchedule {
	start := calendarDay(training.StartDate)
	end := calendarDay(training.EndDate)

	var records []model.DailySchedule
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		r := model.DailySchedule{
			WeekScheduleID: weekScheduleID(training.TrainingID, d),
			TrainingID:     training.TrainingID,
			OwnerEmail:     training.OwnerEmail,
			Date:           d,
			Day:            d.Weekday().String(),
			Attendance:     model.AttendanceNotUpdated,
			ModifyStatus:   model.ModifyDisabled,
		}
		r.CreatedBy = &createdBy
		records = append(records, r)
	}
	return records
}

func weekScheduleID(trainingID string, d time.Time) string {
	year, week := d.ISOWeek()
	prefix := trainingID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return fmt.Sprintf("%s-%d-W%02d", prefix, year, week)
}

// ────────────────────── Records / View ──────────────────────

func (s *dailyScheduleService) Records(ctx context.Context, caller Caller, trainingID string) ([]model.DailySchedule, error) {
	if err := authorize(caller); err != nil {
		return nil, err
	}
	if _, err := s.ownedTraining(ctx, caller, trainingID); err != nil {
		return nil, err
	}

	records, err := s.repo.DailySchedule.ListByTraining(ctx, trainingID)
	if err != nil {
		s.logger.Error("查询每日记录失败", zap.String("training_id", trainingID), zap.Error(err))
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoSchedules
	}
	return records, nil
}

func (s *dailyScheduleService) View(ctx context.Context, caller Caller, trainingID string, week *int) (*dto.WeekView, error) {
	records, err := s.Records(ctx, caller, trainingID)
	if err != nil {
		return nil, err
	}
	return buildWeekView(records, s.clock.today(), week), nil
}

// buildWeekView 分组、定位并计算每行的可编辑性
func buildWeekView(records []model.DailySchedule, today time.Time, week *int) *dto.WeekView {
	nav := lifecycle.NewNavigator(lifecycle.GroupByWeek(records), today)
	if week != nil {
		nav.JumpTo(*week)
	}

	view := &dto.WeekView{
		Index:       nav.Index(),
		Total:       nav.Len(),
		HasPrevious: nav.HasPrevious(),
		HasNext:     nav.HasNext(),
		Rows:        []dto.ScheduleRow{},
	}
	if group, ok := nav.Current(); ok {
		view.WeekScheduleID = group.WeekScheduleID
		for i := range group.Schedules {
			view.Rows = append(view.Rows, toScheduleRow(&group.Schedules[i], today))
		}
	}
	return view
}

// ────────────────────── SubmitBatch ──────────────────────

func (s *dailyScheduleService) SubmitBatch(ctx context.Context, caller Caller, trainingID string, edits []dto.DailyScheduleEdit, week *int) (*dto.WeekView, error) {
	if err := authorize(caller, model.RoleTrainer); err != nil {
		return nil, err
	}

	records, err := s.Records(ctx, caller, trainingID)
	if err != nil {
		return nil, err
	}
	stored := make(map[int64]model.DailySchedule, len(records))
	for _, r := range records {
		stored[r.Sno] = r
	}

	today := s.clock.today()
	updates, err := planUpdates(stored, edits, today)
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.repo.DailySchedule.BatchUpdate(ctx, updates, caller.Email); err != nil {
			s.logger.Error("批量提交每日记录失败",
				zap.String("training_id", trainingID),
				zap.Int("count", len(updates)),
				zap.Error(err),
			)
			return nil, err
		}
		s.logger.Info("每日记录已提交",
			zap.String("training_id", trainingID),
			zap.Int("count", len(updates)),
		)
	}

	fresh, err := s.Records(ctx, caller, trainingID)
	if err != nil {
		return nil, err
	}
	return buildWeekView(fresh, today, week), nil
}

// planUpdates 对每条编辑执行出勤/描述转换，只保留有变化的记录
// 有变化但不在可修改窗口内的记录使整批失败。
func planUpdates(stored map[int64]model.DailySchedule, edits []dto.DailyScheduleEdit, today time.Time) ([]model.DailyScheduleUpdate, error) {
	latest := make(map[int64]dto.DailyScheduleEdit, len(edits))
	order := make([]int64, 0, len(edits))
	for _, e := range edits {
		if _, seen := latest[e.Sno]; !seen {
			order = append(order, e.Sno)
		}
		latest[e.Sno] = e
	}

	updates := make([]model.DailyScheduleUpdate, 0, len(order))
	for _, sno := range order {
		cur, ok := stored[sno]
		if !ok {
			return nil, ErrScheduleNotInTraining
		}
		next, err := applyEdit(cur, latest[sno])
		if err != nil {
			return nil, err
		}
		if next.Attendance == cur.Attendance && next.Description == cur.Description {
			continue
		}
		if !lifecycle.IsUnlocked(cur, today) {
			return nil, ErrScheduleLocked
		}
		updates = append(updates, model.DailyScheduleUpdate{
			Sno:         sno,
			Description: next.Description,
			Attendance:  next.Attendance,
		})
	}
	return updates, nil
}

// applyEdit 描述以本次提交为准：先落出勤，再写描述，最后统一修正
// 请假时忽略提交的描述（清空），不拒绝整批。
func applyEdit(cur model.DailySchedule, edit dto.DailyScheduleEdit) (model.DailySchedule, error) {
	attendance, ok := model.ParseAttendance(edit.Attendance)
	if !ok {
		return cur, lifecycle.ErrAttendanceInvalid
	}

	next := cur
	next.Description = ""
	next, err := lifecycle.ApplyAttendance(next, attendance)
	if err != nil {
		return cur, err
	}
	if attendance == model.AttendanceLeave {
		return lifecycle.Normalize(next), nil
	}
	next, err = lifecycle.ApplyDescription(next, edit.Description)
	if err != nil {
		return cur, err
	}
	return lifecycle.Normalize(next), nil
}

// ────────────────────── 区间查询 ──────────────────────

func (s *dailyScheduleService) ListMine(ctx context.Context, caller Caller, start, end string) ([]dto.ScheduleRow, error) {
	if err := authorize(caller); err != nil {
		return nil, err
	}
	from, to, err := parseDateRange(start, end)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.DailySchedule.ListByOwnerAndRange(ctx, caller.Email, from, to)
	if err != nil {
		s.logger.Error("查询讲师每日记录失败", zap.String("caller", caller.Email), zap.Error(err))
		return nil, err
	}
	return s.toRows(records)
}

func (s *dailyScheduleService) ListAll(ctx context.Context, caller Caller, start, end, attendance string) ([]dto.ScheduleRow, error) {
	if err := authorize(caller, model.RoleManager, model.RoleSuperAdmin); err != nil {
		return nil, err
	}
	from, to, err := parseDateRange(start, end)
	if err != nil {
		return nil, err
	}

	var filter *model.Attendance
	if attendance != "" && attendance != "ALL" {
		a, ok := model.ParseAttendance(attendance)
		if !ok {
			return nil, lifecycle.ErrAttendanceInvalid
		}
		filter = &a
	}

	records, err := s.repo.DailySchedule.ListByRange(ctx, from, to, filter)
	if err != nil {
		s.logger.Error("查询每日记录失败", zap.Error(err))
		return nil, err
	}
	return s.toRows(records)
}

func (s *dailyScheduleService) toRows(records []model.DailySchedule) ([]dto.ScheduleRow, error) {
	if len(records) == 0 {
		return nil, ErrNoSchedules
	}
	today := s.clock.today()
	rows := make([]dto.ScheduleRow, 0, len(records))
	for i := range records {
		rows = append(rows, toScheduleRow(&records[i], today))
	}
	return rows, nil
}

// ────────────────────── SetModifyStatus ──────────────────────

func (s *dailyScheduleService) SetModifyStatus(ctx context.Context, caller Caller, sno int64, status model.ModifyStatus) (*dto.ScheduleRow, error) {
	if err := authorize(caller, model.RoleManager); err != nil {
		return nil, err
	}

	record, err := s.repo.DailySchedule.GetBySno(ctx, sno)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("查询每日记录失败", zap.Int64("sno", sno), zap.Error(err))
		return nil, err
	}

	if err := s.repo.DailySchedule.SetModifyStatus(ctx, sno, status, caller.Email); err != nil {
		if errors.Is(err, repository.ErrStaleState) {
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("更新编辑开关失败", zap.Int64("sno", sno), zap.Error(err))
		return nil, err
	}

	record.ModifyStatus = status
	row := toScheduleRow(record, s.clock.today())
	return &row, nil
}

// ────────────────────── 内部方法 ──────────────────────

// ownedTraining 讲师只能访问自己的培训；管理员不受限
func (s *dailyScheduleService) ownedTraining(ctx context.Context, caller Caller, trainingID string) (*model.Training, error) {
	training, err := s.repo.Training.GetByID(ctx, trainingID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, ErrTrainingNotFound
		}
		s.logger.Error("查询培训失败", zap.String("id", trainingID), zap.Error(err))
		return nil, err
	}
	if caller.Role == model.RoleTrainer && training.OwnerEmail != caller.Email {
		return nil, ErrForbidden
	}
	return training, nil
}

func toScheduleRow(r *model.DailySchedule, today time.Time) dto.ScheduleRow {
	editable, placeholder := lifecycle.EditPermission(*r, today)
	return dto.ScheduleRow{
		Sno:            r.Sno,
		WeekScheduleID: r.WeekScheduleID,
		TrainingID:     r.TrainingID,
		OwnerEmail:     r.OwnerEmail,
		Date:           formatDate(r.Date),
		Day:            r.Day,
		Attendance:     string(r.Attendance),
		Description:    r.Description,
		ModifyStatus:   string(r.ModifyStatus),
		Editable:       editable,
		Placeholder:    placeholder,
	}
}

// [自证通过] internal/service/daily_schedule_service.go
