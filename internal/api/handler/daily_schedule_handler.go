package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"training-portal/backend/internal/dto"
	"training-portal/backend/internal/lifecycle"
	"training-portal/backend/internal/model"
	"training-portal/backend/internal/service"
	"training-portal/backend/pkg/response"
)

// DailyScheduleHandler 每日记录模块 HTTP 处理器
type DailyScheduleHandler struct {
	scheduleSvc service.DailyScheduleService
	calendarSvc service.CalendarService
}

// NewDailyScheduleHandler 创建 DailyScheduleHandler
func NewDailyScheduleHandler(scheduleSvc service.DailyScheduleService, calendarSvc service.CalendarService) *DailyScheduleHandler {
	return &DailyScheduleHandler{scheduleSvc: scheduleSvc, calendarSvc: calendarSvc}
}

// Generate 为已审批培训逐日生成记录
// POST /api/v1/trainings/:id/daily-schedules/generate
func (h *DailyScheduleHandler) Generate(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	n, err := h.scheduleSvc.Generate(c.Request.Context(), caller, c.Param("id"))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, gin.H{"generated": n})
}

// View 单周视图
// GET /api/v1/trainings/:id/daily-schedules?week=1
func (h *DailyScheduleHandler) View(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var q dto.WeekQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	view, err := h.scheduleSvc.View(c.Request.Context(), caller, c.Param("id"), q.Week)
	if errors.Is(err, service.ErrNoSchedules) {
		response.EmptyList(c, "该培训暂无每日记录，请先生成")
		return
	}
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, view)
}

// Submit 整批提交本周编辑，返回刷新后的周视图
// PUT /api/v1/trainings/:id/daily-schedules
func (h *DailyScheduleHandler) Submit(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.SubmitDailySchedulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	view, err := h.scheduleSvc.SubmitBatch(c.Request.Context(), caller, c.Param("id"), req.Records, req.Week)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OKMessage(c, "每日记录已保存", view)
}

// ListMine 讲师本人区间内的记录
// GET /api/v1/daily-schedules/me?start=&end=
func (h *DailyScheduleHandler) ListMine(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var q dto.ScheduleRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.scheduleSvc.ListMine(c.Request.Context(), caller, q.Start, q.End)
	renderList(c, list, err, h.handleScheduleError)
}

// MyCalendar 讲师本人区间内的记录导出为 iCalendar
// GET /api/v1/daily-schedules/me.ics?start=&end=
func (h *DailyScheduleHandler) MyCalendar(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var q dto.ScheduleRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	body, err := h.calendarSvc.TrainerCalendar(c.Request.Context(), caller, q.Start, q.End)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=schedule_%s_%s.ics", q.Start, q.End))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", body)
}

// ListAll 管理员按区间与出勤筛选全部记录
// GET /api/v1/daily-schedules?start=&end=&attendance=ALL
func (h *DailyScheduleHandler) ListAll(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var q dto.ManagerScheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.scheduleSvc.ListAll(c.Request.Context(), caller, q.Start, q.End, q.Attendance)
	renderList(c, list, err, h.handleScheduleError)
}

// SetModifyStatus 管理员开关单日记录的编辑权限
// PUT /api/v1/daily-schedules/:sno/modify-status
func (h *DailyScheduleHandler) SetModifyStatus(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var uri struct {
		Sno int64 `uri:"sno" binding:"required,min=1"`
	}
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	var req dto.ModifyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	row, err := h.scheduleSvc.SetModifyStatus(c.Request.Context(), caller, uri.Sno, model.ModifyStatus(req.ModifyStatus))
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, row)
}

// handleScheduleError 统一处理每日记录模块业务错误
func (h *DailyScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleAlreadyGenerated):
		response.Conflict(c, 13001, "该培训的每日记录已生成")
	case errors.Is(err, service.ErrTrainingNotApproved):
		response.BadRequest(c, 13002, "培训尚未审批，不能生成每日记录")
	case errors.Is(err, service.ErrScheduleLocked):
		response.Forbidden(c, 13003, "记录已锁定，请联系管理员开启编辑")
	case errors.Is(err, service.ErrScheduleNotInTraining):
		response.BadRequest(c, 13004, "记录不属于该培训")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13005, "每日记录不存在")
	case errors.Is(err, lifecycle.ErrDescriptionOnLeave):
		response.BadRequest(c, 13006, "请假当天不能填写描述")
	case errors.Is(err, lifecycle.ErrAttendanceInvalid):
		response.BadRequest(c, 13007, "无效的出勤状态")
	case errors.Is(err, lifecycle.ErrAttendanceResetWithNote):
		response.BadRequest(c, 13008, "已填写描述的记录不能重置为未更新")
	case errors.Is(err, service.ErrTrainingNotFound):
		response.NotFound(c, 12001, "培训不存在")
	default:
		handleCommonError(c, err)
	}
}

// [自证通过] internal/api/handler/daily_schedule_handler.go
