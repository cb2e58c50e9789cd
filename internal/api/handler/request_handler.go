package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/service"
	"github.com/dragonmunday12/flightslot/pkg/response"
)

// RequestHandler 预约申请模块 HTTP 处理器
type RequestHandler struct {
	requestSvc service.RequestService
}

// NewRequestHandler 创建 RequestHandler
func NewRequestHandler(requestSvc service.RequestService) *RequestHandler {
	return &RequestHandler{requestSvc: requestSvc}
}

// ListRequests 获取申请列表（教练全量，学员仅自己）
// GET /api/v1/requests
func (h *RequestHandler) ListRequests(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	requests, err := h.requestSvc.List(c.Request.Context(), callerID, role)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": requests})
}

// CreateRequest 提交预约申请（学员）
// POST /api/v1/requests
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	var req dto.CreateRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.requestSvc.Create(c.Request.Context(), callerID, &req)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.Created(c, result)
}

// ApproveRequest 批准申请（教练）
// POST /api/v1/requests/:id/approve
func (h *RequestHandler) ApproveRequest(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	result, err := h.requestSvc.Approve(c.Request.Context(), id)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// DenyRequest 拒绝申请（教练）
// POST /api/v1/requests/:id/deny
func (h *RequestHandler) DenyRequest(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	result, err := h.requestSvc.Deny(c.Request.Context(), id)
	if err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, result)
}

// WithdrawRequest 撤回/删除申请
// DELETE /api/v1/requests/:id
func (h *RequestHandler) WithdrawRequest(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "申请ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.requestSvc.Withdraw(c.Request.Context(), id, callerID, role); err != nil {
		h.handleRequestError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRequestError 统一处理申请模块业务错误
func (h *RequestHandler) handleRequestError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		response.NotFound(c, 14101, "预约申请不存在")
	case errors.Is(err, service.ErrRequestProcessed):
		response.Conflict(c, 14102, "该申请已处理，不可重复操作")
	case errors.Is(err, service.ErrDuplicatePendingRequest):
		response.Conflict(c, 14103, "同一时段已有待处理申请")
	case errors.Is(err, service.ErrSlotNoLongerAvailable):
		response.Conflict(c, 14104, "该时段已不可用，申请已自动拒绝")
	case errors.Is(err, service.ErrSlotTaken):
		response.Conflict(c, 14105, "该时段已被占用")
	case errors.Is(err, service.ErrDayBlocked):
		response.Conflict(c, 14106, "该日期已设置停飞")
	case errors.Is(err, service.ErrNotRequestOwner):
		response.Forbidden(c, 14107, "只能撤回自己的申请")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14108, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrTimeBlockNotFound):
		response.BadRequest(c, 14109, "时间段不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 14110, "学员不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/request_handler.go
