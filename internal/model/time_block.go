package model

// TimeBlock 时间段配置表 — 对应 time_blocks
// 如 "Morning 08:00-12:00"，display_order 决定日历中的展示顺序
type TimeBlock struct {
	TimeBlockID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_block_id"`
	Name         string `gorm:"type:varchar(50);not null"                      json:"name"`
	StartTime    string `gorm:"type:time;not null"                             json:"start_time"`
	EndTime      string `gorm:"type:time;not null"                             json:"end_time"`
	DisplayOrder int    `gorm:"not null;default:999"                           json:"display_order"`
	Version      int    `gorm:"not null;default:1"                             json:"version"`
	BaseModel
}

// TableName 指定表名
func (TimeBlock) TableName() string { return "time_blocks" }

// [自证通过] internal/model/time_block.go
