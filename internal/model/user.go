package model

import "gorm.io/gorm"

// 用户角色
const (
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// User 用户表 — 对应 users
// 系统中只有一名 instructor，其余均为 student
type User struct {
	UserID  string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name    string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Role    string  `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	PINHash string  `gorm:"column:pin_hash;type:varchar(255);not null"     json:"-"`
	Email   *string `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Phone   *string `gorm:"type:varchar(20)"                               json:"phone,omitempty"`
	BaseModel
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
