package model

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BaseModel 通用审计字段，业务模型嵌入使用
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IntArray 映射 PostgreSQL 的 INT[] 列。
// 周期排课的 weekdays 字段用它存储星期集合（0=周日 .. 6=周六），
// 读写均走文本形式 {1,3,5}。
type IntArray []int

// Scan 实现 sql.Scanner。
func (a *IntArray) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}

	var raw string
	switch v := src.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("IntArray: 无法从 %T 扫描", src)
	}

	raw = strings.Trim(raw, "{}")
	if raw == "" {
		*a = IntArray{}
		return nil
	}

	out := IntArray{}
	for _, p := range strings.Split(raw, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("IntArray: 元素 %q 不是整数: %w", p, err)
		}
		out = append(out, n)
	}
	*a = out
	return nil
}

// Value 实现 driver.Valuer。
func (a IntArray) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}
	elems := make([]string, 0, len(a))
	for _, n := range a {
		elems = append(elems, strconv.Itoa(n))
	}
	return "{" + strings.Join(elems, ",") + "}", nil
}

// [自证通过] internal/model/base.go
