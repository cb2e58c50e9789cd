package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/dragonmunday12/flightslot/internal/model"
)

func setupTestExportService() (ExportService, *testMocks) {
	m := newTestMocks()
	svc := NewExportService(m.repo, zap.NewNop())
	return svc, m
}

func TestExportService_ExportExcel(t *testing.T) {
	svc, m := setupTestExportService()
	student := m.seedStudent("stu-001", "张三")
	block := m.seedBlock("tb-001", "上午")
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-05"), Student: student, TimeBlock: block,
	}
	m.days.days["bd-001"] = &model.BlockedDay{BlockedDayID: "bd-001", Date: mustDate("2024-01-10")}

	data, filename, err := svc.ExportExcel(context.Background(), 2024, 1)
	if err != nil {
		t.Fatalf("ExportExcel 应成功: %v", err)
	}
	if filename != "schedules-2024-01.xlsx" {
		t.Errorf("期望文件名 schedules-2024-01.xlsx，实际 %s", filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("导出内容应为合法 xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("排期表")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + 1 月 31 天
	if len(rows) != 32 {
		t.Fatalf("期望 32 行，实际 %d 行", len(rows))
	}
	if rows[0][0] != "日期" || !strings.Contains(rows[0][1], "上午") {
		t.Errorf("表头不符: %v", rows[0])
	}
	// 第 5 行数据（1 月 5 日）应为学员姓名，1 月 10 日应为停飞
	if rows[5][1] != "张三" {
		t.Errorf("2024-01-05 单元格期望 张三，实际 %q", rows[5][1])
	}
	if rows[10][1] != "停飞" {
		t.Errorf("2024-01-10 单元格期望 停飞，实际 %q", rows[10][1])
	}
}

func TestExportService_ExportICS_InstructorSeesNames(t *testing.T) {
	svc, m := setupTestExportService()
	student := m.seedStudent("stu-001", "张三")
	block := m.seedBlock("tb-001", "上午")
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-05"), Student: student, TimeBlock: block,
	}

	data, filename, err := svc.ExportICS(context.Background(), "ins-001", model.RoleInstructor)
	if err != nil {
		t.Fatalf("ExportICS 应成功: %v", err)
	}
	if filename != "flightslot.ics" {
		t.Errorf("期望文件名 flightslot.ics，实际 %s", filename)
	}

	out := string(data)
	if !strings.Contains(out, "BEGIN:VCALENDAR") || !strings.Contains(out, "BEGIN:VEVENT") {
		t.Error("应为合法 iCalendar 内容")
	}
	if !strings.Contains(out, "sch-001@flightslot") {
		t.Error("事件 UID 应基于排期 ID")
	}
	if !strings.Contains(out, "张三") {
		t.Error("教练视图的事件摘要应包含学员姓名")
	}
}

func TestExportService_ExportICS_EventTimes(t *testing.T) {
	svc, m := setupTestExportService()
	student := m.seedStudent("stu-001", "张三")
	block := m.seedBlock("tb-001", "上午") // 08:00-12:00
	badBlock := &model.TimeBlock{
		TimeBlockID: "tb-bad", Name: "脏数据", StartTime: "bogus", EndTime: "??", Version: 1,
	}
	m.blocks.blocks[badBlock.TimeBlockID] = badBlock
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-05"), Student: student, TimeBlock: block,
	}
	m.schedules.schedules["sch-002"] = &model.Schedule{
		ScheduleID: "sch-002", StudentID: "stu-001", TimeBlockID: "tb-bad",
		Date: mustDate("2024-01-06"), Student: student, TimeBlock: badBlock,
	}

	data, _, err := svc.ExportICS(context.Background(), "ins-001", model.RoleInstructor)
	if err != nil {
		t.Fatalf("ExportICS 应成功: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "DTSTART:20240105T080000Z") || !strings.Contains(out, "DTEND:20240105T120000Z") {
		t.Error("事件时间应取自时间段的起止时刻")
	}
	// 时刻字段损坏时回退到当日零点，而不是悄悄生成错误时间
	if !strings.Contains(out, "DTSTART:20240106T000000Z") {
		t.Error("无法解析的时刻应回退到当日零点")
	}
}

func TestExportService_ExportICS_StudentOwnOnly(t *testing.T) {
	svc, m := setupTestExportService()
	s1 := m.seedStudent("stu-001", "张三")
	s2 := m.seedStudent("stu-002", "李四")
	block := m.seedBlock("tb-001", "上午")
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-05"), Student: s1, TimeBlock: block,
	}
	m.schedules.schedules["sch-002"] = &model.Schedule{
		ScheduleID: "sch-002", StudentID: "stu-002", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-06"), Student: s2, TimeBlock: block,
	}

	data, _, err := svc.ExportICS(context.Background(), "stu-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("ExportICS 应成功: %v", err)
	}

	out := string(data)
	if !strings.Contains(out, "sch-001@flightslot") {
		t.Error("学员应能导出自己的排期")
	}
	if strings.Contains(out, "sch-002@flightslot") {
		t.Error("学员不应导出他人的排期")
	}
	// 学员视图不含姓名
	if strings.Contains(out, "张三") {
		t.Error("学员视图的事件摘要不应包含姓名")
	}
}
