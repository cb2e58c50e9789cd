package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/model"
)

func setupTestScheduleService() (ScheduleService, *testMocks) {
	m := newTestMocks()
	logger := zap.NewNop()
	svc := NewScheduleService(m.repo, newAvailabilityChecker(m.repo, logger), logger)
	return svc, m
}

// ── Create：显式日期 ──

func TestScheduleService_Create_ExplicitDates(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedBlock("tb-001", "上午")

	result, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Dates:       []string{"2024-01-01", "2024-01-03"},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(result.Created) != 2 {
		t.Fatalf("期望创建 2 条排期，实际 %d 条", len(result.Created))
	}
	if len(result.Skipped) != 0 {
		t.Errorf("期望无跳过日期，实际 %d 个", len(result.Skipped))
	}
	if !result.Created[0].CreatedByInstructor {
		t.Error("教练创建的排期应标记 created_by_instructor")
	}
	if result.RecurringID != nil {
		t.Error("显式日期创建不应有 recurring_id")
	}
}

func TestScheduleService_Create_SkipsConflicts(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedStudent("stu-002", "李四")
	m.seedBlock("tb-001", "上午")

	// 1 月 1 日槽位已被李四占用，1 月 2 日停飞，1 月 3 日空闲
	m.schedules.schedules["sch-x"] = &model.Schedule{
		ScheduleID: "sch-x", StudentID: "stu-002", TimeBlockID: "tb-001", Date: mustDate("2024-01-01"),
	}
	m.days.days["bd-x"] = &model.BlockedDay{BlockedDayID: "bd-x", Date: mustDate("2024-01-02")}

	result, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Dates:       []string{"2024-01-01", "2024-01-02", "2024-01-03"},
	})
	if err != nil {
		t.Fatalf("部分成功时 Create 不应报错: %v", err)
	}
	if len(result.Created) != 1 {
		t.Fatalf("期望创建 1 条，实际 %d 条", len(result.Created))
	}
	if result.Created[0].Date != "2024-01-03" {
		t.Errorf("创建的应是 2024-01-03，实际 %s", result.Created[0].Date)
	}
	if len(result.Skipped) != 2 {
		t.Fatalf("期望跳过 2 个日期，实际 %d 个", len(result.Skipped))
	}
	reasons := map[string]string{}
	for _, sk := range result.Skipped {
		reasons[sk.Date] = sk.Reason
	}
	if reasons["2024-01-01"] != "already_taken" {
		t.Errorf("2024-01-01 应为 already_taken，实际 %s", reasons["2024-01-01"])
	}
	if reasons["2024-01-02"] != "day_blocked" {
		t.Errorf("2024-01-02 应为 day_blocked，实际 %s", reasons["2024-01-02"])
	}
}

func TestScheduleService_Create_AllConflict(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedStudent("stu-002", "李四")
	m.seedBlock("tb-001", "上午")
	m.schedules.schedules["sch-x"] = &model.Schedule{
		ScheduleID: "sch-x", StudentID: "stu-002", TimeBlockID: "tb-001", Date: mustDate("2024-01-01"),
	}

	_, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Dates:       []string{"2024-01-01"},
	})
	if !errors.Is(err, ErrSlotTaken) {
		t.Errorf("全部冲突时期望 ErrSlotTaken，实际: %v", err)
	}
}

func TestScheduleService_Create_DuplicateDatesDeduped(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedBlock("tb-001", "上午")

	result, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Dates:       []string{"2024-01-01", "2024-01-01"},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(result.Created) != 1 {
		t.Errorf("重复日期应去重，期望 1 条，实际 %d 条", len(result.Created))
	}
}

func TestScheduleService_Create_StudentNotFound(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedBlock("tb-001", "上午")

	_, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "nonexistent",
		TimeBlockID: "tb-001",
		Dates:       []string{"2024-01-01"},
	})
	if !errors.Is(err, ErrStudentNotFound) {
		t.Errorf("期望 ErrStudentNotFound，实际: %v", err)
	}
}

func TestScheduleService_Create_NoDates(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedBlock("tb-001", "上午")

	_, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
	})
	if !errors.Is(err, ErrNoDatesProvided) {
		t.Errorf("期望 ErrNoDatesProvided，实际: %v", err)
	}
}

// ── Create：周期模式 ──

func TestScheduleService_Create_Recurring(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedBlock("tb-001", "上午")

	result, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Recurring: &dto.RecurringSpec{
			Days:      []int{1},
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
		},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(result.Created) != 5 {
		t.Fatalf("2024 年 1 月有 5 个周一，实际创建 %d 条", len(result.Created))
	}
	if result.RecurringID == nil {
		t.Fatal("周期创建应返回 recurring_id")
	}
	if len(m.patterns.patterns) != 1 {
		t.Errorf("应持久化 1 条周期模式，实际 %d 条", len(m.patterns.patterns))
	}
	for _, c := range result.Created {
		if c.RecurringID == nil || *c.RecurringID != *result.RecurringID {
			t.Errorf("排期 %s 应归属周期 %s", c.ID, *result.RecurringID)
		}
	}
}

func TestScheduleService_Create_Recurring_TooLarge(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedBlock("tb-001", "上午")

	// 每天 × 400 天，展开超过 365 上限，应整体拒绝
	_, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Recurring: &dto.RecurringSpec{
			Days:      []int{0, 1, 2, 3, 4, 5, 6},
			StartDate: "2024-01-01",
			EndDate:   "2025-02-04",
		},
	})
	if !errors.Is(err, ErrRecurringTooLarge) {
		t.Fatalf("期望 ErrRecurringTooLarge，实际: %v", err)
	}
	if len(m.schedules.schedules) != 0 {
		t.Error("超上限时不应创建任何排期")
	}
	if len(m.patterns.patterns) != 0 {
		t.Error("超上限时不应持久化周期模式")
	}
}

func TestScheduleService_Create_Recurring_NoMatch(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedBlock("tb-001", "上午")

	// 区间仅一个周一，但只要周末
	_, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Recurring: &dto.RecurringSpec{
			Days:      []int{0, 6},
			StartDate: "2024-01-01",
			EndDate:   "2024-01-01",
		},
	})
	if !errors.Is(err, ErrNoMatchingDates) {
		t.Errorf("期望 ErrNoMatchingDates，实际: %v", err)
	}
}

func TestScheduleService_Create_Recurring_InvalidRange(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedBlock("tb-001", "上午")

	_, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Recurring: &dto.RecurringSpec{
			Days:      []int{1},
			StartDate: "2024-02-01",
			EndDate:   "2024-01-01",
		},
	})
	if !errors.Is(err, ErrInvalidDateRange) {
		t.Errorf("期望 ErrInvalidDateRange，实际: %v", err)
	}
}

func TestScheduleService_Create_Recurring_SkipsTakenDates(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.seedStudent("stu-002", "李四")
	m.seedBlock("tb-001", "上午")

	// 1 月 8 日（周一）已被占用，其余周一应照常创建
	m.schedules.schedules["sch-x"] = &model.Schedule{
		ScheduleID: "sch-x", StudentID: "stu-002", TimeBlockID: "tb-001", Date: mustDate("2024-01-08"),
	}

	result, err := svc.Create(context.Background(), &dto.CreateSchedulesRequest{
		StudentID:   "stu-001",
		TimeBlockID: "tb-001",
		Recurring: &dto.RecurringSpec{
			Days:      []int{1},
			StartDate: "2024-01-01",
			EndDate:   "2024-01-31",
		},
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if len(result.Created) != 4 {
		t.Errorf("期望创建 4 条，实际 %d 条", len(result.Created))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].Date != "2024-01-08" {
		t.Errorf("期望跳过 2024-01-08，实际 %+v", result.Skipped)
	}
}

// ── Delete ──

func TestScheduleService_Delete_StudentOwnSchedule(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-01"), CreatedByInstructor: false,
	}

	err := svc.Delete(context.Background(), "sch-001", false, "stu-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("学员应能取消自己发起的排期: %v", err)
	}
	if len(m.schedules.schedules) != 0 {
		t.Error("排期应已删除")
	}
}

func TestScheduleService_Delete_StudentOthersSchedule(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-002", TimeBlockID: "tb-001", Date: mustDate("2024-01-01"),
	}

	err := svc.Delete(context.Background(), "sch-001", false, "stu-001", model.RoleStudent)
	if !errors.Is(err, ErrNotScheduleOwner) {
		t.Errorf("期望 ErrNotScheduleOwner，实际: %v", err)
	}
}

func TestScheduleService_Delete_StudentInstructorCreated(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-01"), CreatedByInstructor: true,
	}

	err := svc.Delete(context.Background(), "sch-001", false, "stu-001", model.RoleStudent)
	if !errors.Is(err, ErrScheduleProtected) {
		t.Errorf("期望 ErrScheduleProtected，实际: %v", err)
	}
}

func TestScheduleService_Delete_NotFound(t *testing.T) {
	svc, _ := setupTestScheduleService()

	err := svc.Delete(context.Background(), "nonexistent", false, "ins-001", model.RoleInstructor)
	if !errors.Is(err, ErrScheduleNotFound) {
		t.Errorf("期望 ErrScheduleNotFound，实际: %v", err)
	}
}

func TestScheduleService_Delete_RecurringSet(t *testing.T) {
	svc, m := setupTestScheduleService()
	recID := "rec-001"
	m.patterns.patterns[recID] = &model.RecurringPattern{RecurringID: recID}
	for i, date := range []string{"2024-01-01", "2024-01-08", "2024-01-15"} {
		id := string(rune('a' + i))
		m.schedules.schedules[id] = &model.Schedule{
			ScheduleID: id, StudentID: "stu-001", TimeBlockID: "tb-001",
			Date: mustDate(date), RecurringID: &recID, CreatedByInstructor: true,
		}
	}

	err := svc.Delete(context.Background(), "a", true, "ins-001", model.RoleInstructor)
	if err != nil {
		t.Fatalf("删除周期排期应成功: %v", err)
	}
	if len(m.schedules.schedules) != 0 {
		t.Errorf("周期内排期应全部删除，剩余 %d 条", len(m.schedules.schedules))
	}
	if len(m.patterns.patterns) != 0 {
		t.Error("周期模式记录应一并删除")
	}
}

func TestScheduleService_Delete_RecurringSet_StudentForbidden(t *testing.T) {
	svc, m := setupTestScheduleService()
	recID := "rec-001"
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-01"), RecurringID: &recID, CreatedByInstructor: false,
	}

	err := svc.Delete(context.Background(), "sch-001", true, "stu-001", model.RoleStudent)
	if !errors.Is(err, ErrRecurringDeleteForbidden) {
		t.Errorf("期望 ErrRecurringDeleteForbidden，实际: %v", err)
	}
}

// ── List：角色视角 ──

func TestScheduleService_List_StudentMasksOthers(t *testing.T) {
	svc, m := setupTestScheduleService()
	me := m.seedStudent("stu-001", "张三")
	other := m.seedStudent("stu-002", "李四")
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-01"), Student: me,
	}
	m.schedules.schedules["sch-002"] = &model.Schedule{
		ScheduleID: "sch-002", StudentID: "stu-002", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-02"), Student: other,
	}

	list, err := svc.List(context.Background(), nil, "stu-001", model.RoleStudent)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("学员应看到全部槽位占用，实际 %d 条", len(list))
	}
	for _, item := range list {
		switch item.ID {
		case "sch-001":
			if !item.IsOwn || item.Student == nil {
				t.Error("自己的排期应保留明细并标记 is_own")
			}
		case "sch-002":
			if item.IsOwn || item.Student != nil || item.StudentID != "" {
				t.Error("他人排期应脱敏：无学员信息且 is_own=false")
			}
		}
	}
}

func TestScheduleService_List_InstructorSeesAll(t *testing.T) {
	svc, m := setupTestScheduleService()
	stu := m.seedStudent("stu-001", "张三")
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001",
		Date: mustDate("2024-01-01"), Student: stu,
	}

	list, err := svc.List(context.Background(), nil, "ins-001", model.RoleInstructor)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 || list[0].Student == nil || list[0].Student.Name != "张三" {
		t.Error("教练视角应包含学员明细")
	}
}

func TestScheduleService_List_MonthFilter(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.seedStudent("stu-001", "张三")
	m.schedules.schedules["jan"] = &model.Schedule{
		ScheduleID: "jan", StudentID: "stu-001", TimeBlockID: "tb-001", Date: mustDate("2024-01-15"),
	}
	m.schedules.schedules["feb"] = &model.Schedule{
		ScheduleID: "feb", StudentID: "stu-001", TimeBlockID: "tb-001", Date: mustDate("2024-02-15"),
	}

	list, err := svc.List(context.Background(), &dto.ScheduleListRequest{Month: 1, Year: 2024}, "ins-001", model.RoleInstructor)
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 1 || list[0].ID != "jan" {
		t.Errorf("月份过滤应只返回 1 月排期，实际 %d 条", len(list))
	}
}

// ── ClearEvents ──

func TestScheduleService_ClearEvents(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.schedules.schedules["sch-001"] = &model.Schedule{ScheduleID: "sch-001", Date: mustDate("2024-01-01")}
	m.requests.requests["req-001"] = &model.Request{RequestID: "req-001", Status: model.RequestStatusPending}
	m.days.days["bd-001"] = &model.BlockedDay{BlockedDayID: "bd-001", Date: mustDate("2024-01-02")}

	result, err := svc.ClearEvents(context.Background(), &dto.ClearEventsRequest{IncludeBlockedDays: false})
	if err != nil {
		t.Fatalf("ClearEvents 应成功: %v", err)
	}
	if result.SchedulesDeleted != 1 || result.RequestsDeleted != 1 {
		t.Errorf("期望删除 1 排期 1 申请，实际 %d/%d", result.SchedulesDeleted, result.RequestsDeleted)
	}
	if result.BlockedDaysDeleted != nil {
		t.Error("未选择清理停飞日时不应返回删除数")
	}
	if len(m.days.days) != 1 {
		t.Error("停飞日应保留")
	}
}

func TestScheduleService_ClearEvents_IncludeBlockedDays(t *testing.T) {
	svc, m := setupTestScheduleService()
	m.days.days["bd-001"] = &model.BlockedDay{BlockedDayID: "bd-001", Date: mustDate("2024-01-02")}

	result, err := svc.ClearEvents(context.Background(), &dto.ClearEventsRequest{IncludeBlockedDays: true})
	if err != nil {
		t.Fatalf("ClearEvents 应成功: %v", err)
	}
	if result.BlockedDaysDeleted == nil || *result.BlockedDaysDeleted != 1 {
		t.Error("应删除并统计停飞日")
	}
	if len(m.days.days) != 0 {
		t.Error("停飞日应已清空")
	}
}
