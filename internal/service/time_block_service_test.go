package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/model"
)

func setupTestTimeBlockService() (TimeBlockService, *testMocks) {
	m := newTestMocks()
	svc := NewTimeBlockService(m.repo, zap.NewNop())
	return svc, m
}

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestTimeBlockService_Create_Success(t *testing.T) {
	svc, m := setupTestTimeBlockService()

	result, err := svc.Create(context.Background(), &dto.CreateTimeBlockRequest{
		Name:         "上午",
		StartTime:    "08:00",
		EndTime:      "12:00",
		DisplayOrder: intPtr(1),
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Name != "上午" || result.StartTime != "08:00" || result.EndTime != "12:00" {
		t.Errorf("响应字段不符: %+v", result)
	}
	if result.DisplayOrder != 1 {
		t.Errorf("期望排序 1，实际 %d", result.DisplayOrder)
	}
	if len(m.blocks.blocks) != 1 {
		t.Errorf("应保存 1 个时间段，实际 %d 个", len(m.blocks.blocks))
	}
}

func TestTimeBlockService_Create_DefaultDisplayOrder(t *testing.T) {
	svc, _ := setupTestTimeBlockService()

	result, err := svc.Create(context.Background(), &dto.CreateTimeBlockRequest{
		Name:      "下午",
		StartTime: "13:00",
		EndTime:   "17:00",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.DisplayOrder != 999 {
		t.Errorf("未指定排序时应默认 999，实际 %d", result.DisplayOrder)
	}
}

func TestTimeBlockService_Create_InvalidTimeRange(t *testing.T) {
	svc, _ := setupTestTimeBlockService()

	for _, c := range []struct{ start, end string }{
		{"12:00", "08:00"},
		{"08:00", "08:00"},
	} {
		_, err := svc.Create(context.Background(), &dto.CreateTimeBlockRequest{
			Name: "非法", StartTime: c.start, EndTime: c.end,
		})
		if !errors.Is(err, ErrInvalidTimeRange) {
			t.Errorf("%s-%s 期望 ErrInvalidTimeRange，实际: %v", c.start, c.end, err)
		}
	}
}

func TestTimeBlockService_Update_Success(t *testing.T) {
	svc, m := setupTestTimeBlockService()
	m.seedBlock("tb-001", "上午")

	result, err := svc.Update(context.Background(), "tb-001", &dto.UpdateTimeBlockRequest{
		Name:    strPtr("清晨"),
		EndTime: strPtr("11:00"),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if result.Name != "清晨" || result.EndTime != "11:00" {
		t.Errorf("响应字段不符: %+v", result)
	}
	if result.StartTime != "08:00" {
		t.Errorf("未更新的字段应保留原值，实际 %s", result.StartTime)
	}
}

func TestTimeBlockService_Update_InvalidRangeAfterPatch(t *testing.T) {
	svc, m := setupTestTimeBlockService()
	m.seedBlock("tb-001", "上午")

	// 原区间 08:00-12:00，仅改结束时间到开始之前
	_, err := svc.Update(context.Background(), "tb-001", &dto.UpdateTimeBlockRequest{
		EndTime: strPtr("07:00"),
	})
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Errorf("期望 ErrInvalidTimeRange，实际: %v", err)
	}
}

func TestTimeBlockService_Update_NotFound(t *testing.T) {
	svc, _ := setupTestTimeBlockService()

	_, err := svc.Update(context.Background(), "nonexistent", &dto.UpdateTimeBlockRequest{
		Name: strPtr("清晨"),
	})
	if !errors.Is(err, ErrTimeBlockNotFound) {
		t.Errorf("期望 ErrTimeBlockNotFound，实际: %v", err)
	}
}

func TestTimeBlockService_Delete_Success(t *testing.T) {
	svc, m := setupTestTimeBlockService()
	m.seedBlock("tb-001", "上午")

	if err := svc.Delete(context.Background(), "tb-001"); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if len(m.blocks.blocks) != 0 {
		t.Error("时间段应已删除")
	}
}

func TestTimeBlockService_Delete_InUse(t *testing.T) {
	svc, m := setupTestTimeBlockService()
	m.seedStudent("stu-001", "张三")
	m.seedBlock("tb-001", "上午")
	m.schedules.schedules["sch-001"] = &model.Schedule{
		ScheduleID: "sch-001", StudentID: "stu-001", TimeBlockID: "tb-001", Date: mustDate("2024-01-05"),
	}

	err := svc.Delete(context.Background(), "tb-001")
	if !errors.Is(err, ErrTimeBlockInUse) {
		t.Errorf("期望 ErrTimeBlockInUse，实际: %v", err)
	}
	if _, ok := m.blocks.blocks["tb-001"]; !ok {
		t.Error("被引用的时间段不应被删除")
	}
}

func TestTimeBlockService_List_SortedByDisplayOrder(t *testing.T) {
	svc, m := setupTestTimeBlockService()
	m.blocks.blocks["tb-001"] = &model.TimeBlock{TimeBlockID: "tb-001", Name: "下午", StartTime: "13:00", EndTime: "17:00", DisplayOrder: 2, Version: 1}
	m.blocks.blocks["tb-002"] = &model.TimeBlock{TimeBlockID: "tb-002", Name: "上午", StartTime: "08:00", EndTime: "12:00", DisplayOrder: 1, Version: 1}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("期望 2 个时间段，实际 %d 个", len(list))
	}
	if list[0].Name != "上午" || list[1].Name != "下午" {
		t.Errorf("应按 display_order 升序：%s, %s", list[0].Name, list[1].Name)
	}
}
