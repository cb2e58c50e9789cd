package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	pkgerrors "github.com/dragonmunday12/flightslot/pkg/errors"

	"github.com/dragonmunday12/flightslot/internal/model"
	"github.com/dragonmunday12/flightslot/internal/notify"
	"github.com/dragonmunday12/flightslot/internal/repository"
)

// mustDate 测试辅助：解析 YYYY-MM-DD，格式错误直接 panic
func mustDate(s string) time.Time {
	d, err := parseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func slotKey(date time.Time, timeBlockID string) string {
	return formatDate(date) + "|" + timeBlockID
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%03d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, userID string) (*model.User, error) {
	if u, ok := m.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetInstructor(_ context.Context) (*model.User, error) {
	for _, u := range m.users {
		if u.Role == model.RoleInstructor {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListStudents(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == model.RoleStudent {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, userID string) error {
	delete(m.users, userID)
	return nil
}

// ── Mock TimeBlockRepository ──

type mockTimeBlockRepo struct {
	blocks map[string]*model.TimeBlock
	seq    int
}

func newMockTimeBlockRepo() *mockTimeBlockRepo {
	return &mockTimeBlockRepo{blocks: make(map[string]*model.TimeBlock)}
}

func (m *mockTimeBlockRepo) Create(_ context.Context, block *model.TimeBlock) error {
	if block.TimeBlockID == "" {
		m.seq++
		block.TimeBlockID = fmt.Sprintf("tb-%03d", m.seq)
	}
	m.blocks[block.TimeBlockID] = block
	return nil
}

func (m *mockTimeBlockRepo) GetByID(_ context.Context, timeBlockID string) (*model.TimeBlock, error) {
	if b, ok := m.blocks[timeBlockID]; ok {
		return b, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTimeBlockRepo) List(_ context.Context) ([]model.TimeBlock, error) {
	var result []model.TimeBlock
	for _, b := range m.blocks {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DisplayOrder < result[j].DisplayOrder })
	return result, nil
}

func (m *mockTimeBlockRepo) Update(_ context.Context, block *model.TimeBlock) error {
	stored, ok := m.blocks[block.TimeBlockID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if stored.Version != block.Version {
		return pkgerrors.ErrOptimisticLock
	}
	block.Version++
	m.blocks[block.TimeBlockID] = block
	return nil
}

func (m *mockTimeBlockRepo) Delete(_ context.Context, timeBlockID string) error {
	delete(m.blocks, timeBlockID)
	return nil
}

// ── Mock BlockedDayRepository ──

type mockBlockedDayRepo struct {
	days map[string]*model.BlockedDay
	seq  int
}

func newMockBlockedDayRepo() *mockBlockedDayRepo {
	return &mockBlockedDayRepo{days: make(map[string]*model.BlockedDay)}
}

func (m *mockBlockedDayRepo) Create(_ context.Context, day *model.BlockedDay) error {
	for _, d := range m.days {
		if d.Date.Equal(day.Date) {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if day.BlockedDayID == "" {
		m.seq++
		day.BlockedDayID = fmt.Sprintf("bd-%03d", m.seq)
	}
	m.days[day.BlockedDayID] = day
	return nil
}

func (m *mockBlockedDayRepo) GetByID(_ context.Context, blockedDayID string) (*model.BlockedDay, error) {
	if d, ok := m.days[blockedDayID]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockedDayRepo) GetByDate(_ context.Context, date time.Time) (*model.BlockedDay, error) {
	for _, d := range m.days {
		if d.Date.Equal(date) {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockBlockedDayRepo) List(_ context.Context, from, to *time.Time) ([]model.BlockedDay, error) {
	var result []model.BlockedDay
	for _, d := range m.days {
		if from != nil && d.Date.Before(*from) {
			continue
		}
		if to != nil && !d.Date.Before(*to) {
			continue
		}
		result = append(result, *d)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockBlockedDayRepo) Delete(_ context.Context, blockedDayID string) error {
	delete(m.days, blockedDayID)
	return nil
}

func (m *mockBlockedDayRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.days))
	m.days = make(map[string]*model.BlockedDay)
	return n, nil
}

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	schedules map[string]*model.Schedule
	seq       int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*model.Schedule)}
}

func (m *mockScheduleRepo) Create(_ context.Context, schedule *model.Schedule) error {
	for _, s := range m.schedules {
		if slotKey(s.Date, s.TimeBlockID) == slotKey(schedule.Date, schedule.TimeBlockID) {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if schedule.ScheduleID == "" {
		m.seq++
		schedule.ScheduleID = fmt.Sprintf("sch-%03d", m.seq)
	}
	m.schedules[schedule.ScheduleID] = schedule
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, scheduleID string) (*model.Schedule, error) {
	if s, ok := m.schedules[scheduleID]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) GetBySlot(_ context.Context, date time.Time, timeBlockID string) (*model.Schedule, error) {
	for _, s := range m.schedules {
		if slotKey(s.Date, s.TimeBlockID) == slotKey(date, timeBlockID) {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockScheduleRepo) List(_ context.Context, filter *repository.ScheduleFilter) ([]model.Schedule, error) {
	var result []model.Schedule
	for _, s := range m.schedules {
		if filter != nil {
			if filter.StudentID != "" && s.StudentID != filter.StudentID {
				continue
			}
			if filter.From != nil && s.Date.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !s.Date.Before(*filter.To) {
				continue
			}
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *mockScheduleRepo) CountByTimeBlock(_ context.Context, timeBlockID string) (int64, error) {
	var n int64
	for _, s := range m.schedules {
		if s.TimeBlockID == timeBlockID {
			n++
		}
	}
	return n, nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, scheduleID string) error {
	delete(m.schedules, scheduleID)
	return nil
}

func (m *mockScheduleRepo) DeleteByRecurringID(_ context.Context, recurringID string) (int64, error) {
	var n int64
	for id, s := range m.schedules {
		if s.RecurringID != nil && *s.RecurringID == recurringID {
			delete(m.schedules, id)
			n++
		}
	}
	return n, nil
}

func (m *mockScheduleRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.schedules))
	m.schedules = make(map[string]*model.Schedule)
	return n, nil
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests map[string]*model.Request
	seq      int
	onCreate func() // 写入前触发，用于模拟并发插入
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]*model.Request)}
}

func (m *mockRequestRepo) Create(_ context.Context, request *model.Request) error {
	if m.onCreate != nil {
		m.onCreate()
	}
	for _, r := range m.requests {
		if r.StudentID == request.StudentID && r.Status == model.RequestStatusPending &&
			slotKey(r.Date, r.TimeBlockID) == slotKey(request.Date, request.TimeBlockID) {
			return pkgerrors.ErrDuplicateKey
		}
	}
	if request.RequestID == "" {
		m.seq++
		request.RequestID = fmt.Sprintf("req-%03d", m.seq)
	}
	m.requests[request.RequestID] = request
	return nil
}

func (m *mockRequestRepo) GetByID(_ context.Context, requestID string) (*model.Request, error) {
	if r, ok := m.requests[requestID]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) List(_ context.Context, studentID string) ([]model.Request, error) {
	var result []model.Request
	for _, r := range m.requests {
		if studentID != "" && r.StudentID != studentID {
			continue
		}
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRequestRepo) GetPendingBySlot(_ context.Context, studentID string, date time.Time, timeBlockID string) (*model.Request, error) {
	for _, r := range m.requests {
		if r.StudentID == studentID && r.Status == model.RequestStatusPending &&
			slotKey(r.Date, r.TimeBlockID) == slotKey(date, timeBlockID) {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) Update(_ context.Context, request *model.Request) error {
	m.requests[request.RequestID] = request
	return nil
}

func (m *mockRequestRepo) Delete(_ context.Context, requestID string) error {
	delete(m.requests, requestID)
	return nil
}

func (m *mockRequestRepo) DeletePendingByDate(_ context.Context, date time.Time) (int64, error) {
	var n int64
	for id, r := range m.requests {
		if r.Status == model.RequestStatusPending && r.Date.Equal(date) {
			delete(m.requests, id)
			n++
		}
	}
	return n, nil
}

func (m *mockRequestRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.requests))
	m.requests = make(map[string]*model.Request)
	return n, nil
}

// ── Mock RecurringPatternRepository ──

type mockRecurringRepo struct {
	patterns map[string]*model.RecurringPattern
	seq      int
}

func newMockRecurringRepo() *mockRecurringRepo {
	return &mockRecurringRepo{patterns: make(map[string]*model.RecurringPattern)}
}

func (m *mockRecurringRepo) Create(_ context.Context, pattern *model.RecurringPattern) error {
	if pattern.RecurringID == "" {
		m.seq++
		pattern.RecurringID = fmt.Sprintf("rec-%03d", m.seq)
	}
	m.patterns[pattern.RecurringID] = pattern
	return nil
}

func (m *mockRecurringRepo) GetByID(_ context.Context, recurringID string) (*model.RecurringPattern, error) {
	if p, ok := m.patterns[recurringID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRecurringRepo) Delete(_ context.Context, recurringID string) error {
	delete(m.patterns, recurringID)
	return nil
}

func (m *mockRecurringRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.patterns))
	m.patterns = make(map[string]*model.RecurringPattern)
	return n, nil
}

// ── Mock Notifier ──

// mockNotifier 同步记录通知调用，便于断言
type mockNotifier struct {
	kinds []notify.Kind
}

func (m *mockNotifier) Notify(_ *model.User, kind notify.Kind, _ notify.Payload) {
	m.kinds = append(m.kinds, kind)
}

// ── 聚合测试辅助 ──

type testMocks struct {
	repo      *repository.Repository
	users     *mockUserRepo
	blocks    *mockTimeBlockRepo
	days      *mockBlockedDayRepo
	schedules *mockScheduleRepo
	requests  *mockRequestRepo
	patterns  *mockRecurringRepo
	notifier  *mockNotifier
}

func newTestMocks() *testMocks {
	m := &testMocks{
		users:     newMockUserRepo(),
		blocks:    newMockTimeBlockRepo(),
		days:      newMockBlockedDayRepo(),
		schedules: newMockScheduleRepo(),
		requests:  newMockRequestRepo(),
		patterns:  newMockRecurringRepo(),
		notifier:  &mockNotifier{},
	}
	m.repo = &repository.Repository{
		User:       m.users,
		TimeBlock:  m.blocks,
		BlockedDay: m.days,
		Schedule:   m.schedules,
		Request:    m.requests,
		Recurring:  m.patterns,
	}
	return m
}

// seedStudent 预置学员
func (m *testMocks) seedStudent(id, name string) *model.User {
	u := &model.User{UserID: id, Name: name, Role: model.RoleStudent, PINHash: "x"}
	m.users.users[id] = u
	return u
}

// seedBlock 预置时间段
func (m *testMocks) seedBlock(id, name string) *model.TimeBlock {
	b := &model.TimeBlock{TimeBlockID: id, Name: name, StartTime: "08:00", EndTime: "12:00", Version: 1}
	m.blocks.blocks[id] = b
	return b
}
