package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"training-portal/backend/internal/lifecycle"
	"training-portal/backend/internal/model"
	"training-portal/backend/internal/repository"
	apperrors "training-portal/backend/pkg/errors"
)

// errStorage 模拟存储故障（未分类错误 → Transport）
var errStorage = errors.New("dial tcp 127.0.0.1:5432: connection refused")

func notFound() error {
	return apperrors.Wrap(apperrors.KindNotFound, "未找到记录", gorm.ErrRecordNotFound)
}

// ── Mock TrainingRepository ──

type mockTrainingRepo struct {
	trainings   map[string]*model.Training
	err         error // 非 nil 时所有调用返回该错误
	updateErr   error // 仅 UpdateStatuses 返回
	calls       int
	updateCalls int
	seq         int
}

func newMockTrainingRepo() *mockTrainingRepo {
	return &mockTrainingRepo{trainings: make(map[string]*model.Training)}
}

func (m *mockTrainingRepo) add(t model.Training) *model.Training {
	if t.TrainingID == "" {
		m.seq++
		t.TrainingID = fmt.Sprintf("T%d", m.seq)
	}
	m.trainings[t.TrainingID] = &t
	return &t
}

func (m *mockTrainingRepo) Create(_ context.Context, t *model.Training) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	if t.TrainingID == "" {
		m.seq++
		t.TrainingID = fmt.Sprintf("T%d", m.seq)
	}
	cp := *t
	m.trainings[t.TrainingID] = &cp
	return nil
}

func (m *mockTrainingRepo) GetByID(_ context.Context, id string) (*model.Training, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	if t, ok := m.trainings[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, notFound()
}

func (m *mockTrainingRepo) GetByIDs(_ context.Context, ids []string) ([]model.Training, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Training
	for _, id := range ids {
		if t, ok := m.trainings[id]; ok {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (m *mockTrainingRepo) list(match func(*model.Training) bool) []model.Training {
	result := []model.Training{}
	for _, t := range m.trainings {
		if match(t) {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].TrainingID < result[j].TrainingID })
	return result
}

func (m *mockTrainingRepo) ListByStatus(_ context.Context, status model.TrainingStatus) ([]model.Training, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.list(func(t *model.Training) bool { return t.Status == status }), nil
}

func (m *mockTrainingRepo) ListByOwnerAndStatus(_ context.Context, email string, status model.TrainingStatus) ([]model.Training, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.list(func(t *model.Training) bool { return t.OwnerEmail == email && t.Status == status }), nil
}

// UpdateStatuses 全部命中才写入，模拟单事务
func (m *mockTrainingRepo) UpdateStatuses(_ context.Context, changes []lifecycle.StatusChange, _ string) error {
	m.calls++
	m.updateCalls++
	if m.err != nil {
		return m.err
	}
	if m.updateErr != nil {
		return m.updateErr
	}
	for _, ch := range changes {
		t, ok := m.trainings[ch.TrainingID]
		if !ok || t.Status == model.TrainingPending {
			return repository.ErrStaleState
		}
	}
	for _, ch := range changes {
		m.trainings[ch.TrainingID].Status = ch.Status
	}
	return nil
}

func (m *mockTrainingRepo) Approve(_ context.Context, id, _ string) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	t, ok := m.trainings[id]
	if !ok || t.Status != model.TrainingPending {
		return repository.ErrStaleState
	}
	t.Status = model.TrainingPlanned
	return nil
}

// ── Mock DailyScheduleRepository ──

type mockDailyScheduleRepo struct {
	records    map[int64]*model.DailySchedule
	err        error
	batchErr   error
	batchCalls int
	seq        int64
}

func newMockDailyScheduleRepo() *mockDailyScheduleRepo {
	return &mockDailyScheduleRepo{records: make(map[int64]*model.DailySchedule)}
}

func (m *mockDailyScheduleRepo) sorted(match func(*model.DailySchedule) bool) []model.DailySchedule {
	result := []model.DailySchedule{}
	for _, r := range m.records {
		if match(r) {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Sno < result[j].Sno
	})
	return result
}

func (m *mockDailyScheduleRepo) BulkCreate(_ context.Context, records []model.DailySchedule) error {
	if m.err != nil {
		return m.err
	}
	for i := range records {
		m.seq++
		records[i].Sno = m.seq
		cp := records[i]
		m.records[cp.Sno] = &cp
	}
	return nil
}

func (m *mockDailyScheduleRepo) GetBySno(_ context.Context, sno int64) (*model.DailySchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.records[sno]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, notFound()
}

func (m *mockDailyScheduleRepo) ListByTraining(_ context.Context, trainingID string) ([]model.DailySchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(r *model.DailySchedule) bool { return r.TrainingID == trainingID }), nil
}

func inRange(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

func (m *mockDailyScheduleRepo) ListByOwnerAndRange(_ context.Context, email string, from, to time.Time) ([]model.DailySchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(r *model.DailySchedule) bool {
		return r.OwnerEmail == email && inRange(r.Date, from, to)
	}), nil
}

func (m *mockDailyScheduleRepo) ListByRange(_ context.Context, from, to time.Time, attendance *model.Attendance) ([]model.DailySchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(r *model.DailySchedule) bool {
		if attendance != nil && r.Attendance != *attendance {
			return false
		}
		return inRange(r.Date, from, to)
	}), nil
}

func (m *mockDailyScheduleRepo) ListUnreported(_ context.Context, before time.Time) ([]model.DailySchedule, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(func(r *model.DailySchedule) bool {
		return r.Date.Before(before) && r.Attendance == model.AttendanceNotUpdated
	}), nil
}

func (m *mockDailyScheduleRepo) BatchUpdate(_ context.Context, updates []model.DailyScheduleUpdate, _ string) error {
	m.batchCalls++
	if m.err != nil {
		return m.err
	}
	if m.batchErr != nil {
		return m.batchErr
	}
	for _, u := range updates {
		if _, ok := m.records[u.Sno]; !ok {
			return repository.ErrStaleState
		}
	}
	for _, u := range updates {
		m.records[u.Sno].Description = u.Description
		m.records[u.Sno].Attendance = u.Attendance
	}
	return nil
}

func (m *mockDailyScheduleRepo) SetModifyStatus(_ context.Context, sno int64, status model.ModifyStatus, _ string) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.records[sno]
	if !ok {
		return repository.ErrStaleState
	}
	r.ModifyStatus = status
	return nil
}

// ── Mock EditRequestRepository ──

type mockEditRequestRepo struct {
	requests map[string]*model.EditRequest
	err      error
	seq      int
}

func newMockEditRequestRepo() *mockEditRequestRepo {
	return &mockEditRequestRepo{requests: make(map[string]*model.EditRequest)}
}

func (m *mockEditRequestRepo) Create(_ context.Context, req *model.EditRequest) error {
	if m.err != nil {
		return m.err
	}
	m.seq++
	req.RequestID = fmt.Sprintf("R%d", m.seq)
	req.CreatedAt = time.Now()
	cp := *req
	m.requests[req.RequestID] = &cp
	return nil
}

func (m *mockEditRequestRepo) GetByID(_ context.Context, id string) (*model.EditRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	if r, ok := m.requests[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, notFound()
}

func (m *mockEditRequestRepo) ListByStatus(_ context.Context, status model.EditRequestStatus) ([]model.EditRequest, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.EditRequest{}
	for _, r := range m.requests {
		if r.Status == status {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].RequestID < result[j].RequestID })
	return result, nil
}

func (m *mockEditRequestRepo) UpdateStatus(_ context.Context, id string, from, to model.EditRequestStatus, decidedBy string) error {
	if m.err != nil {
		return m.err
	}
	r, ok := m.requests[id]
	if !ok || r.Status != from {
		return repository.ErrStaleState
	}
	r.Status = to
	r.DecidedBy = &decidedBy
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	err   error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) add(u model.User) {
	m.users[u.Email] = &u
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if m.err != nil {
		return m.err
	}
	cp := *user
	m.users[user.Email] = &cp
	return nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if u, ok := m.users[email]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, notFound()
}

func (m *mockUserRepo) ListForApproval(_ context.Context) ([]model.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.User{}
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

func (m *mockUserRepo) UpdateStatus(_ context.Context, email string, from, to model.UserStatus, _ string) error {
	if m.err != nil {
		return m.err
	}
	u, ok := m.users[email]
	if !ok || u.Status != from {
		return repository.ErrStaleState
	}
	u.Status = to
	return nil
}

// ── Mock NotificationRepository ──

type mockNotificationRepo struct {
	items []model.Notification
	err   error
}

func newMockNotificationRepo() *mockNotificationRepo {
	return &mockNotificationRepo{}
}

func (m *mockNotificationRepo) BulkCreate(_ context.Context, notifications []model.Notification) error {
	if m.err != nil {
		return m.err
	}
	for i := range notifications {
		notifications[i].NotificationID = fmt.Sprintf("N%d", len(m.items)+1)
		notifications[i].CreatedAt = time.Now()
		m.items = append(m.items, notifications[i])
	}
	return nil
}

func (m *mockNotificationRepo) ListByRecipient(_ context.Context, email string, _ int) ([]model.Notification, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := []model.Notification{}
	for _, n := range m.items {
		if n.RecipientEmail == email {
			result = append(result, n)
		}
	}
	return result, nil
}

// ── Mock StageStore / TokenBlacklist ──

type mockStageStore struct {
	entries map[string]map[string]string
	err     error
	saveErr error
}

func newMockStageStore() *mockStageStore {
	return &mockStageStore{entries: make(map[string]map[string]string)}
}

func (m *mockStageStore) Save(_ context.Context, owner string, entries map[string]string) error {
	if m.err != nil {
		return m.err
	}
	if m.saveErr != nil {
		return m.saveErr
	}
	cp := make(map[string]string, len(entries))
	for k, v := range entries {
		cp[k] = v
	}
	m.entries[owner] = cp
	return nil
}

func (m *mockStageStore) Load(_ context.Context, owner string) (map[string]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	cp := map[string]string{}
	for k, v := range m.entries[owner] {
		cp[k] = v
	}
	return cp, nil
}

func (m *mockStageStore) Clear(_ context.Context, owner string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.entries, owner)
	return nil
}

type mockBlacklist struct {
	tokens map[string]time.Duration
	err    error
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{tokens: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	if m.err != nil {
		return m.err
	}
	m.tokens[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	_, ok := m.tokens[jti]
	return ok, m.err
}

// ── 测试装配 ──

type mockRepos struct {
	training     *mockTrainingRepo
	schedule     *mockDailyScheduleRepo
	editRequest  *mockEditRequestRepo
	user         *mockUserRepo
	notification *mockNotificationRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		training:     newMockTrainingRepo(),
		schedule:     newMockDailyScheduleRepo(),
		editRequest:  newMockEditRequestRepo(),
		user:         newMockUserRepo(),
		notification: newMockNotificationRepo(),
	}
	repo := &repository.Repository{
		Training:      m.training,
		DailySchedule: m.schedule,
		EditRequest:   m.editRequest,
		User:          m.user,
		Notification:  m.notification,
	}
	return repo, m
}

// ── 常用身份与日期 ──

var (
	trainerCaller    = Caller{Email: "trainer@example.com", Role: model.RoleTrainer}
	otherTrainer     = Caller{Email: "other@example.com", Role: model.RoleTrainer}
	managerCaller    = Caller{Email: "manager@example.com", Role: model.RoleManager}
	superAdminCaller = Caller{Email: "root@example.com", Role: model.RoleSuperAdmin}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixedNow 2026-10-16 10:00 UTC（周五，位于 2026-10-05 开始的第二周）
func fixedNow() time.Time {
	return time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
}
