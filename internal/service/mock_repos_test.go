package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"incident-hub/backend/config"
	"incident-hub/backend/internal/dto"
	"incident-hub/backend/internal/model"
	"incident-hub/backend/internal/repository"
)

// ── Mock EventRepository ──

type mockEventRepo struct {
	events map[string]*model.Event
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{events: make(map[string]*model.Event)}
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	if e, ok := m.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock PriorityGuideRepository ──

// 用切片保持插入顺序：克隆引擎的 rank 映射是"先出现者优先"的
type mockGuideRepo struct {
	guides []*model.PriorityGuide
	seq    int
}

func newMockGuideRepo() *mockGuideRepo {
	return &mockGuideRepo{}
}

func (m *mockGuideRepo) GetByID(_ context.Context, id string) (*model.PriorityGuide, error) {
	for _, g := range m.guides {
		if g.PriorityGuideID == id {
			return g, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockGuideRepo) ListByEvent(_ context.Context, eventID string) ([]model.PriorityGuide, error) {
	var result []model.PriorityGuide
	for _, g := range m.guides {
		if g.EventID == eventID {
			result = append(result, *g)
		}
	}
	return result, nil
}

func (m *mockGuideRepo) CountByEvent(_ context.Context, eventID string) (int64, error) {
	var count int64
	for _, g := range m.guides {
		if g.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (m *mockGuideRepo) Create(_ context.Context, guide *model.PriorityGuide) error {
	if guide.PriorityGuideID == "" {
		m.seq++
		guide.PriorityGuideID = fmt.Sprintf("guide-%03d", m.seq)
	}
	g := *guide
	m.guides = append(m.guides, &g)
	return nil
}

// ── Mock IncidentTypeRepository ──

type mockIncidentTypeRepo struct {
	types []*model.IncidentType
}

func newMockIncidentTypeRepo() *mockIncidentTypeRepo {
	return &mockIncidentTypeRepo{}
}

func (m *mockIncidentTypeRepo) GetByID(_ context.Context, id string) (*model.IncidentType, error) {
	for _, it := range m.types {
		if it.IncidentTypeID == id {
			return it, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIncidentTypeRepo) ListByEvent(_ context.Context, eventID string) ([]model.IncidentType, error) {
	var result []model.IncidentType
	for _, it := range m.types {
		if it.EventID == eventID {
			result = append(result, *it)
		}
	}
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	// eventID → 分配到该事件的 userID 集合
	assignments map[string]map[string]bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:       make(map[string]*model.User),
		assignments: make(map[string]map[string]bool),
	}
}

func (m *mockUserRepo) assign(eventID, userID string) {
	if m.assignments[eventID] == nil {
		m.assignments[eventID] = make(map[string]bool)
	}
	m.assignments[eventID][userID] = true
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListStaffByEvent(_ context.Context, filter repository.StaffFilter) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.users {
		if !m.assignments[filter.EventID][u.UserID] {
			continue
		}
		if !model.IsStaffRole(u.Role) {
			continue
		}
		if filter.DepartmentID != "" && (u.DepartmentID == nil || *u.DepartmentID != filter.DepartmentID) {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(u.Name, filter.Keyword) {
			continue
		}
		matched = append(matched, *u)
	}
	total := int64(len(matched))
	return paginateUsers(matched, filter.Offset, filter.Limit), total, nil
}

func (m *mockUserRepo) ListGlobal(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var matched []model.User
	for _, u := range m.users {
		if model.IsGlobalRole(u.Role) {
			matched = append(matched, *u)
		}
	}
	total := int64(len(matched))
	return paginateUsers(matched, offset, limit), total, nil
}

func paginateUsers(users []model.User, offset, limit int) []model.User {
	if offset >= len(users) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(users) {
		end = len(users)
	}
	return users[offset:end]
}

// ── Mock EventContactRepository ──

type mockContactRepo struct {
	contacts []*model.EventContact
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{}
}

func (m *mockContactRepo) GetByID(_ context.Context, id string) (*model.EventContact, error) {
	for _, c := range m.contacts {
		if c.EventContactID == id {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockContactRepo) ListKeyContacts(_ context.Context, filter repository.ContactFilter) ([]model.EventContact, int64, error) {
	var matched []model.EventContact
	for _, c := range m.contacts {
		if c.EventID != filter.EventID || c.InfoType != model.InfoTypeKeyContact {
			continue
		}
		if filter.Keyword != "" && !strings.Contains(c.Name, filter.Keyword) {
			continue
		}
		matched = append(matched, *c)
	}
	total := int64(len(matched))
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	end := filter.Offset + filter.Limit
	if filter.Limit <= 0 || end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], total, nil
}

// ── Mock AlertRepository ──

// mockAlertRepo 在内存中模拟唯一索引与软删除语义。
// 关联计数需要跨表数据，持有其余 mock 仓库的引用。
type mockAlertRepo struct {
	alerts   []*model.Alert
	seq      int
	events   *mockEventRepo
	users    *mockUserRepo
	contacts *mockContactRepo
}

func newMockAlertRepo(events *mockEventRepo, users *mockUserRepo, contacts *mockContactRepo) *mockAlertRepo {
	return &mockAlertRepo{events: events, users: users, contacts: contacts}
}

func (m *mockAlertRepo) live(a *model.Alert) bool {
	return !a.DeletedAt.Valid
}

func sameSubject(a, b *model.Alert) bool {
	sa, errA := a.Subject()
	sb, errB := b.Subject()
	if errA != nil || errB != nil {
		return false
	}
	return sa.Key() == sb.Key()
}

func (m *mockAlertRepo) FindOrCreate(_ context.Context, alert *model.Alert) (bool, error) {
	for _, existing := range m.alerts {
		if !m.live(existing) {
			continue
		}
		if existing.EventID == alert.EventID &&
			existing.TriggerType == alert.TriggerType &&
			existing.TriggerID == alert.TriggerID &&
			sameSubject(existing, alert) {
			*alert = *existing
			return false, nil
		}
	}

	m.seq++
	alert.AlertID = fmt.Sprintf("alert-%03d", m.seq)
	alert.CreatedAt = time.Now()
	alert.UpdatedAt = alert.CreatedAt
	m.alerts = append(m.alerts, alert)
	return true, nil
}

func (m *mockAlertRepo) GetByID(_ context.Context, id string) (*model.Alert, error) {
	for _, a := range m.alerts {
		if a.AlertID == id && m.live(a) {
			copied := *a
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) Update(_ context.Context, alert *model.Alert) error {
	for i, a := range m.alerts {
		if a.AlertID == alert.AlertID {
			copied := *alert
			m.alerts[i] = &copied
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockAlertRepo) Delete(_ context.Context, id string, deletedBy string) error {
	for _, a := range m.alerts {
		if a.AlertID == id && m.live(a) {
			a.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
			a.DeletedBy = &deletedBy
		}
	}
	return nil
}

func (m *mockAlertRepo) ListByEvent(_ context.Context, eventID string, triggerType model.TriggerType) ([]model.Alert, error) {
	var result []model.Alert
	for _, a := range m.alerts {
		if !m.live(a) || a.EventID != eventID {
			continue
		}
		if triggerType != "" && a.TriggerType != triggerType {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAlertRepo) ListBySubject(_ context.Context, eventID string, triggerType model.TriggerType, subject model.Subject) ([]model.Alert, error) {
	var result []model.Alert
	for _, a := range m.alerts {
		if !m.live(a) || a.EventID != eventID || a.TriggerType != triggerType {
			continue
		}
		s, err := a.Subject()
		if err != nil || s.Key() != subject.Key() {
			continue
		}
		result = append(result, *a)
	}
	return result, nil
}

func (m *mockAlertRepo) DeleteBySubject(_ context.Context, eventID string, triggerType model.TriggerType, subject model.Subject, deletedBy string) (int64, error) {
	var removed int64
	for _, a := range m.alerts {
		if !m.live(a) || a.EventID != eventID || a.TriggerType != triggerType {
			continue
		}
		s, err := a.Subject()
		if err != nil || s.Key() != subject.Key() {
			continue
		}
		a.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		a.DeletedBy = &deletedBy
		removed++
	}
	return removed, nil
}

func (m *mockAlertRepo) DeleteByTrigger(_ context.Context, eventID, triggerID, deletedBy string) (int64, error) {
	var removed int64
	for _, a := range m.alerts {
		if !m.live(a) || a.EventID != eventID || a.TriggerID != triggerID {
			continue
		}
		a.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
		a.DeletedBy = &deletedBy
		removed++
	}
	return removed, nil
}

func (m *mockAlertRepo) CountDistinctKeyContacts(ctx context.Context, eventID string, triggerType model.TriggerType) (int64, error) {
	event, ok := m.events.events[eventID]
	if !ok {
		return 0, nil
	}
	distinct := make(map[string]bool)
	for _, a := range m.alerts {
		if !m.live(a) || a.EventID != eventID || a.TriggerType != triggerType || a.EventContactID == nil {
			continue
		}
		contact, err := m.contacts.GetByID(ctx, *a.EventContactID)
		if err != nil {
			continue
		}
		if contact.InfoType != model.InfoTypeKeyContact || contact.CompanyID != event.CompanyID {
			continue
		}
		distinct[contact.EventContactID] = true
	}
	return int64(len(distinct)), nil
}

func (m *mockAlertRepo) CountDistinctStaff(_ context.Context, eventID string, triggerType model.TriggerType) (int64, error) {
	event, ok := m.events.events[eventID]
	if !ok {
		return 0, nil
	}
	distinct := make(map[string]bool)
	for _, a := range m.alerts {
		if !m.live(a) || a.EventID != eventID || a.TriggerType != triggerType || a.UserID == nil {
			continue
		}
		user, ok := m.users.users[*a.UserID]
		if !ok {
			continue
		}
		// 口径：在职（有部门）、公司一致、员工角色、仍分配在该事件
		if user.DepartmentID == nil || user.CompanyID != event.CompanyID {
			continue
		}
		if !model.IsStaffRole(user.Role) {
			continue
		}
		if !m.users.assignments[eventID][user.UserID] {
			continue
		}
		distinct[user.UserID] = true
	}
	return int64(len(distinct)), nil
}

// ── Mock Publisher ──

// publishedMessage 记录一次发布调用，测试断言推送信封
type publishedMessage struct {
	Channel string
	Events  []string
	Payload dto.AlertBroadcast
}

type mockPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
}

func newMockPublisher() *mockPublisher {
	return &mockPublisher{}
}

func (m *mockPublisher) Publish(_ context.Context, channel string, eventNames []string, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	envelope, _ := payload.(dto.AlertBroadcast)
	m.messages = append(m.messages, publishedMessage{
		Channel: channel,
		Events:  eventNames,
		Payload: envelope,
	})
	return nil
}

func (m *mockPublisher) last() *publishedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return nil
	}
	return &m.messages[len(m.messages)-1]
}

// ── 测试夹具 ──

// testFixture 聚合全套内存 mock 与被测服务
type testFixture struct {
	events   *mockEventRepo
	guides   *mockGuideRepo
	itypes   *mockIncidentTypeRepo
	users    *mockUserRepo
	contacts *mockContactRepo
	alerts   *mockAlertRepo
	pub      *mockPublisher
	svc      *Service
}

func newTestFixture() *testFixture {
	events := newMockEventRepo()
	guides := newMockGuideRepo()
	itypes := newMockIncidentTypeRepo()
	users := newMockUserRepo()
	contacts := newMockContactRepo()
	alerts := newMockAlertRepo(events, users, contacts)
	pub := newMockPublisher()

	repo := &repository.Repository{
		Alert:         alerts,
		PriorityGuide: guides,
		IncidentType:  itypes,
		Event:         events,
		User:          users,
		EventContact:  contacts,
	}
	cfg := &config.Config{
		Realtime: config.RealtimeConfig{
			ChannelPrefix: "incident-channel-",
			EventName:     "incident-setup",
		},
	}
	logger := zap.NewNop()
	svc := NewService(cfg, repo, pub, logger)

	return &testFixture{
		events:   events,
		guides:   guides,
		itypes:   itypes,
		users:    users,
		contacts: contacts,
		alerts:   alerts,
		pub:      pub,
		svc:      svc,
	}
}

// ── 造数辅助 ──

func (f *testFixture) addEvent(id, companyID string) {
	f.events.events[id] = &model.Event{EventID: id, CompanyID: companyID, Name: "事件-" + id}
}

func (f *testFixture) addGuide(id, eventID string, rank int, name string) {
	f.guides.guides = append(f.guides.guides, &model.PriorityGuide{
		PriorityGuideID: id,
		EventID:         eventID,
		Name:            name,
		Rank:            rank,
	})
}

func (f *testFixture) addIncidentType(id, eventID, name string) {
	f.itypes.types = append(f.itypes.types, &model.IncidentType{
		IncidentTypeID: id,
		EventID:        eventID,
		Name:           name,
	})
}

func (f *testFixture) addStaff(id, eventID, companyID, deptID, role string) {
	dept := deptID
	f.users.users[id] = &model.User{
		UserID:       id,
		CompanyID:    companyID,
		DepartmentID: &dept,
		Name:         "员工-" + id,
		Email:        id + "@example.com",
		Role:         role,
	}
	f.users.assign(eventID, id)
}

func (f *testFixture) addKeyContact(id, eventID, companyID string) {
	f.contacts.contacts = append(f.contacts.contacts, &model.EventContact{
		EventContactID: id,
		EventID:        eventID,
		CompanyID:      companyID,
		Name:           "联系人-" + id,
		InfoType:       model.InfoTypeKeyContact,
	})
}

// [自证通过] internal/service/mock_repos_test.go
