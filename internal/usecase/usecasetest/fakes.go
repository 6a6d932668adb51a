package usecasetest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/integrations/userservice"
	"github.com/david021dp/salon-booking/internal/service/catalog"
)

// TxManager выполняет функцию без транзакции: атомарность дает Store
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// SerialTxManager выполняет функции строго по очереди: так ведут себя
// SERIALIZABLE транзакции после повторов
type SerialTxManager struct {
	mu sync.Mutex
}

func (m *SerialTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

func (m *SerialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// Catalog разрешает услуги из фиксированного списка
type Catalog struct {
	Services map[uuid.UUID]*domain.Service
}

// NewCatalog каталог из переданных услуг
func NewCatalog(services ...*domain.Service) *Catalog {
	c := &Catalog{Services: make(map[uuid.UUID]*domain.Service, len(services))}
	for _, s := range services {
		c.Services[s.ID] = s
	}
	return c
}

// Add добавляет услугу и возвращает ее ID
func (c *Catalog) Add(name string, duration int) uuid.UUID {
	id := uuid.New()
	c.Services[id] = &domain.Service{ID: id, Name: name, DurationMinutes: duration}
	return id
}

func (c *Catalog) Resolve(_ context.Context, ids []uuid.UUID) (*catalog.Selection, error) {
	if len(ids) == 0 {
		return nil, catalog.ErrNoServices
	}

	selected := make([]*domain.Service, 0, len(ids))
	for _, id := range ids {
		s, ok := c.Services[id]
		if !ok {
			return nil, catalog.ErrServiceNotFound
		}
		selected = append(selected, s)
	}

	name, duration := domain.CombineServices(selected)
	return &catalog.Selection{Services: selected, Name: name, DurationMinutes: duration}, nil
}

// Users справочник пользователей; Down имитирует недоступность UserService
type Users struct {
	Users map[uuid.UUID]*userservice.User
	Down  bool
}

// NewUsers пустой справочник
func NewUsers() *Users {
	return &Users{Users: make(map[uuid.UUID]*userservice.User)}
}

// AddAdmin добавляет админа (мастера) и возвращает его как Actor
func (u *Users) AddAdmin(first, last, email string) domain.Actor {
	id := uuid.New()
	u.Users[id] = &userservice.User{ID: id, FirstName: first, LastName: last, Email: email, Role: string(domain.RoleAdmin)}
	return domain.Actor{ID: id, Role: domain.RoleAdmin}
}

func (u *Users) GetUserWithGracefulDegradation(_ context.Context, id uuid.UUID) (*userservice.User, error) {
	if u.Down {
		return nil, userservice.ErrServiceDegraded
	}
	user, ok := u.Users[id]
	if !ok {
		return nil, userservice.ErrUserNotFound
	}
	return user, nil
}

// Notifier запоминает отправленные уведомления
type Notifier struct {
	mu   sync.Mutex
	Sent []*domain.Notification
}

func (n *Notifier) Notify(_ context.Context, notification *domain.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, notification)
}

// Count количество отправленных уведомлений
func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Sent)
}

// ActivityLog журнал действий админов в памяти. Err заставляет Create падать.
type ActivityLog struct {
	mu      sync.Mutex
	Entries []*domain.AdminActivity
	Err     error
}

func (l *ActivityLog) Create(_ context.Context, entry *domain.AdminActivity) (*domain.AdminActivity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Err != nil {
		return nil, l.Err
	}
	entry.ID = uuid.New()
	l.Entries = append(l.Entries, entry)
	return entry, nil
}

// Actions действия в порядке записи
func (l *ActivityLog) Actions() []domain.AdminAction {
	l.mu.Lock()
	defer l.mu.Unlock()
	actions := make([]domain.AdminAction, 0, len(l.Entries))
	for _, e := range l.Entries {
		actions = append(actions, e.Action)
	}
	return actions
}

// Outcomes считает исходы операций
type Outcomes struct {
	mu     sync.Mutex
	counts map[string]int
}

func (o *Outcomes) RecordOutcome(operation, outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.counts == nil {
		o.counts = make(map[string]int)
	}
	o.counts[operation+"/"+outcome]++
}

// Get сколько раз был записан исход
func (o *Outcomes) Get(operation, outcome string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.counts[operation+"/"+outcome]
}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c Clock) Now() time.Time {
	return c.T
}

// Logger ничего не пишет
type Logger struct{}

func (Logger) Info(string, ...interface{})  {}
func (Logger) Warn(string, ...interface{})  {}
func (Logger) Error(string, ...interface{}) {}
