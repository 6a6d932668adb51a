package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/david021dp/salon-booking/internal/domain"
	"github.com/david021dp/salon-booking/internal/service/availability"
	"github.com/david021dp/salon-booking/internal/usecase/usecasetest"
	"github.com/david021dp/salon-booking/pkg/metrics"
	"github.com/david021dp/salon-booking/pkg/ptr"
	"github.com/david021dp/salon-booking/pkg/types"
)

var belgrade, _ = time.LoadLocation("Europe/Belgrade")

type testEnv struct {
	store    *usecasetest.Store
	catalog  *usecasetest.Catalog
	users    *usecasetest.Users
	notifier *usecasetest.Notifier
	activity *usecasetest.ActivityLog
	outcomes *usecasetest.Outcomes
	uc       *UseCase

	worker  domain.Actor
	haircut uuid.UUID
	color   uuid.UUID
	now     time.Time
	target  time.Time
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:    usecasetest.NewStore(),
		catalog:  usecasetest.NewCatalog(),
		users:    usecasetest.NewUsers(),
		notifier: &usecasetest.Notifier{},
		activity: &usecasetest.ActivityLog{},
		outcomes: &usecasetest.Outcomes{},
		now:      time.Date(2025, 3, 14, 10, 0, 0, 0, belgrade),
		target:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
	}

	env.worker = env.users.AddAdmin("Jelena", "Markovic", "jelena@salon.rs")
	env.haircut = env.catalog.Add("Haircut", 45)
	env.color = env.catalog.Add("Coloring", 90)
	env.store.SetNow(func() time.Time { return env.now })

	env.uc = NewUseCase(env.store, env.catalog, env.users, usecasetest.TxManager{}, env.notifier, env.activity, env.outcomes,
		Options{Location: belgrade, DailyClientLimit: 3}, usecasetest.Logger{})
	env.uc.timeProvider = usecasetest.Clock{T: env.now}

	return env
}

func (e *testEnv) clientRequest(start string, services ...uuid.UUID) *Request {
	if len(services) == 0 {
		services = []uuid.UUID{e.haircut}
	}
	return &Request{
		Actor:      domain.Actor{ID: uuid.New(), Role: domain.RoleClient},
		WorkerID:   e.worker.ID,
		ServiceIDs: services,
		Date:       e.target,
		StartTime:  types.TimeString(start),
		FirstName:  "Ana",
		LastName:   "Petrovic",
		Phone:      ptr.Ptr("+381 (64) 123-4567"),
		Email:      "ana@example.com",
	}
}

func (e *testEnv) seed(start string, duration int) *domain.Appointment {
	return e.store.Seed(&domain.Appointment{
		UserID:          uuid.New(),
		WorkerID:        e.worker.ID,
		Date:            e.target,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		CreatedAt:       e.now.AddDate(0, 0, -7),
	})
}

func TestExecute_ClientCreatesAppointment(t *testing.T) {
	env := newEnv(t)

	a, err := env.uc.Execute(context.Background(), env.clientRequest("10:00", env.haircut, env.color))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.Equal(t, "Haircut, Coloring", a.ServiceName)
	assert.Equal(t, 135, a.DurationMinutes)
	assert.Equal(t, "Jelena Markovic", a.WorkerName)
	assert.Equal(t, "ana@example.com", a.Email)
	assert.Equal(t, "+381641234567", *a.Phone)
	assert.Equal(t, domain.StatusScheduled, a.Status)
	assert.Equal(t, domain.KindAppointment, a.Kind)
	assert.False(t, a.IsRescheduled)

	require.Equal(t, 1, env.notifier.Count())
	assert.Equal(t, env.worker.ID, env.notifier.Sent[0].RecipientID)
	assert.Equal(t, domain.NotificationCreated, env.notifier.Sent[0].Kind)
	assert.Equal(t, 1, env.outcomes.Get(operation, metrics.OutcomeCreated))
}

func TestExecute_AdminCreatesWithOwnEmail(t *testing.T) {
	env := newEnv(t)
	admin := env.users.AddAdmin("Marko", "Ilic", "marko@salon.rs")

	req := env.clientRequest("12:00")
	req.Actor = admin
	req.Email = ""

	a, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, a.UserID)
	assert.Equal(t, "marko@salon.rs", a.Email)
	assert.Equal(t, 1, env.notifier.Count())
}

func TestExecute_UserServiceDown(t *testing.T) {
	env := newEnv(t)
	admin := env.users.AddAdmin("Marko", "Ilic", "marko@salon.rs")
	env.users.Down = true

	req := env.clientRequest("12:00")
	req.Actor = admin

	a, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.FallbackAdminEmail, a.Email)
	assert.Empty(t, a.WorkerName)
}

func TestExecute_Conflicts(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		wantErr error
	}{
		{name: "exact start", start: "10:00", wantErr: ErrSlotNotAvailable},
		{name: "starts inside existing", start: "10:30", wantErr: ErrSlotNotAvailable},
		{name: "runs into existing", start: "09:30", wantErr: ErrSlotNotAvailable},
		{name: "touches end", start: "11:00"},
		{name: "ends at start", start: "09:15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			env.seed("10:00", 60)

			_, err := env.uc.Execute(context.Background(), env.clientRequest(tt.start))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 1, env.outcomes.Get(operation, metrics.OutcomeConflict))
				assert.Zero(t, env.notifier.Count())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestExecute_ValidationCollectsEveryField(t *testing.T) {
	env := newEnv(t)

	req := env.clientRequest("10:10")
	req.ServiceIDs = nil
	req.FirstName = "Ana1"
	req.LastName = ""
	req.Phone = ptr.Ptr("12")
	req.Email = "not-an-email"

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidInput)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))

	fields := make([]string, 0, len(verr.Violations))
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"serviceIds", "startTime", "firstName", "lastName", "phone", "email"}, fields)
	assert.Zero(t, env.store.Len())
}

func TestExecute_WindowMustEndByClosing(t *testing.T) {
	env := newEnv(t)

	_, err := env.uc.Execute(context.Background(), env.clientRequest("20:30", env.haircut))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.uc.Execute(context.Background(), env.clientRequest("20:15", env.haircut))
	assert.NoError(t, err)
}

func TestExecute_PastGuard(t *testing.T) {
	env := newEnv(t)

	yesterday := env.clientRequest("12:00")
	yesterday.Date = time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	_, err := env.uc.Execute(context.Background(), yesterday)
	assert.ErrorIs(t, err, ErrInvalidInput)

	earlierToday := env.clientRequest("09:30")
	earlierToday.Date = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	_, err = env.uc.Execute(context.Background(), earlierToday)
	assert.ErrorIs(t, err, ErrInvalidInput)

	laterToday := env.clientRequest("10:15")
	laterToday.Date = time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	_, err = env.uc.Execute(context.Background(), laterToday)
	assert.NoError(t, err)

	adminPast := env.clientRequest("12:00")
	adminPast.Actor = env.worker
	adminPast.Date = time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC)
	_, err = env.uc.Execute(context.Background(), adminPast)
	assert.NoError(t, err)
}

func TestExecute_UnknownServiceOrWorker(t *testing.T) {
	env := newEnv(t)

	_, err := env.uc.Execute(context.Background(), env.clientRequest("10:00", uuid.New()))
	assert.ErrorIs(t, err, ErrServiceNotFound)

	req := env.clientRequest("10:00")
	req.WorkerID = uuid.New()
	_, err = env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestExecute_DailyLimit(t *testing.T) {
	env := newEnv(t)
	client := domain.Actor{ID: uuid.New(), Role: domain.RoleClient}

	// вчерашняя запись по времени салона в лимит не входит
	env.store.Seed(&domain.Appointment{
		UserID:    client.ID,
		WorkerID:  env.worker.ID,
		Date:      env.target,
		StartTime: "19:00",
		CreatedAt: time.Date(2025, 3, 13, 23, 59, 0, 0, belgrade),
	})

	for _, start := range []string{"10:00", "12:00", "14:00"} {
		req := env.clientRequest(start)
		req.Actor = client
		_, err := env.uc.Execute(context.Background(), req)
		require.NoError(t, err, start)
	}

	fourth := env.clientRequest("16:00")
	fourth.Actor = client
	fourth.Date = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_, err := env.uc.Execute(context.Background(), fourth)
	assert.ErrorIs(t, err, ErrDailyLimitExceeded)
	assert.Equal(t, 1, env.outcomes.Get(operation, metrics.OutcomeLimitExceeded))

	// админ лимитом не ограничен
	admin := env.clientRequest("16:00")
	admin.Actor = env.worker
	_, err = env.uc.Execute(context.Background(), admin)
	assert.NoError(t, err)
}

func TestExecute_DailyLimitUnderConcurrentCreates(t *testing.T) {
	env := newEnv(t)
	env.uc.txManager = &usecasetest.SerialTxManager{}
	client := domain.Actor{ID: uuid.New(), Role: domain.RoleClient}

	starts := []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00"}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		limited   int
	)

	begin := make(chan struct{})
	for _, s := range starts {
		wg.Add(1)
		go func(start string) {
			defer wg.Done()
			<-begin

			req := env.clientRequest(start)
			req.Actor = client
			_, err := env.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrDailyLimitExceeded):
				limited++
			}
		}(s)
	}

	close(begin)
	wg.Wait()

	assert.Equal(t, 3, successes)
	assert.Equal(t, 3, limited)
	assert.Equal(t, 3, env.store.Len())
	assert.Equal(t, 3, env.outcomes.Get(operation, metrics.OutcomeLimitExceeded))
}

func TestExecute_ConcurrentCreatesForSameSlot(t *testing.T) {
	env := newEnv(t)
	const attempts = 20

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	start := make(chan struct{})
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start

			_, err := env.uc.Execute(context.Background(), env.clientRequest("15:00"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSlotNotAvailable):
				conflicts++
			}
		}()
	}

	close(start)
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
	assert.Equal(t, 1, env.store.Len())
}

func TestExecute_AvailableSlotsCanBeBooked(t *testing.T) {
	layout := func(env *testEnv) {
		env.seed("10:00", 60)
		env.seed("13:15", 20)
		env.seed("18:00", 45)
	}

	seeded := newEnv(t)
	layout(seeded)
	existing, err := seeded.store.ListByWorker(context.Background(), domain.WorkerAppointmentsFilter{WorkerID: seeded.worker.ID})
	require.NoError(t, err)

	for _, slot := range availability.Classify(existing, 45) {
		env := newEnv(t)
		layout(env)

		_, err := env.uc.Execute(context.Background(), env.clientRequest(slot.StartTime.String()))
		if slot.IsAvailable() {
			assert.NoError(t, err, "slot %s is shown as available", slot.StartTime)
		} else {
			assert.Error(t, err, "slot %s is shown as %s", slot.StartTime, slot.Status)
		}
	}
}

func TestExecute_AdminCreateIsRecorded(t *testing.T) {
	env := newEnv(t)

	req := env.clientRequest("10:00")
	req.Actor = env.worker
	created, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, []domain.AdminAction{domain.AdminActionCreateAppointment}, env.activity.Actions())
	entry := env.activity.Entries[0]
	assert.Equal(t, env.worker.ID, entry.AdminID)
	assert.Equal(t, created.ID.String(), entry.Details["appointment_id"])
	assert.Equal(t, "Ana Petrovic", entry.Details["client_name"])

	// клиентские записи в журнал не попадают
	_, err = env.uc.Execute(context.Background(), env.clientRequest("12:00"))
	require.NoError(t, err)
	assert.Len(t, env.activity.Entries, 1)
}

func TestExecute_AdminCreateFailsWhenActivityLogFails(t *testing.T) {
	env := newEnv(t)
	env.activity.Err = errors.New("insert failed")

	req := env.clientRequest("10:00")
	req.Actor = env.worker
	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Zero(t, env.notifier.Count())
}
