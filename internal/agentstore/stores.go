package agentstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/specification"
	"ai-coaching-be/internal/repository/unitofwork"
	"ai-coaching-be/pkg/agent/dispatch"

	"github.com/google/uuid"
)

// Stores binds the agent dispatcher's store interfaces to the gorm
// repositories for a single user. One bundle is built per turn so every
// mutation is scoped to the authenticated user.
type Stores struct {
	Tasks        dispatch.TaskStore
	Notes        dispatch.NoteStore
	Interactions dispatch.InteractionStore
	Wants        dispatch.WantStore
	Scope        dispatch.ScopeStore
}

func New(factory unitofwork.RepositoryFactory, userID uuid.UUID) *Stores {
	return &Stores{
		Tasks:        &taskStore{factory: factory, userID: userID},
		Notes:        &noteStore{factory: factory, userID: userID},
		Interactions: &interactionStore{factory: factory, userID: userID},
		Wants:        &wantStore{factory: factory, userID: userID},
		Scope:        &scopeStore{factory: factory, userID: userID},
	}
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q: %w", field, raw, err)
	}
	return id, nil
}

func parseOptionalID(field, raw string) (*uuid.UUID, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := parseID(field, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseDate accepts "YYYY-MM-DD"; empty means today.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", raw, err)
	}
	return day, nil
}

type taskStore struct {
	factory unitofwork.RepositoryFactory
	userID  uuid.UUID
}

func (s *taskStore) Create(ctx context.Context, p dispatch.TaskCreate) error {
	contactID, err := parseOptionalID("contactId", p.ContactID)
	if err != nil {
		return err
	}
	dueDate, err := parseDate(p.DueDate)
	if err != nil {
		return err
	}

	uow := s.factory.NewUnitOfWork(ctx)
	task := &entity.Task{
		Id:          uuid.New(),
		UserId:      s.userID,
		Title:       p.Title,
		Description: p.Description,
		ContactId:   contactID,
		DueDate:     dueDate,
		Status:      entity.TaskStatusOpen,
		CreatedAt:   time.Now(),
	}
	return uow.TaskRepository().Create(ctx, task)
}

func (s *taskStore) Update(ctx context.Context, p dispatch.TaskUpdate) error {
	taskID, err := parseID("taskId", p.TaskID)
	if err != nil {
		return err
	}

	uow := s.factory.NewUnitOfWork(ctx)
	task, err := uow.TaskRepository().FindOne(ctx,
		specification.ByID{ID: taskID},
		specification.UserOwnedBy{UserID: s.userID},
	)
	if err != nil {
		return err
	}
	if task == nil {
		return fmt.Errorf("task %s not found", taskID)
	}

	if p.Title != "" {
		task.Title = p.Title
	}
	if p.Description != "" {
		task.Description = p.Description
	}
	if p.Status != "" {
		task.Status = entity.TaskStatus(p.Status)
	}
	return uow.TaskRepository().Update(ctx, task)
}

type noteStore struct {
	factory unitofwork.RepositoryFactory
	userID  uuid.UUID
}

func (s *noteStore) Create(ctx context.Context, p dispatch.NoteCreate) error {
	contactID, err := parseOptionalID("contactId", p.ContactID)
	if err != nil {
		return err
	}

	uow := s.factory.NewUnitOfWork(ctx)
	note := &entity.Note{
		Id:        uuid.New(),
		UserId:    s.userID,
		ContactId: contactID,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: time.Now(),
	}
	return uow.NoteRepository().Create(ctx, note)
}

type interactionStore struct {
	factory unitofwork.RepositoryFactory
	userID  uuid.UUID
}

func (s *interactionStore) Create(ctx context.Context, p dispatch.InteractionCreate) error {
	contactID, err := parseOptionalID("contactId", p.ContactID)
	if err != nil {
		return err
	}

	uow := s.factory.NewUnitOfWork(ctx)
	interaction := &entity.Interaction{
		Id:         uuid.New(),
		UserId:     s.userID,
		ContactId:  contactID,
		Kind:       p.Kind,
		Summary:    p.Summary,
		OccurredAt: time.Now(),
		CreatedAt:  time.Now(),
	}
	return uow.InteractionRepository().Create(ctx, interaction)
}

type wantStore struct {
	factory unitofwork.RepositoryFactory
	userID  uuid.UUID
}

func (s *wantStore) ownedWant(ctx context.Context, uow unitofwork.UnitOfWork, rawID string) (*entity.Want, error) {
	wantID, err := parseID("wantId", rawID)
	if err != nil {
		return nil, err
	}
	want, err := uow.WantRepository().FindOne(ctx,
		specification.ByID{ID: wantID},
		specification.UserOwnedBy{UserID: s.userID},
	)
	if err != nil {
		return nil, err
	}
	if want == nil {
		return nil, fmt.Errorf("want %s not found", wantID)
	}
	return want, nil
}

func (s *wantStore) Create(ctx context.Context, p dispatch.WantCreate) error {
	uow := s.factory.NewUnitOfWork(ctx)
	want := &entity.Want{
		Id:          uuid.New(),
		UserId:      s.userID,
		Title:       p.Title,
		Description: p.Description,
		Status:      entity.WantStatusActive,
		CreatedAt:   time.Now(),
	}
	return uow.WantRepository().Create(ctx, want)
}

func (s *wantStore) Update(ctx context.Context, p dispatch.WantUpdate) error {
	uow := s.factory.NewUnitOfWork(ctx)
	want, err := s.ownedWant(ctx, uow, p.WantID)
	if err != nil {
		return err
	}

	if p.Title != "" {
		want.Title = p.Title
	}
	if p.Description != "" {
		want.Description = p.Description
	}
	if p.Status != "" {
		want.Status = entity.WantStatus(p.Status)
	}
	return uow.WantRepository().Update(ctx, want)
}

func (s *wantStore) AddStep(ctx context.Context, wantID, step string) error {
	uow := s.factory.NewUnitOfWork(ctx)
	want, err := s.ownedWant(ctx, uow, wantID)
	if err != nil {
		return err
	}

	existing, err := uow.WantRepository().FindSteps(ctx, specification.ByWantID{WantID: want.Id})
	if err != nil {
		return err
	}

	return uow.WantRepository().CreateStep(ctx, &entity.WantStep{
		Id:          uuid.New(),
		WantId:      want.Id,
		Description: step,
		Position:    len(existing),
		CreatedAt:   time.Now(),
	})
}

func (s *wantStore) AddMetricType(ctx context.Context, wantID, name, unit string) error {
	uow := s.factory.NewUnitOfWork(ctx)
	want, err := s.ownedWant(ctx, uow, wantID)
	if err != nil {
		return err
	}

	return uow.WantRepository().CreateMetricType(ctx, &entity.WantMetricType{
		Id:        uuid.New(),
		WantId:    want.Id,
		Name:      name,
		Unit:      unit,
		CreatedAt: time.Now(),
	})
}

// LogMetricValue replaces the value recorded for (metric, day). A metric
// name the want has never seen creates the type on the fly.
func (s *wantStore) LogMetricValue(ctx context.Context, wantID, metric string, value float64, date string) error {
	return s.LogMetrics(ctx, wantID, map[string]float64{metric: value}, date)
}

// LogMetrics writes every (metric, day) bucket inside one transaction. A
// failure midway rolls the whole batch back, so no bucket is ever left
// emptied without its replacement value.
func (s *wantStore) LogMetrics(ctx context.Context, wantID string, values map[string]float64, date string) error {
	day, err := parseDate(date)
	if err != nil {
		return err
	}

	uow := s.factory.NewUnitOfWork(ctx)
	want, err := s.ownedWant(ctx, uow, wantID)
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	for metric, value := range values {
		if err := s.replaceMetricBucket(ctx, uow, want.Id, metric, value, day); err != nil {
			return err
		}
	}
	return uow.Commit()
}

func (s *wantStore) replaceMetricBucket(ctx context.Context, uow unitofwork.UnitOfWork, wantID uuid.UUID, metric string, value float64, day time.Time) error {
	types, err := uow.WantRepository().FindMetricTypes(ctx, specification.ByWantID{WantID: wantID})
	if err != nil {
		return err
	}

	var metricType *entity.WantMetricType
	for _, t := range types {
		if strings.EqualFold(t.Name, metric) {
			metricType = t
			break
		}
	}
	if metricType == nil {
		metricType = &entity.WantMetricType{
			Id:        uuid.New(),
			WantId:    wantID,
			Name:      metric,
			CreatedAt: time.Now(),
		}
		if err := uow.WantRepository().CreateMetricType(ctx, metricType); err != nil {
			return err
		}
	}

	if err := uow.WantRepository().DeleteMetricValuesForDate(ctx, metricType.Id, day); err != nil {
		return err
	}

	return uow.WantRepository().CreateMetricValue(ctx, &entity.WantMetricValue{
		Id:           uuid.New(),
		MetricTypeId: metricType.Id,
		Value:        value,
		RecordedAt:   day,
	})
}

func (s *wantStore) LogIteration(ctx context.Context, wantID, note string) error {
	uow := s.factory.NewUnitOfWork(ctx)
	want, err := s.ownedWant(ctx, uow, wantID)
	if err != nil {
		return err
	}

	return uow.WantRepository().CreateIteration(ctx, &entity.WantIteration{
		Id:        uuid.New(),
		WantId:    want.Id,
		Summary:   note,
		CreatedAt: time.Now(),
	})
}

func (s *wantStore) AttachPrimaryContact(ctx context.Context, wantID, contactID, bearing string) error {
	cid, err := parseID("contactId", contactID)
	if err != nil {
		return err
	}

	uow := s.factory.NewUnitOfWork(ctx)
	want, err := s.ownedWant(ctx, uow, wantID)
	if err != nil {
		return err
	}

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: cid},
		specification.UserOwnedBy{UserID: s.userID},
	)
	if err != nil {
		return err
	}
	if contact == nil {
		return fmt.Errorf("contact %s not found", cid)
	}

	want.PrimaryContactId = &contact.Id
	want.ContactBearing = bearing
	return uow.WantRepository().Update(ctx, want)
}

func (s *wantStore) DetachPrimaryContact(ctx context.Context, wantID string) error {
	uow := s.factory.NewUnitOfWork(ctx)
	want, err := s.ownedWant(ctx, uow, wantID)
	if err != nil {
		return err
	}

	want.PrimaryContactId = nil
	want.ContactBearing = ""
	return uow.WantRepository().Update(ctx, want)
}

func (s *wantStore) CreateRejectedShould(ctx context.Context, title, reason string) error {
	uow := s.factory.NewUnitOfWork(ctx)
	return uow.WantRepository().CreateRejectedShould(ctx, &entity.RejectedShould{
		Id:        uuid.New(),
		UserId:    s.userID,
		Title:     title,
		Reason:    reason,
		CreatedAt: time.Now(),
	})
}

type scopeStore struct {
	factory unitofwork.RepositoryFactory
	userID  uuid.UUID
}

func (s *scopeStore) LogIterationEntry(ctx context.Context, content string) error {
	uow := s.factory.NewUnitOfWork(ctx)
	return uow.ScopeRepository().Create(ctx, &entity.ScopeEntry{
		Id:        uuid.New(),
		UserId:    s.userID,
		Kind:      entity.ScopeEntryIteration,
		Content:   content,
		CreatedAt: time.Now(),
	})
}

func (s *scopeStore) AddDoctrineNote(ctx context.Context, content string) error {
	uow := s.factory.NewUnitOfWork(ctx)
	return uow.ScopeRepository().Create(ctx, &entity.ScopeEntry{
		Id:        uuid.New(),
		UserId:    s.userID,
		Kind:      entity.ScopeEntryDoctrineNote,
		Content:   content,
		CreatedAt: time.Now(),
	})
}
