package agentstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-coaching-be/internal/entity"
	"ai-coaching-be/internal/repository/contract"
	"ai-coaching-be/internal/repository/specification"
	"ai-coaching-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// fakeWantRepo records metric mutations so tests can assert transaction
// boundaries around the delete and insert calls.
type fakeWantRepo struct {
	contract.WantRepository

	want        *entity.Want
	metricTypes []*entity.WantMetricType

	deletes       int
	inserts       []*entity.WantMetricValue
	insertFailure error
}

func (r *fakeWantRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.Want, error) {
	return r.want, nil
}

func (r *fakeWantRepo) FindMetricTypes(_ context.Context, _ ...specification.Specification) ([]*entity.WantMetricType, error) {
	return r.metricTypes, nil
}

func (r *fakeWantRepo) CreateMetricType(_ context.Context, mt *entity.WantMetricType) error {
	r.metricTypes = append(r.metricTypes, mt)
	return nil
}

func (r *fakeWantRepo) DeleteMetricValuesForDate(_ context.Context, _ uuid.UUID, _ time.Time) error {
	r.deletes++
	return nil
}

func (r *fakeWantRepo) CreateMetricValue(_ context.Context, v *entity.WantMetricValue) error {
	if r.insertFailure != nil {
		return r.insertFailure
	}
	r.inserts = append(r.inserts, v)
	return nil
}

type fakeUnitOfWork struct {
	unitofwork.UnitOfWork

	wants *fakeWantRepo

	began      bool
	committed  bool
	rolledBack bool
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error {
	u.began = true
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	u.committed = true
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}

func (u *fakeUnitOfWork) WantRepository() contract.WantRepository {
	return u.wants
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(_ context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newMetricFixture(insertFailure error) (*wantStore, *fakeUnitOfWork, *entity.Want) {
	userID := uuid.New()
	want := &entity.Want{Id: uuid.New(), UserId: userID, Title: "Run a half marathon"}
	uow := &fakeUnitOfWork{wants: &fakeWantRepo{want: want, insertFailure: insertFailure}}
	store := &wantStore{factory: &fakeFactory{uow: uow}, userID: userID}
	return store, uow, want
}

func TestLogMetricValueReplacesBucketInOneTransaction(t *testing.T) {
	store, uow, want := newMetricFixture(nil)

	err := store.LogMetricValue(context.Background(), want.Id.String(), "weekly distance", 21.5, "2026-08-30")
	if err != nil {
		t.Fatal(err)
	}

	if !uow.began || !uow.committed {
		t.Fatalf("began = %v, committed = %v, want both", uow.began, uow.committed)
	}
	if uow.wants.deletes != 1 {
		t.Errorf("deletes = %d, want 1", uow.wants.deletes)
	}
	if len(uow.wants.inserts) != 1 || uow.wants.inserts[0].Value != 21.5 {
		t.Fatalf("inserts = %+v, want one value 21.5", uow.wants.inserts)
	}
	if len(uow.wants.metricTypes) != 1 {
		t.Errorf("metric types = %d, want one created on the fly", len(uow.wants.metricTypes))
	}
}

func TestLogMetricValueRollsBackWhenInsertFails(t *testing.T) {
	store, uow, want := newMetricFixture(errors.New("insert rejected"))

	err := store.LogMetricValue(context.Background(), want.Id.String(), "weekly distance", 21.5, "2026-08-30")
	if err == nil {
		t.Fatal("expected error from failed insert")
	}

	if uow.wants.deletes != 1 {
		t.Fatalf("deletes = %d, want the delete to have been attempted", uow.wants.deletes)
	}
	if uow.committed {
		t.Error("failed bucket replacement must not commit")
	}
	if !uow.rolledBack {
		t.Error("failed bucket replacement must roll back the delete")
	}
}

func TestLogMetricsBatchSharesOneTransaction(t *testing.T) {
	store, uow, want := newMetricFixture(nil)
	uow.wants.metricTypes = []*entity.WantMetricType{
		{Id: uuid.New(), WantId: want.Id, Name: "Weekly Distance"},
	}

	values := map[string]float64{"weekly distance": 21.5, "long runs": 2}
	if err := store.LogMetrics(context.Background(), want.Id.String(), values, ""); err != nil {
		t.Fatal(err)
	}

	if !uow.committed {
		t.Fatal("expected a single committed transaction")
	}
	if uow.wants.deletes != 2 || len(uow.wants.inserts) != 2 {
		t.Errorf("deletes = %d, inserts = %d, want 2 and 2", uow.wants.deletes, len(uow.wants.inserts))
	}
	// Existing type matched case-insensitively, the unseen one created.
	if len(uow.wants.metricTypes) != 2 {
		t.Errorf("metric types = %d, want 2", len(uow.wants.metricTypes))
	}
}
