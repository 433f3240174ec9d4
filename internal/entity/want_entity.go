package entity

import (
	"time"

	"github.com/google/uuid"
)

type WantStatus string

const (
	WantStatusActive   WantStatus = "active"
	WantStatusAchieved WantStatus = "achieved"
	WantStatusDropped  WantStatus = "dropped"
)

// Want is a goal the user actually wants, as opposed to a "should"
// imposed from outside. A want may carry a primary contact when the
// outcome depends on a specific person.
type Want struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Title            string
	Description      string
	Status           WantStatus
	PrimaryContactId *uuid.UUID
	ContactBearing   string
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

type WantStep struct {
	Id          uuid.UUID
	WantId      uuid.UUID
	Description string
	Position    int
	Done        bool
	CreatedAt   time.Time
}

type WantMetricType struct {
	Id        uuid.UUID
	WantId    uuid.UUID
	Name      string
	Unit      string
	CreatedAt time.Time
}

type WantMetricValue struct {
	Id           uuid.UUID
	MetricTypeId uuid.UUID
	Value        float64
	RecordedAt   time.Time
}

type WantIteration struct {
	Id        uuid.UUID
	WantId    uuid.UUID
	Summary   string
	CreatedAt time.Time
}

// RejectedShould records a goal the user named but that failed want
// validation. Keeping it visible is part of the coaching loop.
type RejectedShould struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	WantId    *uuid.UUID
	Title     string
	Reason    string
	CreatedAt time.Time
}
