package dto

import (
	"time"

	"github.com/google/uuid"
)

type WantStepDTO struct {
	Id          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Position    int       `json:"position"`
	Done        bool      `json:"done"`
}

type WantMetricTypeDTO struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Unit string    `json:"unit,omitempty"`
}

type WantSummaryResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type WantDetailResponse struct {
	Id               uuid.UUID           `json:"id"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Status           string              `json:"status"`
	PrimaryContactId *uuid.UUID          `json:"primary_contact_id,omitempty"`
	ContactBearing   string              `json:"contact_bearing,omitempty"`
	Steps            []WantStepDTO       `json:"steps"`
	MetricTypes      []WantMetricTypeDTO `json:"metric_types"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        *time.Time          `json:"updated_at"`
}

type RejectedShouldResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
