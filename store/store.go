// Package store archives solved plans under generated ids so that they can
// be fetched again (GET /v1/plans/{id}). Backends: MemoryStore and
// MongoStore.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/purgeplan/schedule"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("store: plan not found")

// Record is an archived plan with the job it solved.
type Record struct {
	ID        string         `json:"id" bson:"_id"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	Job       schedule.Job   `json:"job" bson:"job"`
	Plan      *schedule.Plan `json:"plan" bson:"plan"`
}

// Store saves and loads records.
type Store interface {
	// Put assigns an id and creation time when missing and saves rec.
	Put(ctx context.Context, rec *Record) error
	// Get loads the record with id or returns ErrNotFound.
	Get(ctx context.Context, id string) (*Record, error)
	Close(ctx context.Context) error
}

// stamp fills the id and creation time of a new record.
func stamp(rec *Record, now func() time.Time) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now().UTC()
	}
}
