package database

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"example.com/backstage/services/campaign/internal/metrics"
)

const startTimeKey = "metrics:start_time"

// RegisterHooks records query counts, durations and error rates for every store operation
func RegisterHooks(db *gorm.DB, m *metrics.Metrics) error {
	cb := db.Callback()

	hooks := []struct {
		op       string
		register func(before, after func(*gorm.DB)) error
	}{
		{"create", func(before, after func(*gorm.DB)) error {
			if err := cb.Create().Before("gorm:create").Register("metrics:before_create", before); err != nil {
				return err
			}
			return cb.Create().After("gorm:create").Register("metrics:after_create", after)
		}},
		{"query", func(before, after func(*gorm.DB)) error {
			if err := cb.Query().Before("gorm:query").Register("metrics:before_query", before); err != nil {
				return err
			}
			return cb.Query().After("gorm:query").Register("metrics:after_query", after)
		}},
		{"update", func(before, after func(*gorm.DB)) error {
			if err := cb.Update().Before("gorm:update").Register("metrics:before_update", before); err != nil {
				return err
			}
			return cb.Update().After("gorm:update").Register("metrics:after_update", after)
		}},
		{"delete", func(before, after func(*gorm.DB)) error {
			if err := cb.Delete().Before("gorm:delete").Register("metrics:before_delete", before); err != nil {
				return err
			}
			return cb.Delete().After("gorm:delete").Register("metrics:after_delete", after)
		}},
	}

	for _, h := range hooks {
		name := "store." + h.op
		after := func(tx *gorm.DB) {
			m.IncrementCounter(metrics.StoreQueries)
			m.RecordDuration(name, elapsed(tx))

			var err error
			if tx.Error != nil && !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
				err = tx.Error
				m.IncrementCounter(metrics.StoreErrors)
			}
			m.RecordOutcome(name, err)
		}
		if err := h.register(markStart, after); err != nil {
			return errors.Wrapf(err, "failed to register %s hooks", h.op)
		}
	}
	return nil
}

func markStart(tx *gorm.DB) {
	tx.InstanceSet(startTimeKey, time.Now())
}

func elapsed(tx *gorm.DB) time.Duration {
	if start, ok := tx.InstanceGet(startTimeKey); ok {
		if t, ok := start.(time.Time); ok {
			return time.Since(t)
		}
	}
	return 0
}
