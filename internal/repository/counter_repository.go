package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/radwerk/intake-api/internal/domain"
)

// CounterRepository handles the per-(scope, year) sequence counters used for
// customer numbering.
type CounterRepository struct {
	db *gorm.DB
}

// NewCounterRepository creates a new CounterRepository
func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// NextValue atomically increments and returns the counter for a scope/year.
// The increment is a single UPDATE statement so two concurrent submissions
// can never read the same value; the row is created lazily at 1 when the
// scope/year has no counter yet.
func (r *CounterRepository) NextValue(ctx context.Context, scope string, year int) (int, error) {
	var next int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Counter{}).
			Where("scope = ? AND year = ?", scope, year).
			UpdateColumn("last_value", gorm.Expr("last_value + 1"))
		if res.Error != nil {
			return fmt.Errorf("failed to increment counter: %w", res.Error)
		}

		if res.RowsAffected == 0 {
			counter := domain.Counter{Scope: scope, Year: year, LastValue: 1}
			if err := tx.Create(&counter).Error; err != nil {
				// Lost the creation race: another transaction inserted the
				// row first, retry the increment against it.
				res = tx.Model(&domain.Counter{}).
					Where("scope = ? AND year = ?", scope, year).
					UpdateColumn("last_value", gorm.Expr("last_value + 1"))
				if res.Error != nil || res.RowsAffected == 0 {
					return fmt.Errorf("failed to create counter: %w", err)
				}
			} else {
				next = 1
				return nil
			}
		}

		var counter domain.Counter
		if err := tx.Where("scope = ? AND year = ?", scope, year).First(&counter).Error; err != nil {
			return fmt.Errorf("failed to read counter: %w", err)
		}
		next = counter.LastValue
		return nil
	})
	if err != nil {
		return 0, err
	}

	return next, nil
}

// CurrentValue returns the last issued value without incrementing.
// Returns 0 when the scope/year has no counter.
func (r *CounterRepository) CurrentValue(ctx context.Context, scope string, year int) (int, error) {
	var counter domain.Counter
	err := r.db.WithContext(ctx).
		Where("scope = ? AND year = ?", scope, year).
		First(&counter).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get counter: %w", err)
	}
	return counter.LastValue, nil
}

// SetValue raises the counter to a specific value, for data migrations that
// import already-numbered customers. Never lowers an existing counter.
func (r *CounterRepository) SetValue(ctx context.Context, scope string, year, value int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Counter{}).
			Where("scope = ? AND year = ? AND last_value < ?", scope, year, value).
			UpdateColumn("last_value", value)
		if res.Error != nil {
			return fmt.Errorf("failed to update counter: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			return nil
		}

		var counter domain.Counter
		err := tx.Where("scope = ? AND year = ?", scope, year).First(&counter).Error
		if err == gorm.ErrRecordNotFound {
			counter = domain.Counter{Scope: scope, Year: year, LastValue: value}
			if err := tx.Create(&counter).Error; err != nil {
				return fmt.Errorf("failed to create counter: %w", err)
			}
			return nil
		}
		return err
	})
}

// ListCounters returns all counters (useful for debugging/admin)
func (r *CounterRepository) ListCounters(ctx context.Context) ([]domain.Counter, error) {
	var counters []domain.Counter
	err := r.db.WithContext(ctx).
		Order("scope ASC, year DESC").
		Find(&counters).Error
	return counters, err
}
