package truckrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodtruck/internal/core/domain/model/truck"
	"foodtruck/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// pgLockNotAvailable is the SQLSTATE Postgres reports when lock_timeout
// expires while waiting for a row lock.
const pgLockNotAvailable = "55P03"

// ErrLockTimeout is returned when the cursor row lock could not be acquired
// within the configured wait. The scheduling attempt is safe to retry.
var ErrLockTimeout = errors.New("truck cursor lock wait timed out")

// GormTruckRepository implements TruckRepository using GORM.
// It must be used inside an open transaction: the SET LOCAL statement and
// the FOR UPDATE lock both live only until the transaction ends.
type GormTruckRepository struct {
	db          *gorm.DB
	lockTimeout time.Duration
}

// NewGormTruckRepository creates a new GORM truck cursor repository.
// A zero lockTimeout leaves the server's lock_timeout setting untouched.
func NewGormTruckRepository(db *gorm.DB, lockTimeout time.Duration) *GormTruckRepository {
	return &GormTruckRepository{
		db:          db,
		lockTimeout: lockTimeout,
	}
}

// GetForUpdate reads the cursor row under FOR UPDATE, creating it first if
// this is the very first scheduling decision. The row lock is held until the
// enclosing transaction commits or rolls back.
func (r *GormTruckRepository) GetForUpdate(ctx context.Context) (*truck.Truck, error) {
	tx := r.db.WithContext(ctx)

	if r.lockTimeout > 0 {
		// SET does not take bind parameters; the value comes from config.
		stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", r.lockTimeout.Milliseconds())
		if err := tx.Exec(stmt).Error; err != nil {
			return nil, err
		}
	}

	dto, err := r.lockRow(tx)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err = r.bootstrapRow(tx); err != nil {
			return nil, err
		}
		dto, err = r.lockRow(tx)
	}
	if err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Update persists the advanced cursor. Must run in the same transaction
// that locked the row.
func (r *GormTruckRepository) Update(ctx context.Context, aggregate *truck.Truck) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TruckDTO{}).
		Where("id = ?", dto.ID).
		Update("busy_until", dto.BusyUntil)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("truck", dto.ID)
	}

	return nil
}

func (r *GormTruckRepository) lockRow(tx *gorm.DB) (TruckDTO, error) {
	var dto TruckDTO
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&dto, "id = ?", truck.ID).Error
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgLockNotAvailable {
			return TruckDTO{}, fmt.Errorf("%w: %v", ErrLockTimeout, err)
		}
		return TruckDTO{}, err
	}
	return dto, nil
}

// bootstrapRow inserts the initial cursor row with the truck free as of now.
// ON CONFLICT DO NOTHING covers the race where two transactions bootstrap
// at the same time; the subsequent locked read settles the winner.
func (r *GormTruckRepository) bootstrapRow(tx *gorm.DB) error {
	dto := TruckDTO{ID: truck.ID, BusyUntil: time.Now()}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto).Error
}
