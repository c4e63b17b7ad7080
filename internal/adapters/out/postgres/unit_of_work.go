// Package postgres provides the GORM-based Unit of Work that persists round
// snapshots. A round is saved as one transaction: either every courier tour of
// the round is stored, or none is.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	for _, t := range tours {
//	    if err := uow.TourRepository().Add(ctx, roundID, t); err != nil {
//	        _ = uow.Rollback(ctx)
//	        return err
//	    }
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns its transaction; goroutines must not share one.
package postgres

import (
	"context"

	"routeplanner/internal/adapters/out/postgres/tourrepo"
	"routeplanner/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one GORM connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// Migrate creates or updates the tables backing the tour repository.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tourrepo.TourDTO{},
		&tourrepo.StopDTO{},
		&tourrepo.LegDTO{},
		&tourrepo.SegmentDTO{},
	)
}

// GormUnitOfWork coordinates one database transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin initiates a new database transaction for the unit of work.
// Calling Begin again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit finalizes the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction.
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// TourRepository returns a repository bound to the open transaction, or to the
// plain connection when no transaction has been started.
func (uow *GormUnitOfWork) TourRepository() ports.TourRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return tourrepo.NewGormTourRepository(db)
}
