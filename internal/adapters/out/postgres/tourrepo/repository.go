package tourrepo

import (
	"context"
	"errors"

	"routeplanner/internal/core/domain/model/kernel"
	"routeplanner/internal/core/domain/model/tour"
	"routeplanner/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormTourRepository struct {
	db *gorm.DB
}

func NewGormTourRepository(db *gorm.DB) *GormTourRepository {
	return &GormTourRepository{db: db}
}

func (r *GormTourRepository) Add(ctx context.Context, roundID kernel.UUID, aggregate *tour.Tour) error {
	if err := roundID.Validate(); err != nil {
		return err
	}
	if err := aggregate.Validate(); err != nil {
		return err
	}

	var position int64
	if err := r.db.WithContext(ctx).Model(&TourDTO{}).
		Where("round_id = ?", roundID.Bytes()).
		Count(&position).Error; err != nil {
		return err
	}

	dto := fromDomain(roundID, int(position), aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormTourRepository) GetByRound(ctx context.Context, roundID kernel.UUID) ([]*tour.Tour, error) {
	if err := roundID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TourDTO
	if err := r.db.WithContext(ctx).
		Preload("Stops", byPosition).
		Preload("Legs", byPosition).
		Preload("Legs.Segments", byPosition).
		Where("round_id = ?", roundID.Bytes()).
		Order("position").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	if len(dtos) == 0 {
		return nil, errs.NewObjectNotFoundError("round", roundID.String())
	}

	tours := make([]*tour.Tour, 0, len(dtos))
	for _, dto := range dtos {
		t, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		tours = append(tours, t)
	}

	return tours, nil
}

func (r *GormTourRepository) GetLatestRoundID(ctx context.Context) (kernel.UUID, error) {
	var dto TourDTO
	if err := r.db.WithContext(ctx).
		Select("round_id").
		Order("created_at DESC").
		First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.UUID{}, errs.NewObjectNotFoundError("round", "latest")
		}
		return kernel.UUID{}, err
	}

	return kernel.UUIDFromBytes(dto.RoundID[:])
}

func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
