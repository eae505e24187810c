package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"docvault/internal/domain"

	"gorm.io/gorm"
)

type StampRepository struct {
	db *gorm.DB
}

func NewStampRepository(db *gorm.DB) *StampRepository {
	return &StampRepository{db: db}
}

func (r *StampRepository) Create(ctx context.Context, stamp domain.SignatureStamp) (domain.SignatureStamp, error) {
	if r.db == nil {
		return domain.SignatureStamp{}, errDBUnavailable
	}
	if stamp.Name == "" {
		return domain.SignatureStamp{}, fmt.Errorf("%w: stamp name is required", domain.ErrInvalid)
	}
	if stamp.ID == "" {
		id, err := newUUID()
		if err != nil {
			return domain.SignatureStamp{}, err
		}
		stamp.ID = id
	}
	if stamp.CreatedAt.IsZero() {
		stamp.CreatedAt = time.Now().UTC()
	}
	model := SignatureStampModel{
		ID:        stamp.ID,
		Name:      stamp.Name,
		ImageKey:  stamp.ImageKey,
		IsActive:  stamp.IsActive,
		CreatedAt: stamp.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.SignatureStamp{}, fmt.Errorf("%w: stamp name %q", domain.ErrConflict, stamp.Name)
		}
		return domain.SignatureStamp{}, err
	}
	return stamp, nil
}

func (r *StampRepository) Get(ctx context.Context, id string) (*domain.SignatureStamp, error) {
	if r.db == nil {
		return nil, errDBUnavailable
	}
	var model SignatureStampModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	stamp := stampFromModel(model)
	return &stamp, nil
}

// Deactivate is the only removal path for stamps. Historical signatures keep
// referencing deactivated stamps, so rows are never deleted.
func (r *StampRepository) Deactivate(ctx context.Context, id string) error {
	if r.db == nil {
		return errDBUnavailable
	}
	result := r.db.WithContext(ctx).
		Model(&SignatureStampModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func stampFromModel(model SignatureStampModel) domain.SignatureStamp {
	return domain.SignatureStamp{
		ID:        model.ID,
		Name:      model.Name,
		ImageKey:  model.ImageKey,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
	}
}
