package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alemsite/internal/model"
)

// OpinionRepository defines visitor opinion persistence operations.
type OpinionRepository interface {
	Create(ctx context.Context, opinion *model.Opinion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Opinion, error)
	// List returns opinions newest first; approved filters by approval
	// status when non-nil.
	List(ctx context.Context, approved *bool) ([]model.Opinion, error)
	SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*model.Opinion, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type opinionRepository struct {
	db *gorm.DB
}

// NewOpinionRepository creates a new opinion repository.
func NewOpinionRepository(db *gorm.DB) OpinionRepository {
	return &opinionRepository{db: db}
}

func (r *opinionRepository) Create(ctx context.Context, opinion *model.Opinion) error {
	return r.db.WithContext(ctx).Create(opinion).Error
}

func (r *opinionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Opinion, error) {
	var opinion model.Opinion
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&opinion).Error; err != nil {
		return nil, err
	}
	return &opinion, nil
}

func (r *opinionRepository) List(ctx context.Context, approved *bool) ([]model.Opinion, error) {
	q := r.db.WithContext(ctx).Model(&model.Opinion{})
	if approved != nil {
		q = q.Where("is_approved = ?", *approved)
	}

	var opinions []model.Opinion
	if err := q.Order("created_at DESC").Find(&opinions).Error; err != nil {
		return nil, err
	}
	return opinions, nil
}

func (r *opinionRepository) SetApproval(ctx context.Context, id uuid.UUID, approved bool) (*model.Opinion, error) {
	res := r.db.WithContext(ctx).Model(&model.Opinion{}).Where("id = ?", id).Update("is_approved", approved)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *opinionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Opinion{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
