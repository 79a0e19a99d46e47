package repository

import (
	"context"
	"errors"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

// MuscleFilter 肌肉列表过滤条件
type MuscleFilter struct {
	Name      string
	LatinName string
}

type MuscleRepo interface {
	GetMuscleById(ctx context.Context, id uint64) (*model.Muscle, error)
	ListMuscles(ctx context.Context, filter *MuscleFilter, limit, offset int) ([]*model.Muscle, int64, error)
	CreateMuscle(ctx context.Context, muscle *model.Muscle) error
	UpdateMuscle(ctx context.Context, muscle *model.Muscle) error
	DeleteMuscle(ctx context.Context, id uint64) (int64, error)
}

type MuscleRepoImpl struct {
	db *gorm.DB
}

func NewMuscleRepo(db *gorm.DB) MuscleRepo {
	return &MuscleRepoImpl{db: db}
}

func (s *MuscleRepoImpl) GetMuscleById(ctx context.Context, id uint64) (*model.Muscle, error) {
	muscle := &model.Muscle{}
	result := s.db.WithContext(ctx).First(muscle, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return muscle, nil
}

func (s *MuscleRepoImpl) ListMuscles(ctx context.Context, filter *MuscleFilter, limit, offset int) ([]*model.Muscle, int64, error) {
	muscles := make([]*model.Muscle, 0)

	query := s.db.WithContext(ctx).Model(&model.Muscle{})
	if filter != nil {
		if filter.Name != "" {
			query = query.Where("name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.LatinName != "" {
			query = query.Where("latin_name LIKE ?", "%"+filter.LatinName+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Order("name").Limit(limit).Offset(offset).Find(&muscles)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return muscles, total, nil
}

func (s *MuscleRepoImpl) CreateMuscle(ctx context.Context, muscle *model.Muscle) error {
	return s.db.WithContext(ctx).Create(muscle).Error
}

func (s *MuscleRepoImpl) UpdateMuscle(ctx context.Context, muscle *model.Muscle) error {
	return s.db.WithContext(ctx).Model(&model.Muscle{}).Where("id = ?", muscle.ID).
		Select("name", "latin_name", "is_front").Updates(muscle).Error
}

func (s *MuscleRepoImpl) DeleteMuscle(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Muscle{}, id)
	return result.RowsAffected, result.Error
}
