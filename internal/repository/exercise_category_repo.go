package repository

import (
	"context"
	"errors"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

type ExerciseCategoryRepo interface {
	GetCategoryById(ctx context.Context, id uint64) (*model.ExerciseCategory, error)
	ListCategories(ctx context.Context, nameLike string, limit, offset int) ([]*model.ExerciseCategory, int64, error)
	CreateCategory(ctx context.Context, category *model.ExerciseCategory) error
	UpdateCategory(ctx context.Context, category *model.ExerciseCategory) error
	DeleteCategory(ctx context.Context, id uint64) (int64, error)
}

type ExerciseCategoryRepoImpl struct {
	db *gorm.DB
}

func NewExerciseCategoryRepo(db *gorm.DB) ExerciseCategoryRepo {
	return &ExerciseCategoryRepoImpl{db: db}
}

func (s *ExerciseCategoryRepoImpl) GetCategoryById(ctx context.Context, id uint64) (*model.ExerciseCategory, error) {
	category := &model.ExerciseCategory{}
	result := s.db.WithContext(ctx).First(category, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return category, nil
}

func (s *ExerciseCategoryRepoImpl) ListCategories(ctx context.Context, nameLike string, limit, offset int) ([]*model.ExerciseCategory, int64, error) {
	categories := make([]*model.ExerciseCategory, 0)

	query := s.db.WithContext(ctx).Model(&model.ExerciseCategory{})
	if nameLike != "" {
		query = query.Where("name LIKE ?", "%"+nameLike+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Order("name").Limit(limit).Offset(offset).Find(&categories)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return categories, total, nil
}

func (s *ExerciseCategoryRepoImpl) CreateCategory(ctx context.Context, category *model.ExerciseCategory) error {
	return s.db.WithContext(ctx).Create(category).Error
}

func (s *ExerciseCategoryRepoImpl) UpdateCategory(ctx context.Context, category *model.ExerciseCategory) error {
	return s.db.WithContext(ctx).Model(&model.ExerciseCategory{}).Where("id = ?", category.ID).
		Select("name").Updates(category).Error
}

// DeleteCategory 删除分类，关联动作的 category_id 置空
func (s *ExerciseCategoryRepoImpl) DeleteCategory(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Exercise{}).Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.ExerciseCategory{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}
