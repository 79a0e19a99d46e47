package repository

import (
	"context"
	"errors"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

// ExerciseFilter 动作列表过滤条件
type ExerciseFilter struct {
	Name        string
	CategoryID  *uint64
	MuscleID    *uint64
	EquipmentID *uint64
	IsCardio    *bool
}

type ExerciseRepo interface {
	GetExerciseById(ctx context.Context, id uint64) (*model.Exercise, error)
	ListExercises(ctx context.Context, filter *ExerciseFilter, limit, offset int) ([]*model.Exercise, int64, error)
	CreateExercise(ctx context.Context, exercise *model.Exercise) error
	UpdateExercise(ctx context.Context, exercise *model.Exercise) error
	DeleteExercise(ctx context.Context, id uint64) ([]string, error)
}

type ExerciseRepoImpl struct {
	db *gorm.DB
}

func NewExerciseRepo(db *gorm.DB) ExerciseRepo {
	return &ExerciseRepoImpl{db: db}
}

func (s *ExerciseRepoImpl) GetExerciseById(ctx context.Context, id uint64) (*model.Exercise, error) {
	exercise := &model.Exercise{}
	result := s.db.WithContext(ctx).
		Preload("Category").
		Preload("Muscles").
		Preload("SecondaryMuscles").
		Preload("Equipment").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_main DESC, id")
		}).
		First(exercise, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return exercise, nil
}

func (s *ExerciseRepoImpl) ListExercises(ctx context.Context, filter *ExerciseFilter, limit, offset int) ([]*model.Exercise, int64, error) {
	exercises := make([]*model.Exercise, 0)

	query := s.db.WithContext(ctx).Model(&model.Exercise{})
	if filter != nil {
		if filter.Name != "" {
			query = query.Where("name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.CategoryID != nil {
			query = query.Where("category_id = ?", *filter.CategoryID)
		}
		if filter.IsCardio != nil {
			query = query.Where("is_cardio = ?", *filter.IsCardio)
		}
		if filter.MuscleID != nil {
			query = query.Where(
				"id IN (SELECT exercise_id FROM exercise_muscles WHERE muscle_id = ?)", *filter.MuscleID)
		}
		if filter.EquipmentID != nil {
			query = query.Where(
				"id IN (SELECT exercise_id FROM exercise_equipment WHERE equipment_id = ?)", *filter.EquipmentID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.
		Preload("Category").
		Preload("Muscles").
		Preload("SecondaryMuscles").
		Preload("Equipment").
		Order("name").
		Limit(limit).Offset(offset).
		Find(&exercises)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return exercises, total, nil
}

func (s *ExerciseRepoImpl) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	return s.db.WithContext(ctx).Create(exercise).Error
}

// UpdateExercise 更新基础字段并整体替换多对多关联
func (s *ExerciseRepoImpl) UpdateExercise(ctx context.Context, exercise *model.Exercise) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := []string{"name", "description", "category_id", "video", "is_cardio"}
		if err := tx.Model(&model.Exercise{}).Where("id = ?", exercise.ID).
			Select(fields).Updates(exercise).Error; err != nil {
			return err
		}

		if err := tx.Model(exercise).Association("Muscles").Replace(exercise.Muscles); err != nil {
			return err
		}
		if err := tx.Model(exercise).Association("SecondaryMuscles").Replace(exercise.SecondaryMuscles); err != nil {
			return err
		}
		return tx.Model(exercise).Association("Equipment").Replace(exercise.Equipment)
	})
}

// DeleteExercise 删除动作及其从属行，返回待清理的图片对象名
func (s *ExerciseRepoImpl) DeleteExercise(ctx context.Context, id uint64) ([]string, error) {
	var objects []string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ExerciseImage{}).Where("exercise_id = ?", id).
			Pluck("image", &objects).Error; err != nil {
			return err
		}
		if err := tx.Where("exercise_id = ?", id).Delete(&model.ExerciseImage{}).Error; err != nil {
			return err
		}

		var progressIDs []uint64
		if err := tx.Model(&model.Progress{}).Where("exercise_id = ?", id).Pluck("id", &progressIDs).Error; err != nil {
			return err
		}
		if len(progressIDs) > 0 {
			if err := tx.Where("progress_id IN ?", progressIDs).Delete(&model.Set{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("exercise_id = ?", id).Delete(&model.Progress{}).Error; err != nil {
			return err
		}

		if err := tx.Exec("DELETE FROM routine_exercises WHERE exercise_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM exercise_muscles WHERE exercise_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM exercise_secondary_muscles WHERE exercise_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM exercise_equipment WHERE exercise_id = ?", id).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Exercise{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	return objects, nil
}
