package repository

import (
	"context"
	"errors"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

// RoutineFilter 计划列表过滤条件
type RoutineFilter struct {
	Name       string
	IsPublic   *bool
	DayID      *uint64
	ExerciseID *uint64
	OwnerID    *uint64 // 为空表示不按属主过滤
	OnlyPublic bool
}

type RoutineRepo interface {
	GetRoutineById(ctx context.Context, id uint64) (*model.Routine, error)
	ListRoutines(ctx context.Context, filter *RoutineFilter, limit, offset int) ([]*model.Routine, int64, error)
	CreateRoutine(ctx context.Context, routine *model.Routine) error
	UpdateRoutine(ctx context.Context, routine *model.Routine) error
	DeleteRoutine(ctx context.Context, id uint64) error
}

type RoutineRepoImpl struct {
	db *gorm.DB
}

func NewRoutineRepo(db *gorm.DB) RoutineRepo {
	return &RoutineRepoImpl{db: db}
}

func (s *RoutineRepoImpl) GetRoutineById(ctx context.Context, id uint64) (*model.Routine, error) {
	routine := &model.Routine{}
	result := s.db.WithContext(ctx).
		Preload("Exercises").
		Preload("Days").
		First(routine, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return routine, nil
}

func (s *RoutineRepoImpl) ListRoutines(ctx context.Context, filter *RoutineFilter, limit, offset int) ([]*model.Routine, int64, error) {
	routines := make([]*model.Routine, 0)

	query := s.db.WithContext(ctx).Model(&model.Routine{})
	if filter != nil {
		if filter.OnlyPublic {
			query = query.Where("is_public = ?", true)
		}
		if filter.OwnerID != nil {
			query = query.Where("user_id = ?", *filter.OwnerID)
		}
		if filter.Name != "" {
			query = query.Where("name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.IsPublic != nil {
			query = query.Where("is_public = ?", *filter.IsPublic)
		}
		if filter.DayID != nil {
			query = query.Where(
				"id IN (SELECT routine_id FROM routine_days WHERE day_of_week_id = ?)", *filter.DayID)
		}
		if filter.ExerciseID != nil {
			query = query.Where(
				"id IN (SELECT routine_id FROM routine_exercises WHERE exercise_id = ?)", *filter.ExerciseID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.
		Preload("Exercises").
		Preload("Days").
		Order("name").
		Limit(limit).Offset(offset).
		Find(&routines)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return routines, total, nil
}

func (s *RoutineRepoImpl) CreateRoutine(ctx context.Context, routine *model.Routine) error {
	return s.db.WithContext(ctx).Create(routine).Error
}

// UpdateRoutine 更新基础字段并整体替换关联的动作与训练日
func (s *RoutineRepoImpl) UpdateRoutine(ctx context.Context, routine *model.Routine) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := []string{"name", "description", "is_public"}
		if err := tx.Model(&model.Routine{}).Where("id = ?", routine.ID).
			Select(fields).Updates(routine).Error; err != nil {
			return err
		}

		if err := tx.Model(routine).Association("Exercises").Replace(routine.Exercises); err != nil {
			return err
		}
		return tx.Model(routine).Association("Days").Replace(routine.Days)
	})
}

func (s *RoutineRepoImpl) DeleteRoutine(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM routine_exercises WHERE routine_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM routine_days WHERE routine_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Routine{}, id).Error
	})
}
