package repository

import (
	"context"
	"errors"
	"time"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

// ProgressFilter 训练记录过滤条件
type ProgressFilter struct {
	ExerciseID *uint64
	MinDate    *time.Time
	MaxDate    *time.Time
}

type ProgressRepo interface {
	GetProgressById(ctx context.Context, id uint64) (*model.Progress, error)
	ListProgress(ctx context.Context, userID uint64, filter *ProgressFilter, limit, offset int) ([]*model.Progress, int64, error)
	CreateProgress(ctx context.Context, progress *model.Progress) error
	UpdateProgress(ctx context.Context, progress *model.Progress) error
	DeleteProgress(ctx context.Context, id uint64) error
}

type ProgressRepoImpl struct {
	db *gorm.DB
}

func NewProgressRepo(db *gorm.DB) ProgressRepo {
	return &ProgressRepoImpl{db: db}
}

func (s *ProgressRepoImpl) GetProgressById(ctx context.Context, id uint64) (*model.Progress, error) {
	progress := &model.Progress{}
	result := s.db.WithContext(ctx).Preload("Sets").First(progress, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return progress, nil
}

func (s *ProgressRepoImpl) ListProgress(ctx context.Context, userID uint64, filter *ProgressFilter, limit, offset int) ([]*model.Progress, int64, error) {
	entries := make([]*model.Progress, 0)

	query := s.db.WithContext(ctx).Model(&model.Progress{}).Where("user_id = ?", userID)
	if filter != nil {
		if filter.ExerciseID != nil {
			query = query.Where("exercise_id = ?", *filter.ExerciseID)
		}
		if filter.MinDate != nil {
			query = query.Where("date >= ?", *filter.MinDate)
		}
		if filter.MaxDate != nil {
			query = query.Where("date <= ?", *filter.MaxDate)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Preload("Sets").Order("date, exercise_id").Limit(limit).Offset(offset).Find(&entries)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return entries, total, nil
}

func (s *ProgressRepoImpl) CreateProgress(ctx context.Context, progress *model.Progress) error {
	return s.db.WithContext(ctx).Create(progress).Error
}

// UpdateProgress 更新基础字段并整体重建组数
func (s *ProgressRepoImpl) UpdateProgress(ctx context.Context, progress *model.Progress) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fields := []string{"exercise_id", "date"}
		if err := tx.Model(&model.Progress{}).Where("id = ?", progress.ID).
			Select(fields).Updates(progress).Error; err != nil {
			return err
		}

		if err := tx.Where("progress_id = ?", progress.ID).Delete(&model.Set{}).Error; err != nil {
			return err
		}
		if len(progress.Sets) == 0 {
			return nil
		}
		for i := range progress.Sets {
			progress.Sets[i].ID = 0
			progress.Sets[i].ProgressID = progress.ID
		}
		return tx.Create(&progress.Sets).Error
	})
}

func (s *ProgressRepoImpl) DeleteProgress(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("progress_id = ?", id).Delete(&model.Set{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Progress{}, id).Error
	})
}
