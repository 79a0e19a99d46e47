package repository

import (
	"context"
	"errors"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

type DayOfWeekRepo interface {
	GetDayById(ctx context.Context, id uint64) (*model.DayOfWeek, error)
	ListDays(ctx context.Context, dayLike string, limit, offset int) ([]*model.DayOfWeek, int64, error)
	CreateDay(ctx context.Context, day *model.DayOfWeek) error
	UpdateDay(ctx context.Context, day *model.DayOfWeek) error
	DeleteDay(ctx context.Context, id uint64) (int64, error)
}

type DayOfWeekRepoImpl struct {
	db *gorm.DB
}

func NewDayOfWeekRepo(db *gorm.DB) DayOfWeekRepo {
	return &DayOfWeekRepoImpl{db: db}
}

func (s *DayOfWeekRepoImpl) GetDayById(ctx context.Context, id uint64) (*model.DayOfWeek, error) {
	day := &model.DayOfWeek{}
	result := s.db.WithContext(ctx).First(day, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return day, nil
}

func (s *DayOfWeekRepoImpl) ListDays(ctx context.Context, dayLike string, limit, offset int) ([]*model.DayOfWeek, int64, error) {
	days := make([]*model.DayOfWeek, 0)

	query := s.db.WithContext(ctx).Model(&model.DayOfWeek{})
	if dayLike != "" {
		query = query.Where("day LIKE ?", "%"+dayLike+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Order("id").Limit(limit).Offset(offset).Find(&days)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return days, total, nil
}

func (s *DayOfWeekRepoImpl) CreateDay(ctx context.Context, day *model.DayOfWeek) error {
	return s.db.WithContext(ctx).Create(day).Error
}

func (s *DayOfWeekRepoImpl) UpdateDay(ctx context.Context, day *model.DayOfWeek) error {
	return s.db.WithContext(ctx).Model(&model.DayOfWeek{}).Where("id = ?", day.ID).
		Select("day").Updates(day).Error
}

func (s *DayOfWeekRepoImpl) DeleteDay(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM routine_days WHERE day_of_week_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.DayOfWeek{}, id)
		affected = result.RowsAffected
		return result.Error
	})
	return affected, err
}
