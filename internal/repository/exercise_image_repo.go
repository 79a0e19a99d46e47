package repository

import (
	"context"
	"errors"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

type ExerciseImageRepo interface {
	GetImageById(ctx context.Context, id uint64) (*model.ExerciseImage, error)
	ListImages(ctx context.Context, exerciseID *uint64, limit, offset int) ([]*model.ExerciseImage, int64, error)
	CreateImage(ctx context.Context, image *model.ExerciseImage) error
	UpdateImage(ctx context.Context, image *model.ExerciseImage) error
	DeleteImage(ctx context.Context, id uint64) (*model.ExerciseImage, error)
}

type ExerciseImageRepoImpl struct {
	db *gorm.DB
}

func NewExerciseImageRepo(db *gorm.DB) ExerciseImageRepo {
	return &ExerciseImageRepoImpl{db: db}
}

func (s *ExerciseImageRepoImpl) GetImageById(ctx context.Context, id uint64) (*model.ExerciseImage, error) {
	image := &model.ExerciseImage{}
	result := s.db.WithContext(ctx).First(image, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return image, nil
}

func (s *ExerciseImageRepoImpl) ListImages(ctx context.Context, exerciseID *uint64, limit, offset int) ([]*model.ExerciseImage, int64, error) {
	images := make([]*model.ExerciseImage, 0)

	query := s.db.WithContext(ctx).Model(&model.ExerciseImage{})
	if exerciseID != nil {
		query = query.Where("exercise_id = ?", *exerciseID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Order("is_main DESC, id").Limit(limit).Offset(offset).Find(&images)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return images, total, nil
}

// CreateImage 新建图片并维护主图唯一：标记主图时取消其它主图，
// 该动作尚无主图时首张自动成为主图
func (s *ExerciseImageRepoImpl) CreateImage(ctx context.Context, image *model.ExerciseImage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.IsMain {
			if err := clearMainFlag(tx, image.ExerciseID, 0); err != nil {
				return err
			}
		} else {
			var mainCount int64
			if err := tx.Model(&model.ExerciseImage{}).
				Where("exercise_id = ? AND is_main = ?", image.ExerciseID, true).
				Count(&mainCount).Error; err != nil {
				return err
			}
			if mainCount == 0 {
				image.IsMain = true
			}
		}
		return tx.Create(image).Error
	})
}

func (s *ExerciseImageRepoImpl) UpdateImage(ctx context.Context, image *model.ExerciseImage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if image.IsMain {
			if err := clearMainFlag(tx, image.ExerciseID, image.ID); err != nil {
				return err
			}
		}
		if err := tx.Model(&model.ExerciseImage{}).Where("id = ?", image.ID).
			Select("image", "is_main").Updates(image).Error; err != nil {
			return err
		}
		return promoteMainIfMissing(tx, image.ExerciseID)
	})
}

// DeleteImage 删除图片；若删除的是主图则提升剩余首张为主图。
// 返回被删除的行，供调用方清理对象存储
func (s *ExerciseImageRepoImpl) DeleteImage(ctx context.Context, id uint64) (*model.ExerciseImage, error) {
	image := &model.ExerciseImage{}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.First(image, id)
		if result.Error != nil {
			return result.Error
		}

		if err := tx.Delete(&model.ExerciseImage{}, id).Error; err != nil {
			return err
		}
		return promoteMainIfMissing(tx, image.ExerciseID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return image, nil
}

func clearMainFlag(tx *gorm.DB, exerciseID uint64, exceptID uint64) error {
	query := tx.Model(&model.ExerciseImage{}).Where("exercise_id = ?", exerciseID)
	if exceptID > 0 {
		query = query.Where("id <> ?", exceptID)
	}
	return query.Update("is_main", false).Error
}

// promoteMainIfMissing 动作名下无主图但仍有图片时，按默认排序提升首张
func promoteMainIfMissing(tx *gorm.DB, exerciseID uint64) error {
	var mainCount int64
	if err := tx.Model(&model.ExerciseImage{}).
		Where("exercise_id = ? AND is_main = ?", exerciseID, true).
		Count(&mainCount).Error; err != nil {
		return err
	}
	if mainCount > 0 {
		return nil
	}

	first := &model.ExerciseImage{}
	result := tx.Where("exercise_id = ?", exerciseID).Order("id").First(first)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil
		}
		return result.Error
	}

	return tx.Model(&model.ExerciseImage{}).Where("id = ?", first.ID).
		Update("is_main", true).Error
}
