package repository

import (
	"context"
	"errors"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

type EquipmentRepo interface {
	GetEquipmentById(ctx context.Context, id uint64) (*model.Equipment, error)
	ListEquipment(ctx context.Context, nameLike string, limit, offset int) ([]*model.Equipment, int64, error)
	CreateEquipment(ctx context.Context, equipment *model.Equipment) error
	UpdateEquipment(ctx context.Context, equipment *model.Equipment) error
	DeleteEquipment(ctx context.Context, id uint64) (int64, error)
}

type EquipmentRepoImpl struct {
	db *gorm.DB
}

func NewEquipmentRepo(db *gorm.DB) EquipmentRepo {
	return &EquipmentRepoImpl{db: db}
}

func (s *EquipmentRepoImpl) GetEquipmentById(ctx context.Context, id uint64) (*model.Equipment, error) {
	equipment := &model.Equipment{}
	result := s.db.WithContext(ctx).First(equipment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return equipment, nil
}

func (s *EquipmentRepoImpl) ListEquipment(ctx context.Context, nameLike string, limit, offset int) ([]*model.Equipment, int64, error) {
	items := make([]*model.Equipment, 0)

	query := s.db.WithContext(ctx).Model(&model.Equipment{})
	if nameLike != "" {
		query = query.Where("name LIKE ?", "%"+nameLike+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Order("name").Limit(limit).Offset(offset).Find(&items)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return items, total, nil
}

func (s *EquipmentRepoImpl) CreateEquipment(ctx context.Context, equipment *model.Equipment) error {
	return s.db.WithContext(ctx).Create(equipment).Error
}

func (s *EquipmentRepoImpl) UpdateEquipment(ctx context.Context, equipment *model.Equipment) error {
	return s.db.WithContext(ctx).Model(&model.Equipment{}).Where("id = ?", equipment.ID).
		Select("name").Updates(equipment).Error
}

func (s *EquipmentRepoImpl) DeleteEquipment(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.Equipment{}, id)
	return result.RowsAffected, result.Error
}
