package repository

import (
	"context"
	"errors"
	"time"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

// MetricTypeFilter 指标类型过滤条件
type MetricTypeFilter struct {
	GroupID *uint64
	Name    string
	Unit    string
}

// MetricFilter 用户指标过滤条件
type MetricFilter struct {
	MetricTypeID *uint64
	MinDate      *time.Time
	MaxDate      *time.Time
}

type MetricRepo interface {
	GetGroupById(ctx context.Context, id uint64) (*model.MetricTypeGroup, error)
	GetGroupByName(ctx context.Context, name string) (*model.MetricTypeGroup, error)
	ListGroups(ctx context.Context, nameLike string, limit, offset int) ([]*model.MetricTypeGroup, int64, error)
	CreateGroup(ctx context.Context, group *model.MetricTypeGroup) error
	UpdateGroup(ctx context.Context, group *model.MetricTypeGroup) error
	DeleteGroup(ctx context.Context, id uint64) error

	GetTypeById(ctx context.Context, id uint64) (*model.MetricType, error)
	ListTypes(ctx context.Context, filter *MetricTypeFilter, limit, offset int) ([]*model.MetricType, int64, error)
	CreateType(ctx context.Context, metricType *model.MetricType) error
	UpdateType(ctx context.Context, metricType *model.MetricType) error
	DeleteType(ctx context.Context, id uint64) error

	GetMetricById(ctx context.Context, id uint64) (*model.Metric, error)
	ListMetrics(ctx context.Context, userID uint64, filter *MetricFilter, limit, offset int) ([]*model.Metric, int64, error)
	CreateMetric(ctx context.Context, metric *model.Metric) error
	UpdateMetric(ctx context.Context, metric *model.Metric) error
	DeleteMetric(ctx context.Context, id uint64) error
}

type MetricRepoImpl struct {
	db *gorm.DB
}

func NewMetricRepo(db *gorm.DB) MetricRepo {
	return &MetricRepoImpl{db: db}
}

func (s *MetricRepoImpl) GetGroupById(ctx context.Context, id uint64) (*model.MetricTypeGroup, error) {
	group := &model.MetricTypeGroup{}
	result := s.db.WithContext(ctx).First(group, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return group, nil
}

func (s *MetricRepoImpl) GetGroupByName(ctx context.Context, name string) (*model.MetricTypeGroup, error) {
	group := &model.MetricTypeGroup{}
	result := s.db.WithContext(ctx).Where("name = ?", name).First(group)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return group, nil
}

func (s *MetricRepoImpl) ListGroups(ctx context.Context, nameLike string, limit, offset int) ([]*model.MetricTypeGroup, int64, error) {
	groups := make([]*model.MetricTypeGroup, 0)

	query := s.db.WithContext(ctx).Model(&model.MetricTypeGroup{})
	if nameLike != "" {
		query = query.Where("name LIKE ?", "%"+nameLike+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Order("name").Limit(limit).Offset(offset).Find(&groups)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return groups, total, nil
}

func (s *MetricRepoImpl) CreateGroup(ctx context.Context, group *model.MetricTypeGroup) error {
	return s.db.WithContext(ctx).Create(group).Error
}

func (s *MetricRepoImpl) UpdateGroup(ctx context.Context, group *model.MetricTypeGroup) error {
	return s.db.WithContext(ctx).Model(&model.MetricTypeGroup{}).Where("id = ?", group.ID).
		Select("name").Updates(group).Error
}

// DeleteGroup 级联删除分组：先删该组类型下的全部指标，再删类型，最后删分组，单事务
func (s *MetricRepoImpl) DeleteGroup(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var typeIDs []uint64
		if err := tx.Model(&model.MetricType{}).Where("group_id = ?", id).Pluck("id", &typeIDs).Error; err != nil {
			return err
		}
		if len(typeIDs) > 0 {
			if err := tx.Where("metric_type_id IN ?", typeIDs).Delete(&model.Metric{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("group_id = ?", id).Delete(&model.MetricType{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MetricTypeGroup{}, id).Error
	})
}

func (s *MetricRepoImpl) GetTypeById(ctx context.Context, id uint64) (*model.MetricType, error) {
	metricType := &model.MetricType{}
	result := s.db.WithContext(ctx).First(metricType, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return metricType, nil
}

func (s *MetricRepoImpl) ListTypes(ctx context.Context, filter *MetricTypeFilter, limit, offset int) ([]*model.MetricType, int64, error) {
	types := make([]*model.MetricType, 0)

	query := s.db.WithContext(ctx).Model(&model.MetricType{})
	if filter != nil {
		if filter.GroupID != nil {
			query = query.Where("group_id = ?", *filter.GroupID)
		}
		if filter.Name != "" {
			query = query.Where("name LIKE ?", "%"+filter.Name+"%")
		}
		if filter.Unit != "" {
			query = query.Where("unit LIKE ?", "%"+filter.Unit+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.Order("name").Limit(limit).Offset(offset).Find(&types)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return types, total, nil
}

func (s *MetricRepoImpl) CreateType(ctx context.Context, metricType *model.MetricType) error {
	return s.db.WithContext(ctx).Create(metricType).Error
}

func (s *MetricRepoImpl) UpdateType(ctx context.Context, metricType *model.MetricType) error {
	return s.db.WithContext(ctx).Model(&model.MetricType{}).Where("id = ?", metricType.ID).
		Select("group_id", "name", "unit").Updates(metricType).Error
}

// DeleteType 删除类型及其名下全部指标，单事务
func (s *MetricRepoImpl) DeleteType(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("metric_type_id = ?", id).Delete(&model.Metric{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.MetricType{}, id).Error
	})
}

func (s *MetricRepoImpl) GetMetricById(ctx context.Context, id uint64) (*model.Metric, error) {
	metric := &model.Metric{}
	result := s.db.WithContext(ctx).Preload("MetricType").First(metric, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return metric, nil
}

func (s *MetricRepoImpl) ListMetrics(ctx context.Context, userID uint64, filter *MetricFilter, limit, offset int) ([]*model.Metric, int64, error) {
	metrics := make([]*model.Metric, 0)

	query := s.db.WithContext(ctx).Model(&model.Metric{}).Where("user_id = ?", userID)
	if filter != nil {
		if filter.MetricTypeID != nil {
			query = query.Where("metric_type_id = ?", *filter.MetricTypeID)
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

	result := query.Preload("MetricType").Order("date").Limit(limit).Offset(offset).Find(&metrics)
	if result.Error != nil {
		return nil, 0, result.Error
	}
	return metrics, total, nil
}

func (s *MetricRepoImpl) CreateMetric(ctx context.Context, metric *model.Metric) error {
	return s.db.WithContext(ctx).Create(metric).Error
}

func (s *MetricRepoImpl) UpdateMetric(ctx context.Context, metric *model.Metric) error {
	return s.db.WithContext(ctx).Model(&model.Metric{}).Where("id = ?", metric.ID).
		Select("metric_type_id", "value").Updates(metric).Error
}

func (s *MetricRepoImpl) DeleteMetric(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Metric{}, id).Error
}
