package service

import (
	"context"

	"gymmate/internal/api/dto"
	"gymmate/internal/model"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
)

type MetricService interface {
	GetGroup(ctx context.Context, id uint64) (*model.MetricTypeGroup, error)
	ListGroups(ctx context.Context, nameLike string, limit, offset int) ([]*model.MetricTypeGroup, int64, error)
	CreateGroup(ctx context.Context, groupDTO *dto.MetricTypeGroupDTO) (*model.MetricTypeGroup, error)
	UpdateGroup(ctx context.Context, id uint64, groupDTO *dto.MetricTypeGroupDTO) (*model.MetricTypeGroup, error)
	DeleteGroup(ctx context.Context, id uint64) error

	GetType(ctx context.Context, id uint64) (*model.MetricType, error)
	ListTypes(ctx context.Context, filter *repository.MetricTypeFilter, limit, offset int) ([]*model.MetricType, int64, error)
	CreateType(ctx context.Context, typeDTO *dto.MetricTypeDTO) (*model.MetricType, error)
	UpdateType(ctx context.Context, id uint64, typeDTO *dto.MetricTypeDTO) (*model.MetricType, error)
	DeleteType(ctx context.Context, id uint64) error

	GetMetric(ctx context.Context, userID, id uint64) (*model.Metric, error)
	ListMetrics(ctx context.Context, userID uint64, filter *repository.MetricFilter, limit, offset int) ([]*model.Metric, int64, error)
	CreateMetric(ctx context.Context, userID uint64, metricDTO *dto.MetricDTO) (*model.Metric, error)
	UpdateMetric(ctx context.Context, userID, id uint64, metricDTO *dto.MetricDTO) (*model.Metric, error)
	DeleteMetric(ctx context.Context, userID, id uint64) error
}

type MetricServiceImpl struct {
	metricRepo repository.MetricRepo
}

func NewMetricService(metricRepo repository.MetricRepo) MetricService {
	return &MetricServiceImpl{metricRepo: metricRepo}
}

func (s *MetricServiceImpl) GetGroup(ctx context.Context, id uint64) (*model.MetricTypeGroup, error) {
	group, err := s.metricRepo.GetGroupById(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

func (s *MetricServiceImpl) ListGroups(ctx context.Context, nameLike string, limit, offset int) ([]*model.MetricTypeGroup, int64, error) {
	return s.metricRepo.ListGroups(ctx, nameLike, limit, offset)
}

// CreateGroup 创建指标分组，名称全局唯一
func (s *MetricServiceImpl) CreateGroup(ctx context.Context, groupDTO *dto.MetricTypeGroupDTO) (*model.MetricTypeGroup, error) {
	existing, err := s.metricRepo.GetGroupByName(ctx, groupDTO.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		fieldErrs := validate.FieldErrors{}
		fieldErrs.Add("name", "metric type group with this name already exists.")
		return nil, fieldErrs
	}
	group := &model.MetricTypeGroup{Name: groupDTO.Name}
	err = s.metricRepo.CreateGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (s *MetricServiceImpl) UpdateGroup(ctx context.Context, id uint64, groupDTO *dto.MetricTypeGroupDTO) (*model.MetricTypeGroup, error) {
	group, err := s.metricRepo.GetGroupById(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	existing, err := s.metricRepo.GetGroupByName(ctx, groupDTO.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != id {
		fieldErrs := validate.FieldErrors{}
		fieldErrs.Add("name", "metric type group with this name already exists.")
		return nil, fieldErrs
	}
	group.Name = groupDTO.Name
	err = s.metricRepo.UpdateGroup(ctx, group)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup 删除分组并级联清掉其下类型与所有用户的指标记录
func (s *MetricServiceImpl) DeleteGroup(ctx context.Context, id uint64) error {
	group, err := s.metricRepo.GetGroupById(ctx, id)
	if err != nil {
		return err
	}
	if group == nil {
		return ErrGroupNotFound
	}
	return s.metricRepo.DeleteGroup(ctx, id)
}

func (s *MetricServiceImpl) GetType(ctx context.Context, id uint64) (*model.MetricType, error) {
	metricType, err := s.metricRepo.GetTypeById(ctx, id)
	if err != nil {
		return nil, err
	}
	if metricType == nil {
		return nil, ErrMetricTypeNotFound
	}
	return metricType, nil
}

func (s *MetricServiceImpl) ListTypes(ctx context.Context, filter *repository.MetricTypeFilter, limit, offset int) ([]*model.MetricType, int64, error) {
	return s.metricRepo.ListTypes(ctx, filter, limit, offset)
}

func (s *MetricServiceImpl) CreateType(ctx context.Context, typeDTO *dto.MetricTypeDTO) (*model.MetricType, error) {
	group, err := s.metricRepo.GetGroupById(ctx, typeDTO.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	metricType := &model.MetricType{
		GroupID: typeDTO.GroupID,
		Name:    typeDTO.Name,
		Unit:    typeDTO.Unit,
	}
	err = s.metricRepo.CreateType(ctx, metricType)
	if err != nil {
		return nil, err
	}
	return metricType, nil
}

func (s *MetricServiceImpl) UpdateType(ctx context.Context, id uint64, typeDTO *dto.MetricTypeDTO) (*model.MetricType, error) {
	metricType, err := s.metricRepo.GetTypeById(ctx, id)
	if err != nil {
		return nil, err
	}
	if metricType == nil {
		return nil, ErrMetricTypeNotFound
	}
	group, err := s.metricRepo.GetGroupById(ctx, typeDTO.GroupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	metricType.GroupID = typeDTO.GroupID
	metricType.Name = typeDTO.Name
	metricType.Unit = typeDTO.Unit
	err = s.metricRepo.UpdateType(ctx, metricType)
	if err != nil {
		return nil, err
	}
	return metricType, nil
}

func (s *MetricServiceImpl) DeleteType(ctx context.Context, id uint64) error {
	metricType, err := s.metricRepo.GetTypeById(ctx, id)
	if err != nil {
		return err
	}
	if metricType == nil {
		return ErrMetricTypeNotFound
	}
	return s.metricRepo.DeleteType(ctx, id)
}

// GetMetric 指标记录只对本人可见，他人访问按不存在处理
func (s *MetricServiceImpl) GetMetric(ctx context.Context, userID, id uint64) (*model.Metric, error) {
	metric, err := s.metricRepo.GetMetricById(ctx, id)
	if err != nil {
		return nil, err
	}
	if metric == nil || metric.UserID != userID {
		return nil, ErrMetricNotFound
	}
	return metric, nil
}

func (s *MetricServiceImpl) ListMetrics(ctx context.Context, userID uint64, filter *repository.MetricFilter, limit, offset int) ([]*model.Metric, int64, error) {
	return s.metricRepo.ListMetrics(ctx, userID, filter, limit, offset)
}

func (s *MetricServiceImpl) CreateMetric(ctx context.Context, userID uint64, metricDTO *dto.MetricDTO) (*model.Metric, error) {
	metricType, err := s.metricRepo.GetTypeById(ctx, metricDTO.MetricTypeID)
	if err != nil {
		return nil, err
	}
	if metricType == nil {
		return nil, ErrMetricTypeNotFound
	}
	metric := &model.Metric{
		UserID:       userID,
		MetricTypeID: metricDTO.MetricTypeID,
		Value:        *metricDTO.Value,
	}
	err = s.metricRepo.CreateMetric(ctx, metric)
	if err != nil {
		return nil, err
	}
	return metric, nil
}

func (s *MetricServiceImpl) UpdateMetric(ctx context.Context, userID, id uint64, metricDTO *dto.MetricDTO) (*model.Metric, error) {
	metric, err := s.GetMetric(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	metricType, err := s.metricRepo.GetTypeById(ctx, metricDTO.MetricTypeID)
	if err != nil {
		return nil, err
	}
	if metricType == nil {
		return nil, ErrMetricTypeNotFound
	}
	metric.MetricTypeID = metricDTO.MetricTypeID
	metric.Value = *metricDTO.Value
	err = s.metricRepo.UpdateMetric(ctx, metric)
	if err != nil {
		return nil, err
	}
	return metric, nil
}

func (s *MetricServiceImpl) DeleteMetric(ctx context.Context, userID, id uint64) error {
	_, err := s.GetMetric(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.metricRepo.DeleteMetric(ctx, id)
}
