package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gymmate/internal/api/dto"
	"gymmate/internal/pkg/response"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
	"gymmate/internal/service"
)

type MetricHandler struct {
	metricSvc service.MetricService
}

func NewMetricHandler(metricSvc service.MetricService) *MetricHandler {
	return &MetricHandler{metricSvc: metricSvc}
}

func (s *MetricHandler) GetGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	group, err := s.metricSvc.GetGroup(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, group)
}

func (s *MetricHandler) ListGroups(c *gin.Context) {
	page := pageParams(c)
	groups, total, err := s.metricSvc.ListGroups(c.Request.Context(), c.Query("name"), page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, groups)
}

func (s *MetricHandler) CreateGroup(c *gin.Context) {
	var groupDTO dto.MetricTypeGroupDTO
	err := c.ShouldBind(&groupDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&groupDTO); err != nil {
		response.Error(c, err)
		return
	}
	group, err := s.metricSvc.CreateGroup(c.Request.Context(), &groupDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, group)
}

func (s *MetricHandler) UpdateGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var groupDTO dto.MetricTypeGroupDTO
	err := c.ShouldBind(&groupDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&groupDTO); err != nil {
		response.Error(c, err)
		return
	}
	group, err := s.metricSvc.UpdateGroup(c.Request.Context(), id, &groupDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, group)
}

func (s *MetricHandler) DeleteGroup(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.metricSvc.DeleteGroup(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *MetricHandler) GetType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	metricType, err := s.metricSvc.GetType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, metricType)
}

func (s *MetricHandler) ListTypes(c *gin.Context) {
	filter := &repository.MetricTypeFilter{
		GroupID: queryUint64(c, "group"),
		Name:    c.Query("name"),
		Unit:    c.Query("unit"),
	}
	page := pageParams(c)
	types, total, err := s.metricSvc.ListTypes(c.Request.Context(), filter, page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, types)
}

func (s *MetricHandler) CreateType(c *gin.Context) {
	var typeDTO dto.MetricTypeDTO
	err := c.ShouldBind(&typeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&typeDTO); err != nil {
		response.Error(c, err)
		return
	}
	metricType, err := s.metricSvc.CreateType(c.Request.Context(), &typeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, metricType)
}

func (s *MetricHandler) UpdateType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var typeDTO dto.MetricTypeDTO
	err := c.ShouldBind(&typeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&typeDTO); err != nil {
		response.Error(c, err)
		return
	}
	metricType, err := s.metricSvc.UpdateType(c.Request.Context(), id, &typeDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, metricType)
}

func (s *MetricHandler) DeleteType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.metricSvc.DeleteType(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (s *MetricHandler) GetMetric(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	metric, err := s.metricSvc.GetMetric(c.Request.Context(), c.GetUint64("user_id"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, metric)
}

// ListMetrics 只返回当前用户自己的指标记录
func (s *MetricHandler) ListMetrics(c *gin.Context) {
	filter := &repository.MetricFilter{
		MetricTypeID: queryUint64(c, "metric_type"),
		MinDate:      queryDate(c, "min_date"),
		MaxDate:      queryDate(c, "max_date"),
	}
	page := pageParams(c)
	metrics, total, err := s.metricSvc.ListMetrics(c.Request.Context(), c.GetUint64("user_id"), filter, page.Limit(), page.Offset())
	if err != nil {
		response.Error(c, err)
		return
	}
	pageHeaders(c, page, total)
	response.Success(c, http.StatusOK, metrics)
}

func (s *MetricHandler) CreateMetric(c *gin.Context) {
	var metricDTO dto.MetricDTO
	err := c.ShouldBind(&metricDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&metricDTO); err != nil {
		response.Error(c, err)
		return
	}
	metric, err := s.metricSvc.CreateMetric(c.Request.Context(), c.GetUint64("user_id"), &metricDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, metric)
}

func (s *MetricHandler) UpdateMetric(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var metricDTO dto.MetricDTO
	err := c.ShouldBind(&metricDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err = validate.Struct(&metricDTO); err != nil {
		response.Error(c, err)
		return
	}
	metric, err := s.metricSvc.UpdateMetric(c.Request.Context(), c.GetUint64("user_id"), id, &metricDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, metric)
}

func (s *MetricHandler) DeleteMetric(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	err := s.metricSvc.DeleteMetric(c.Request.Context(), c.GetUint64("user_id"), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
