package dto

// MetricTypeGroupDTO 指标分组，名称全局唯一
type MetricTypeGroupDTO struct {
	Name string `json:"name" validate:"required,max=50"`
}

// MetricTypeDTO 指标类型
type MetricTypeDTO struct {
	GroupID uint64 `json:"group_id" validate:"required"`
	Name    string `json:"name" validate:"required,max=50"`
	Unit    string `json:"unit" validate:"omitempty,max=10"`
}

// MetricDTO 记录一条身体指标
type MetricDTO struct {
	MetricTypeID uint64   `json:"metric_type_id" validate:"required"`
	Value        *float64 `json:"value" validate:"required"`
}
