package model

type MetricTypeGroup struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_group_name" json:"name"`

	Types []MetricType `gorm:"foreignKey:GroupID;references:ID" json:"types,omitempty"`
}

func (MetricTypeGroup) TableName() string {
	return "metric_type_groups"
}
