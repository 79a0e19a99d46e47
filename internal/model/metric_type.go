package model

import (
	"time"
)

type MetricType struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	GroupID   uint64    `gorm:"not null;index:idx_group_id" json:"group_id"`
	Name      string    `gorm:"type:varchar(50);not null" json:"name"`
	Unit      string    `gorm:"type:varchar(10)" json:"unit"`
	CreatedAt time.Time `json:"created_at"`

	Group   MetricTypeGroup `gorm:"foreignKey:GroupID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Metrics []Metric        `gorm:"foreignKey:MetricTypeID;references:ID" json:"-"`
}

func (MetricType) TableName() string {
	return "metric_types"
}
