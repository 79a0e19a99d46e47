package model

import (
	"time"
)

type Metric struct {
	ID           uint64    `gorm:"primaryKey" json:"id"`
	UserID       uint64    `gorm:"not null;index" json:"user_id"`
	MetricTypeID uint64    `gorm:"not null;index:idx_metric_type_id" json:"metric_type_id"`
	Value        float64   `gorm:"not null" json:"value"`
	Date         time.Time `gorm:"autoCreateTime" json:"date"`

	User       User       `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	MetricType MetricType `gorm:"foreignKey:MetricTypeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Metric) TableName() string {
	return "metrics"
}
