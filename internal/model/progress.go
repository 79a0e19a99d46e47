package model

import (
	"time"
)

type Progress struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	UserID     uint64    `gorm:"not null;index" json:"user_id"`
	ExerciseID uint64    `gorm:"not null;index" json:"exercise_id"`
	Date       time.Time `gorm:"type:date;not null" json:"date"`

	User     User     `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Exercise Exercise `gorm:"foreignKey:ExerciseID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Sets     []Set    `gorm:"foreignKey:ProgressID;references:ID" json:"sets,omitempty"`
}

func (Progress) TableName() string {
	return "progress"
}

// Set 单条训练记录下的动态组数
type Set struct {
	ID         uint64 `gorm:"primaryKey" json:"id"`
	ProgressID uint64 `gorm:"not null;index:idx_progress_id" json:"progress_id"`
	Duration   *int   `json:"duration"`
	Reps       *int   `json:"reps"`
	Weight     *int   `json:"weight"`

	Progress Progress `gorm:"foreignKey:ProgressID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Set) TableName() string {
	return "sets"
}
