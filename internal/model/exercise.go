package model

import (
	"time"
)

type Exercise struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CategoryID  *uint64   `gorm:"index:idx_category_id" json:"category_id"`
	Video       string    `gorm:"type:varchar(255)" json:"video"`
	IsCardio    bool      `gorm:"type:tinyint(1);default:0" json:"is_cardio"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`

	// 关联关系
	Category         *ExerciseCategory `gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Muscles          []Muscle          `gorm:"many2many:exercise_muscles" json:"muscles,omitempty"`
	SecondaryMuscles []Muscle          `gorm:"many2many:exercise_secondary_muscles" json:"secondary_muscles,omitempty"`
	Equipment        []Equipment       `gorm:"many2many:exercise_equipment" json:"equipment,omitempty"`
	Images           []ExerciseImage   `gorm:"foreignKey:ExerciseID;references:ID" json:"images,omitempty"`
}

func (Exercise) TableName() string {
	return "exercises"
}
