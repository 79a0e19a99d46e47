package model

import (
	"time"
)

type Routine struct {
	ID          uint64    `gorm:"primaryKey" json:"id"`
	UserID      uint64    `gorm:"not null;index" json:"user_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:varchar(300)" json:"description"`
	IsPublic    bool      `gorm:"type:tinyint(1);default:0" json:"is_public"`
	DateCreated time.Time `gorm:"autoCreateTime" json:"date_created"`

	User      User        `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Exercises []Exercise  `gorm:"many2many:routine_exercises" json:"exercises,omitempty"`
	Days      []DayOfWeek `gorm:"many2many:routine_days" json:"days,omitempty"`
}

func (Routine) TableName() string {
	return "routines"
}
