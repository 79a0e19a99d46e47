package model

type ExerciseCategory struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(50);not null" json:"name"`
}

func (ExerciseCategory) TableName() string {
	return "exercise_categories"
}
