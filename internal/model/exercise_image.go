package model

type ExerciseImage struct {
	ID         uint64 `gorm:"primaryKey" json:"id"`
	ExerciseID uint64 `gorm:"not null;index" json:"exercise_id"`
	Image      string `gorm:"type:varchar(255);not null" json:"image"` // 对象存储中的图片路径
	IsMain     bool   `gorm:"type:tinyint(1);default:0" json:"is_main"`

	Exercise Exercise `gorm:"foreignKey:ExerciseID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ExerciseImage) TableName() string {
	return "exercise_images"
}
