package model

type Muscle struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(50);not null" json:"name"`
	LatinName string `gorm:"type:varchar(50)" json:"latin_name"`
	IsFront   bool   `gorm:"type:tinyint(1);default:1" json:"is_front"`
}

func (Muscle) TableName() string {
	return "muscles"
}
