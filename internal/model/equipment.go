package model

type Equipment struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

func (Equipment) TableName() string {
	return "equipment"
}
