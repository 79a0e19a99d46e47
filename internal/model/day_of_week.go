package model

type DayOfWeek struct {
	ID  uint64 `gorm:"primaryKey" json:"id"`
	Day string `gorm:"type:varchar(9);not null;uniqueIndex:idx_day" json:"day"`
}

func (DayOfWeek) TableName() string {
	return "days_of_week"
}
