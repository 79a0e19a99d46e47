package model

import (
	"time"
)

type User struct {
	ID           uint64     `gorm:"primaryKey"`
	Username     string     `gorm:"type:varchar(150);uniqueIndex:idx_username"`
	Email        string     `gorm:"type:varchar(254);uniqueIndex:idx_email"`
	PasswordHash string     `gorm:"type:varchar(255)" json:"-"`
	FirstName    string     `gorm:"type:varchar(30);default:''"`
	LastName     string     `gorm:"type:varchar(30);default:''"`
	Gender       string     `gorm:"type:varchar(2)"` // M / F / 空
	Gym          string     `gorm:"type:varchar(200)"`
	DateOfBirth  *time.Time `gorm:"type:date"`
	Avatar       string     `gorm:"type:varchar(255)"` // 对象存储中的头像路径
	IsActive     bool       `gorm:"type:tinyint(1);default:0"`
	IsStaff      bool       `gorm:"type:tinyint(1);default:0"`
	Token        string     `gorm:"type:char(36);index:idx_token"` // 激活/重置令牌，每次使用后轮换
	DateJoined   time.Time  `gorm:"autoCreateTime"`
	UpdatedAt    time.Time

	Metrics  []Metric   `gorm:"foreignKey:UserID;references:ID"`
	Routines []Routine  `gorm:"foreignKey:UserID;references:ID"`
	Progress []Progress `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}

// FullName 拼接用户全名
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
