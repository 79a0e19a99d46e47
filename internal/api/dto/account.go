package dto

import "time"

// SignUpDTO 注册请求，username 缺省时取 email
type SignUpDTO struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	FirstName string `json:"first_name" validate:"omitempty,max=30"`
	LastName  string `json:"last_name" validate:"omitempty,max=30"`
}

// CredentialDTO 登录凭证
type CredentialDTO struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordDTO 找回密码
type ForgotPasswordDTO struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordDTO 通过邮件令牌重置密码
type ResetPasswordDTO struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// UserDTO 用户信息
type UserDTO struct {
	ID          uint64     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Gender      string     `json:"gender"`
	Gym         string     `json:"gym"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	AvatarURL   string     `json:"avatar,omitempty"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	DateJoined  time.Time  `json:"date_joined"`
}

// UpdateUserDTO 更新用户档案，指针字段为空表示不修改
type UpdateUserDTO struct {
	Username    *string `json:"username" validate:"omitempty,min=3,max=150"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=6"`
	FirstName   *string `json:"first_name" validate:"omitempty,max=30"`
	LastName    *string `json:"last_name" validate:"omitempty,max=30"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=M F"`
	Gym         *string `json:"gym" validate:"omitempty,max=200"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
}
