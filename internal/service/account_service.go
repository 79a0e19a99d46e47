package service

import (
	"context"
	"io"
	"log/slog"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"gymmate/internal/api/dto"
	"gymmate/internal/model"
	"gymmate/internal/pkg/consts"
	"gymmate/internal/pkg/mail"
	"gymmate/internal/pkg/security"
	"gymmate/internal/pkg/storage"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
)

type AccountService interface {
	SignUp(ctx context.Context, signUpDTO *dto.SignUpDTO) (*dto.UserDTO, error)
	Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error)
	Logout(ctx context.Context, token string) error
	Activate(ctx context.Context, token string) error
	ForgotPassword(ctx context.Context, forgotDTO *dto.ForgotPasswordDTO) error
	ResetPassword(ctx context.Context, resetDTO *dto.ResetPasswordDTO) error
	GetUser(ctx context.Context, actorID uint64, actorStaff bool, id uint64) (*dto.UserDTO, error)
	ListUsers(ctx context.Context, actorID uint64, actorStaff bool, filter *repository.UserFilter, limit, offset int) ([]*dto.UserDTO, int64, error)
	UpdateUser(ctx context.Context, actorID uint64, actorStaff bool, id uint64, updateDTO *dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, actorID uint64, actorStaff bool, id uint64) error
	UpdateAvatar(ctx context.Context, actorID uint64, actorStaff bool, id uint64, filename string, reader io.Reader, size int64, contentType string) (*dto.UserDTO, error)
}

type AccountServiceImpl struct {
	userRepo  repository.UserRepo
	blacklist security.TokenBlacklist
	store     storage.ObjectStore
	mailer    mail.Sender
	linkBase  string
}

func NewAccountService(userRepo repository.UserRepo, blacklist security.TokenBlacklist, store storage.ObjectStore, mailer mail.Sender, linkBase string) AccountService {
	return &AccountServiceImpl{
		userRepo:  userRepo,
		blacklist: blacklist,
		store:     store,
		mailer:    mailer,
		linkBase:  linkBase,
	}
}

// SignUp 注册新账号。username 缺省取 email，账号初始未激活，
// 激活链接通过欢迎邮件异步发送
func (s *AccountServiceImpl) SignUp(ctx context.Context, signUpDTO *dto.SignUpDTO) (*dto.UserDTO, error) {
	fieldErrs := validate.FieldErrors{}
	existing, err := s.userRepo.GetUserByEmail(ctx, signUpDTO.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		fieldErrs.Add("email", "Email already in use by another account")
	}
	existing, err = s.userRepo.GetUserByUsername(ctx, signUpDTO.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		fieldErrs.Add("username", "A user with that username already exists.")
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	passwordHash, err := security.HashPassword(signUpDTO.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     signUpDTO.Email,
		Email:        signUpDTO.Email,
		PasswordHash: passwordHash,
		FirstName:    signUpDTO.FirstName,
		LastName:     signUpDTO.LastName,
		IsActive:     false,
		Token:        uuid.NewString(),
	}
	err = s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	s.sendMailAsync(user.Email, consts.MailTemplateWelcome, map[string]string{
		"name": user.FullName(),
		"link": s.linkBase + "/activate/" + user.Token,
	})

	return s.toUserDTO(user), nil
}

func (s *AccountServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO) (string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, credDTO.Username)
	if err != nil {
		return "", err
	}
	if user == nil {
		// 也允许用邮箱登录
		user, err = s.userRepo.GetUserByEmail(ctx, credDTO.Username)
		if err != nil {
			return "", err
		}
	}
	if user == nil {
		return "", ErrPasswordIncorrect
	}
	err = security.CheckPasswordHash(credDTO.Password, user.PasswordHash)
	if err != nil {
		return "", ErrPasswordIncorrect
	}
	if !user.IsActive {
		return "", ErrAccountInactive
	}
	return security.GenerateToken(user.ID, user.IsStaff, security.AllScopes)
}

func (s *AccountServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return s.blacklist.Revoke(ctx, signature, security.JWTExpirationTime)
}

// Activate 激活账号，令牌一次有效，使用后立即轮换
func (s *AccountServiceImpl) Activate(ctx context.Context, token string) error {
	user, err := s.userRepo.GetUserByToken(ctx, token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrTokenInvalid
	}
	return s.userRepo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"is_active": true,
		"token":     uuid.NewString(),
	})
}

// ForgotPassword 发送重置密码邮件。为避免探测注册邮箱，
// 邮箱不存在时同样静默返回成功
func (s *AccountServiceImpl) ForgotPassword(ctx context.Context, forgotDTO *dto.ForgotPasswordDTO) error {
	user, err := s.userRepo.GetUserByEmail(ctx, forgotDTO.Email)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	token := uuid.NewString()
	err = s.userRepo.UpdateUser(ctx, user.ID, map[string]interface{}{"token": token})
	if err != nil {
		return err
	}

	s.sendMailAsync(user.Email, consts.MailTemplateForgotPassword, map[string]string{
		"name": user.FullName(),
		"link": s.linkBase + "/reset-password/" + token,
	})
	return nil
}

func (s *AccountServiceImpl) ResetPassword(ctx context.Context, resetDTO *dto.ResetPasswordDTO) error {
	user, err := s.userRepo.GetUserByToken(ctx, resetDTO.Token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrTokenInvalid
	}

	passwordHash, err := security.HashPassword(resetDTO.NewPassword)
	if err != nil {
		return err
	}
	err = s.userRepo.UpdateUser(ctx, user.ID, map[string]interface{}{
		"password_hash": passwordHash,
		"token":         uuid.NewString(),
	})
	if err != nil {
		return err
	}

	s.sendMailAsync(user.Email, consts.MailTemplatePasswordReset, map[string]string{
		"name": user.FullName(),
	})
	return nil
}

func (s *AccountServiceImpl) GetUser(ctx context.Context, actorID uint64, actorStaff bool, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	// 非本人且非管理员不暴露邮箱等敏感字段
	userDTO := s.toUserDTO(user)
	if actorID != id && !actorStaff {
		userDTO.Email = ""
		userDTO.DateOfBirth = nil
	}
	return userDTO, nil
}

func (s *AccountServiceImpl) ListUsers(ctx context.Context, actorID uint64, actorStaff bool, filter *repository.UserFilter, limit, offset int) ([]*dto.UserDTO, int64, error) {
	users, total, err := s.userRepo.ListUsers(ctx, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	dtos := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		userDTO := s.toUserDTO(user)
		if actorID != user.ID && !actorStaff {
			userDTO.Email = ""
			userDTO.DateOfBirth = nil
		}
		dtos = append(dtos, userDTO)
	}
	return dtos, total, nil
}

func (s *AccountServiceImpl) UpdateUser(ctx context.Context, actorID uint64, actorStaff bool, id uint64, updateDTO *dto.UpdateUserDTO) (*dto.UserDTO, error) {
	if actorID != id && !actorStaff {
		return nil, ErrMethodNotAllowed
	}
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]interface{}{}
	fieldErrs := validate.FieldErrors{}

	if updateDTO.Email != nil && *updateDTO.Email != user.Email {
		other, err := s.userRepo.GetUserByEmail(ctx, *updateDTO.Email)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			fieldErrs.Add("email", "Email already in use by another account")
		}
		fields["email"] = *updateDTO.Email
	}
	if updateDTO.Username != nil && *updateDTO.Username != user.Username {
		other, err := s.userRepo.GetUserByUsername(ctx, *updateDTO.Username)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			fieldErrs.Add("username", "A user with that username already exists.")
		}
		fields["username"] = *updateDTO.Username
	}
	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}

	if updateDTO.Password != nil {
		passwordHash, err := security.HashPassword(*updateDTO.Password)
		if err != nil {
			return nil, err
		}
		fields["password_hash"] = passwordHash
	}
	if updateDTO.FirstName != nil {
		fields["first_name"] = *updateDTO.FirstName
	}
	if updateDTO.LastName != nil {
		fields["last_name"] = *updateDTO.LastName
	}
	if updateDTO.Gender != nil {
		fields["gender"] = *updateDTO.Gender
	}
	if updateDTO.Gym != nil {
		fields["gym"] = *updateDTO.Gym
	}
	if updateDTO.DateOfBirth != nil {
		birth, err := time.Parse("2006-01-02", *updateDTO.DateOfBirth)
		if err != nil {
			return nil, ErrParamInvalid
		}
		fields["date_of_birth"] = birth
	}

	if len(fields) > 0 {
		err = s.userRepo.UpdateUser(ctx, id, fields)
		if err != nil {
			return nil, err
		}
	}

	user, err = s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toUserDTO(user), nil
}

// DeleteUser 注销账号，级联清理由仓储层事务完成，
// 头像对象在行删除成功后再移除
func (s *AccountServiceImpl) DeleteUser(ctx context.Context, actorID uint64, actorStaff bool, id uint64) error {
	if actorID != id && !actorStaff {
		return ErrMethodNotAllowed
	}
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	err = s.userRepo.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Avatar != "" && user.Avatar != consts.DefaultAvatarObject {
		err = s.store.Remove(ctx, user.Avatar)
		if err != nil {
			slog.WarnContext(ctx, "remove avatar object failed", "object", user.Avatar, "error", err)
		}
	}
	return nil
}

func (s *AccountServiceImpl) UpdateAvatar(ctx context.Context, actorID uint64, actorStaff bool, id uint64, filename string, reader io.Reader, size int64, contentType string) (*dto.UserDTO, error) {
	if actorID != id && !actorStaff {
		return nil, ErrMethodNotAllowed
	}
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	objectName := "avatars/" + uuid.NewString() + path.Ext(filename)
	_, err = s.store.Upload(ctx, objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}
	err = s.userRepo.UpdateUser(ctx, id, map[string]interface{}{"avatar": objectName})
	if err != nil {
		return nil, err
	}

	// 旧头像在新头像落库后清理
	if user.Avatar != "" && user.Avatar != consts.DefaultAvatarObject {
		err = s.store.Remove(ctx, user.Avatar)
		if err != nil {
			slog.WarnContext(ctx, "remove avatar object failed", "object", user.Avatar, "error", err)
		}
	}

	user.Avatar = objectName
	return s.toUserDTO(user), nil
}

func (s *AccountServiceImpl) toUserDTO(user *model.User) *dto.UserDTO {
	userDTO := &dto.UserDTO{}
	_ = copier.Copy(userDTO, user)
	if user.Avatar != "" {
		userDTO.AvatarURL = s.store.PublicURL(user.Avatar)
	}
	return userDTO
}

// sendMailAsync 邮件发送不阻塞请求，失败只记日志
func (s *AccountServiceImpl) sendMailAsync(recipient, template string, data map[string]string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()
		err := s.mailer.Send(ctx, recipient, template, data)
		if err != nil {
			slog.Warn("send mail failed", "template", template, "recipient", recipient, "error", err)
		}
	}()
}
