package repository

import (
	"context"
	"errors"

	"gymmate/internal/model"

	"gorm.io/gorm"
)

// UserFilter 用户列表过滤条件
type UserFilter struct {
	Username  string
	FirstName string
	LastName  string
}

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByToken(ctx context.Context, token string) (*model.User, error)
	ListUsers(ctx context.Context, filter *UserFilter, limit, offset int) ([]*model.User, int64, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, id uint64, fields map[string]interface{}) error
	DeleteUser(ctx context.Context, id uint64) error
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.getUserBy(ctx, "username = ?", username)
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.getUserBy(ctx, "email = ?", email)
}

func (s *UserRepoImpl) GetUserByToken(ctx context.Context, token string) (*model.User, error) {
	return s.getUserBy(ctx, "token = ?", token)
}

func (s *UserRepoImpl) getUserBy(ctx context.Context, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).Where(query, arg).First(user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) ListUsers(ctx context.Context, filter *UserFilter, limit, offset int) ([]*model.User, int64, error) {
	users := make([]*model.User, 0)

	query := s.db.WithContext(ctx).Model(&model.User{})
	if filter != nil {
		if filter.Username != "" {
			query = query.Where("username LIKE ?", "%"+filter.Username+"%")
		}
		if filter.FirstName != "" {
			query = query.Where("first_name LIKE ?", "%"+filter.FirstName+"%")
		}
		if filter.LastName != "" {
			query = query.Where("last_name LIKE ?", "%"+filter.LastName+"%")
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	result := query.
		Order("date_joined DESC").
		Limit(limit).Offset(offset).
		Find(&users)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return users, total, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *UserRepoImpl) UpdateUser(ctx context.Context, id uint64, fields map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

// DeleteUser 删除用户及其全部从属数据，先删孙子行再删子行，全程单事务
func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var progressIDs []uint64
		if err := tx.Model(&model.Progress{}).Where("user_id = ?", id).Pluck("id", &progressIDs).Error; err != nil {
			return err
		}
		if len(progressIDs) > 0 {
			if err := tx.Where("progress_id IN ?", progressIDs).Delete(&model.Set{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Progress{}).Error; err != nil {
			return err
		}

		var routineIDs []uint64
		if err := tx.Model(&model.Routine{}).Where("user_id = ?", id).Pluck("id", &routineIDs).Error; err != nil {
			return err
		}
		if len(routineIDs) > 0 {
			if err := tx.Exec("DELETE FROM routine_exercises WHERE routine_id IN ?", routineIDs).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM routine_days WHERE routine_id IN ?", routineIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.Routine{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.Metric{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.User{}, id).Error
	})
}
