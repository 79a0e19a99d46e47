package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymmate/internal/model"
)

func TestUserRepoCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	user := &model.User{
		Username:     "alice@example.com",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		FirstName:    "Alice",
		Token:        "token-1",
	}
	require.NoError(t, repo.CreateUser(ctx, user))
	require.NotZero(t, user.ID)

	t.Run("get by username and email", func(t *testing.T) {
		found, err := repo.GetUserByUsername(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, user.ID, found.ID)

		found, err = repo.GetUserByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
	})

	t.Run("missing user returns nil without error", func(t *testing.T) {
		found, err := repo.GetUserById(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("update fields", func(t *testing.T) {
		err := repo.UpdateUser(ctx, user.ID, map[string]interface{}{
			"is_active": true,
			"token":     "token-2",
		})
		require.NoError(t, err)

		found, err := repo.GetUserByToken(ctx, "token-2")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.True(t, found.IsActive)

		stale, err := repo.GetUserByToken(ctx, "token-1")
		require.NoError(t, err)
		assert.Nil(t, stale)
	})

	t.Run("list filters by name", func(t *testing.T) {
		users, total, err := repo.ListUsers(ctx, &UserFilter{FirstName: "Ali"}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, users, 1)

		users, total, err = repo.ListUsers(ctx, &UserFilter{FirstName: "Bob"}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
		assert.Empty(t, users)
	})
}

func TestUserRepoDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := &model.User{Username: "bob", Email: "bob@example.com", Token: "t"}
	require.NoError(t, db.Create(user).Error)

	group := &model.MetricTypeGroup{Name: "Body"}
	require.NoError(t, db.Create(group).Error)
	metricType := &model.MetricType{GroupID: group.ID, Name: "Weight", Unit: "kg"}
	require.NoError(t, db.Create(metricType).Error)
	require.NoError(t, db.Create(&model.Metric{UserID: user.ID, MetricTypeID: metricType.ID, Value: 82.5}).Error)

	exercise := &model.Exercise{Name: "Squat"}
	require.NoError(t, db.Create(exercise).Error)
	day := &model.DayOfWeek{Day: "Monday"}
	require.NoError(t, db.Create(day).Error)

	routine := &model.Routine{
		UserID:    user.ID,
		Name:      "Leg day",
		Exercises: []model.Exercise{*exercise},
		Days:      []model.DayOfWeek{*day},
	}
	require.NoError(t, db.Create(routine).Error)

	reps := 5
	progress := &model.Progress{
		UserID:     user.ID,
		ExerciseID: exercise.ID,
		Date:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Sets:       []model.Set{{Reps: &reps}},
	}
	require.NoError(t, db.Create(progress).Error)

	repo := NewUserRepo(db)
	require.NoError(t, repo.DeleteUser(ctx, user.ID))

	counts := map[string]interface{}{
		"users":    &model.User{},
		"metrics":  &model.Metric{},
		"routines": &model.Routine{},
		"progress": &model.Progress{},
		"sets":     &model.Set{},
	}
	for table, m := range counts {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error, table)
		assert.Zero(t, n, "table %s should be empty", table)
	}

	// 字典与动作库不受用户注销影响
	var exercises, days int64
	require.NoError(t, db.Model(&model.Exercise{}).Count(&exercises).Error)
	require.NoError(t, db.Model(&model.DayOfWeek{}).Count(&days).Error)
	assert.EqualValues(t, 1, exercises)
	assert.EqualValues(t, 1, days)

	var joinRows int64
	require.NoError(t, db.Raw("SELECT COUNT(*) FROM routine_exercises").Scan(&joinRows).Error)
	assert.Zero(t, joinRows)
}
