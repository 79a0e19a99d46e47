package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gymmate/internal/api/dto"
	"gymmate/internal/model"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
)

func newWorkoutService(t *testing.T) (*WorkoutServiceImpl, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewWorkoutService(
		repository.NewDayOfWeekRepo(db),
		repository.NewRoutineRepo(db),
		repository.NewProgressRepo(db),
		repository.NewExerciseRepo(db),
	).(*WorkoutServiceImpl)
	return svc, db
}

func seedWorkoutFixtures(t *testing.T, db *gorm.DB) (owner, other *model.User, exercise *model.Exercise, day *model.DayOfWeek) {
	t.Helper()
	owner = &model.User{Username: "owner", Email: "owner@example.com", Token: "t1"}
	other = &model.User{Username: "other", Email: "other@example.com", Token: "t2"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	exercise = &model.Exercise{Name: "Deadlift"}
	require.NoError(t, db.Create(exercise).Error)
	day = &model.DayOfWeek{Day: "Monday"}
	require.NoError(t, db.Create(day).Error)
	return
}

func TestWorkoutServiceRoutineVisibility(t *testing.T) {
	svc, db := newWorkoutService(t)
	ctx := context.Background()
	owner, other, exercise, day := seedWorkoutFixtures(t, db)

	private, err := svc.CreateRoutine(ctx, owner.ID, &dto.RoutineDTO{
		Name:        "Secret plan",
		ExerciseIDs: []uint64{exercise.ID},
		DayIDs:      []uint64{day.ID},
	})
	require.NoError(t, err)

	isPublic := true
	public, err := svc.CreateRoutine(ctx, owner.ID, &dto.RoutineDTO{Name: "Shared plan", IsPublic: true})
	require.NoError(t, err)

	t.Run("owner reads own private routine", func(t *testing.T) {
		routine, err := svc.GetRoutine(ctx, owner.ID, private.ID)
		require.NoError(t, err)
		assert.Equal(t, "Secret plan", routine.Name)
		assert.Len(t, routine.Exercises, 1)
		assert.Len(t, routine.Days, 1)
	})

	t.Run("stranger sees private routine as missing", func(t *testing.T) {
		_, err := svc.GetRoutine(ctx, other.ID, private.ID)
		assert.ErrorIs(t, err, ErrRoutineNotFound)
	})

	t.Run("stranger can read a public routine", func(t *testing.T) {
		routine, err := svc.GetRoutine(ctx, other.ID, public.ID)
		require.NoError(t, err)
		assert.Equal(t, "Shared plan", routine.Name)
	})

	t.Run("stranger cannot modify even a public routine", func(t *testing.T) {
		name := "Hijacked"
		_, err := svc.UpdateRoutine(ctx, other.ID, public.ID, &dto.UpdateRoutineDTO{Name: &name})
		assert.ErrorIs(t, err, ErrRoutineNotFound)

		assert.ErrorIs(t, svc.DeleteRoutine(ctx, other.ID, public.ID), ErrRoutineNotFound)
	})

	t.Run("own listing excludes other users", func(t *testing.T) {
		routines, total, err := svc.ListRoutines(ctx, other.ID, &repository.RoutineFilter{}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 0, total)
		assert.Empty(t, routines)
	})

	t.Run("public listing only shows public routines", func(t *testing.T) {
		routines, total, err := svc.ListPublicRoutines(ctx, &repository.RoutineFilter{}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, routines, 1)
		assert.True(t, routines[0].IsPublic)
	})

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		updated, err := svc.UpdateRoutine(ctx, owner.ID, public.ID, &dto.UpdateRoutineDTO{IsPublic: &isPublic})
		require.NoError(t, err)
		assert.Equal(t, "Shared plan", updated.Name)
	})
}

func TestWorkoutServiceProgress(t *testing.T) {
	svc, db := newWorkoutService(t)
	ctx := context.Background()
	owner, other, exercise, _ := seedWorkoutFixtures(t, db)

	svc.now = func() time.Time {
		return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	}

	reps := 5
	weight := 100

	t.Run("future dates are rejected per field", func(t *testing.T) {
		_, err := svc.CreateProgress(ctx, owner.ID, &dto.ProgressDTO{
			ExerciseID: exercise.ID,
			Date:       "2025-03-11",
		})
		fieldErrs, ok := validate.AsFieldErrors(err)
		require.True(t, ok)
		assert.Contains(t, fieldErrs["date"], "Future dates are not allowed")
	})

	progress, err := svc.CreateProgress(ctx, owner.ID, &dto.ProgressDTO{
		ExerciseID: exercise.ID,
		Date:       "2025-03-10",
		Sets:       []dto.SetDTO{{Reps: &reps, Weight: &weight}},
	})
	require.NoError(t, err)
	require.Len(t, progress.Sets, 1)

	t.Run("stranger cannot see the record", func(t *testing.T) {
		_, err := svc.GetProgress(ctx, other.ID, progress.ID)
		assert.ErrorIs(t, err, ErrProgressNotFound)
	})

	t.Run("sets are replaced wholesale on update", func(t *testing.T) {
		duration := 60
		updated, err := svc.UpdateProgress(ctx, owner.ID, progress.ID, &dto.UpdateProgressDTO{
			Sets: []dto.SetDTO{{Duration: &duration}, {Reps: &reps}},
		})
		require.NoError(t, err)
		require.Len(t, updated.Sets, 2)

		var setCount int64
		require.NoError(t, db.Model(&model.Set{}).Count(&setCount).Error)
		assert.EqualValues(t, 2, setCount)
	})

	t.Run("delete removes sets with the record", func(t *testing.T) {
		require.NoError(t, svc.DeleteProgress(ctx, owner.ID, progress.ID))

		var setCount int64
		require.NoError(t, db.Model(&model.Set{}).Count(&setCount).Error)
		assert.Zero(t, setCount)
	})
}
