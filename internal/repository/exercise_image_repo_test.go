package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymmate/internal/model"
)

func TestExerciseImageMainFlag(t *testing.T) {
	db := newTestDB(t)
	repo := NewExerciseImageRepo(db)
	ctx := context.Background()

	exercise := &model.Exercise{Name: "Bench press"}
	require.NoError(t, db.Create(exercise).Error)

	mainsFor := func(t *testing.T) []uint64 {
		t.Helper()
		var ids []uint64
		require.NoError(t, db.Model(&model.ExerciseImage{}).
			Where("exercise_id = ? AND is_main = ?", exercise.ID, true).
			Pluck("id", &ids).Error)
		return ids
	}

	first := &model.ExerciseImage{ExerciseID: exercise.ID, Image: "exercises/a.png"}
	require.NoError(t, repo.CreateImage(ctx, first))

	t.Run("first image becomes main automatically", func(t *testing.T) {
		assert.Equal(t, []uint64{first.ID}, mainsFor(t))
	})

	second := &model.ExerciseImage{ExerciseID: exercise.ID, Image: "exercises/b.png", IsMain: true}
	require.NoError(t, repo.CreateImage(ctx, second))

	t.Run("new main demotes the previous one", func(t *testing.T) {
		assert.Equal(t, []uint64{second.ID}, mainsFor(t))
	})

	t.Run("unsetting the only main promotes another image", func(t *testing.T) {
		second.IsMain = false
		require.NoError(t, repo.UpdateImage(ctx, second))
		mains := mainsFor(t)
		require.Len(t, mains, 1)
		assert.Equal(t, first.ID, mains[0])
	})

	t.Run("deleting the main image promotes the next", func(t *testing.T) {
		deleted, err := repo.DeleteImage(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, deleted)
		assert.Equal(t, "exercises/a.png", deleted.Image)

		mains := mainsFor(t)
		require.Len(t, mains, 1)
		assert.Equal(t, second.ID, mains[0])
	})

	t.Run("deleting a missing image returns nil", func(t *testing.T) {
		deleted, err := repo.DeleteImage(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, deleted)
	})
}
