package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymmate/internal/model"
)

func TestMetricRepoGroupCascade(t *testing.T) {
	db := newTestDB(t)
	repo := NewMetricRepo(db)
	ctx := context.Background()

	user := &model.User{Username: "carol", Email: "carol@example.com", Token: "t"}
	require.NoError(t, db.Create(user).Error)

	group := &model.MetricTypeGroup{Name: "Body measurements"}
	require.NoError(t, repo.CreateGroup(ctx, group))

	weight := &model.MetricType{GroupID: group.ID, Name: "Weight", Unit: "kg"}
	waist := &model.MetricType{GroupID: group.ID, Name: "Waist", Unit: "cm"}
	require.NoError(t, repo.CreateType(ctx, weight))
	require.NoError(t, repo.CreateType(ctx, waist))

	require.NoError(t, repo.CreateMetric(ctx, &model.Metric{UserID: user.ID, MetricTypeID: weight.ID, Value: 80}))
	require.NoError(t, repo.CreateMetric(ctx, &model.Metric{UserID: user.ID, MetricTypeID: waist.ID, Value: 90}))

	t.Run("group lookup by name", func(t *testing.T) {
		found, err := repo.GetGroupByName(ctx, "Body measurements")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, group.ID, found.ID)

		missing, err := repo.GetGroupByName(ctx, "Nope")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("type delete removes its metrics only", func(t *testing.T) {
		require.NoError(t, repo.DeleteType(ctx, waist.ID))

		var metrics int64
		require.NoError(t, db.Model(&model.Metric{}).Count(&metrics).Error)
		assert.EqualValues(t, 1, metrics)
	})

	t.Run("group delete removes types and metrics", func(t *testing.T) {
		require.NoError(t, repo.DeleteGroup(ctx, group.ID))

		var types, metrics int64
		require.NoError(t, db.Model(&model.MetricType{}).Count(&types).Error)
		require.NoError(t, db.Model(&model.Metric{}).Count(&metrics).Error)
		assert.Zero(t, types)
		assert.Zero(t, metrics)
	})
}

func TestMetricRepoOwnerScope(t *testing.T) {
	db := newTestDB(t)
	repo := NewMetricRepo(db)
	ctx := context.Background()

	owner := &model.User{Username: "dave", Email: "dave@example.com", Token: "t1"}
	other := &model.User{Username: "erin", Email: "erin@example.com", Token: "t2"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	group := &model.MetricTypeGroup{Name: "Body"}
	require.NoError(t, repo.CreateGroup(ctx, group))
	weight := &model.MetricType{GroupID: group.ID, Name: "Weight"}
	require.NoError(t, repo.CreateType(ctx, weight))

	require.NoError(t, repo.CreateMetric(ctx, &model.Metric{UserID: owner.ID, MetricTypeID: weight.ID, Value: 70}))
	require.NoError(t, repo.CreateMetric(ctx, &model.Metric{UserID: other.ID, MetricTypeID: weight.ID, Value: 95}))

	metrics, total, err := repo.ListMetrics(ctx, owner.ID, &MetricFilter{}, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, metrics, 1)
	assert.Equal(t, owner.ID, metrics[0].UserID)
	assert.Equal(t, "Weight", metrics[0].MetricType.Name)
}
