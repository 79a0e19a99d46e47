package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymmate/internal/api/dto"
	"gymmate/internal/model"
	"gymmate/internal/pkg/validate"
	"gymmate/internal/repository"
)

func TestMetricServiceGroups(t *testing.T) {
	db := newTestDB(t)
	svc := NewMetricService(repository.NewMetricRepo(db))
	ctx := context.Background()

	_, err := svc.CreateGroup(ctx, &dto.MetricTypeGroupDTO{Name: "Body"})
	require.NoError(t, err)

	t.Run("group names are unique", func(t *testing.T) {
		_, err := svc.CreateGroup(ctx, &dto.MetricTypeGroupDTO{Name: "Body"})
		fieldErrs, ok := validate.AsFieldErrors(err)
		require.True(t, ok)
		assert.NotEmpty(t, fieldErrs["name"])
	})

	t.Run("rename to an existing name is rejected", func(t *testing.T) {
		other, err := svc.CreateGroup(ctx, &dto.MetricTypeGroupDTO{Name: "Performance"})
		require.NoError(t, err)

		_, err = svc.UpdateGroup(ctx, other.ID, &dto.MetricTypeGroupDTO{Name: "Body"})
		_, ok := validate.AsFieldErrors(err)
		assert.True(t, ok)

		// 改回自己的名字不算冲突
		_, err = svc.UpdateGroup(ctx, other.ID, &dto.MetricTypeGroupDTO{Name: "Performance"})
		require.NoError(t, err)
	})

	t.Run("type requires an existing group", func(t *testing.T) {
		_, err := svc.CreateType(ctx, &dto.MetricTypeDTO{GroupID: 9999, Name: "Weight"})
		assert.ErrorIs(t, err, ErrGroupNotFound)
	})
}

func TestMetricServiceOwnerScope(t *testing.T) {
	db := newTestDB(t)
	svc := NewMetricService(repository.NewMetricRepo(db))
	ctx := context.Background()

	owner := &model.User{Username: "owner", Email: "owner@example.com", Token: "t1"}
	other := &model.User{Username: "other", Email: "other@example.com", Token: "t2"}
	require.NoError(t, db.Create(owner).Error)
	require.NoError(t, db.Create(other).Error)

	group, err := svc.CreateGroup(ctx, &dto.MetricTypeGroupDTO{Name: "Body"})
	require.NoError(t, err)
	weight, err := svc.CreateType(ctx, &dto.MetricTypeDTO{GroupID: group.ID, Name: "Weight", Unit: "kg"})
	require.NoError(t, err)

	value := 82.5
	metric, err := svc.CreateMetric(ctx, owner.ID, &dto.MetricDTO{MetricTypeID: weight.ID, Value: &value})
	require.NoError(t, err)

	t.Run("stranger access reads as missing", func(t *testing.T) {
		_, err := svc.GetMetric(ctx, other.ID, metric.ID)
		assert.ErrorIs(t, err, ErrMetricNotFound)

		assert.ErrorIs(t, svc.DeleteMetric(ctx, other.ID, metric.ID), ErrMetricNotFound)
	})

	t.Run("owner can update the value", func(t *testing.T) {
		next := 81.0
		updated, err := svc.UpdateMetric(ctx, owner.ID, metric.ID, &dto.MetricDTO{MetricTypeID: weight.ID, Value: &next})
		require.NoError(t, err)
		assert.Equal(t, 81.0, updated.Value)
	})
}
