package service

import (
	"context"
	"testing"
	"time"

	"axis6/internal/api/dto"
	"axis6/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimeBlockRepo struct {
	blocks  map[uint64]*model.TimeBlock
	nextID  uint64
	deleted []uint64
}

func newFakeTimeBlockRepo() *fakeTimeBlockRepo {
	return &fakeTimeBlockRepo{blocks: make(map[uint64]*model.TimeBlock)}
}

func (f *fakeTimeBlockRepo) CreateTimeBlock(ctx context.Context, block *model.TimeBlock) error {
	f.nextID++
	block.ID = f.nextID
	f.blocks[block.ID] = block
	return nil
}

func (f *fakeTimeBlockRepo) GetTimeBlockById(ctx context.Context, id uint64) (*model.TimeBlock, error) {
	return f.blocks[id], nil
}

func (f *fakeTimeBlockRepo) GetTimeBlocksByDay(ctx context.Context, userID uint64, date time.Time) ([]*model.TimeBlock, error) {
	return nil, nil
}

func (f *fakeTimeBlockRepo) UpdateTimeBlock(ctx context.Context, block *model.TimeBlock) error {
	f.blocks[block.ID] = block
	return nil
}

func (f *fakeTimeBlockRepo) DeleteTimeBlock(ctx context.Context, id uint64) error {
	delete(f.blocks, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func newTimeBlockFixture() (*fakeTimeBlockRepo, TimeBlockService) {
	blockRepo := newFakeTimeBlockRepo()
	categoryRepo := &fakeCategoryRepo{categories: map[uint64]*model.Category{
		1: {ID: 1, Slug: "physical"},
	}}
	return blockRepo, NewTimeBlockService(blockRepo, categoryRepo)
}

func validBlockReq() *dto.TimeBlockReq {
	return &dto.TimeBlockReq{
		CategoryID:  1,
		Date:        "2026-03-10",
		StartMinute: 420,
		DurationMin: 60,
		Activity:    "morning run",
	}
}

func TestCreateTimeBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("valid slot", func(t *testing.T) {
		blockRepo, svc := newTimeBlockFixture()

		block, err := svc.CreateTimeBlock(ctx, 7, validBlockReq())
		require.NoError(t, err)
		assert.Equal(t, uint64(7), block.UserID)
		assert.Equal(t, 420, block.StartMinute)
		assert.Len(t, blockRepo.blocks, 1)
	})

	t.Run("unknown category", func(t *testing.T) {
		_, svc := newTimeBlockFixture()
		req := validBlockReq()
		req.CategoryID = 42

		_, err := svc.CreateTimeBlock(ctx, 7, req)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("slot crossing midnight", func(t *testing.T) {
		_, svc := newTimeBlockFixture()
		req := validBlockReq()
		req.StartMinute = 1400
		req.DurationMin = 60

		_, err := svc.CreateTimeBlock(ctx, 7, req)
		assert.ErrorIs(t, err, ErrTimeBlockInvalidRange)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, svc := newTimeBlockFixture()
		req := validBlockReq()
		req.DurationMin = 0

		_, err := svc.CreateTimeBlock(ctx, 7, req)
		assert.ErrorIs(t, err, ErrTimeBlockInvalidRange)
	})
}

func TestUpdateTimeBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("owner updates", func(t *testing.T) {
		blockRepo, svc := newTimeBlockFixture()
		created, err := svc.CreateTimeBlock(ctx, 7, validBlockReq())
		require.NoError(t, err)

		req := validBlockReq()
		req.Activity = "evening run"
		updated, err := svc.UpdateTimeBlock(ctx, 7, created.ID, req)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "evening run", blockRepo.blocks[created.ID].Activity)
	})

	t.Run("foreign block looks like missing", func(t *testing.T) {
		_, svc := newTimeBlockFixture()
		created, err := svc.CreateTimeBlock(ctx, 7, validBlockReq())
		require.NoError(t, err)

		_, err = svc.UpdateTimeBlock(ctx, 8, created.ID, validBlockReq())
		assert.ErrorIs(t, err, ErrTimeBlockNotFound)
	})
}

func TestDeleteTimeBlock(t *testing.T) {
	ctx := context.Background()

	t.Run("owner deletes", func(t *testing.T) {
		blockRepo, svc := newTimeBlockFixture()
		created, err := svc.CreateTimeBlock(ctx, 7, validBlockReq())
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTimeBlock(ctx, 7, created.ID))
		assert.Empty(t, blockRepo.blocks)
	})

	t.Run("unknown block", func(t *testing.T) {
		_, svc := newTimeBlockFixture()
		err := svc.DeleteTimeBlock(ctx, 7, 999)
		assert.ErrorIs(t, err, ErrTimeBlockNotFound)
	})
}
