package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/commpost"
	"github.com/fwojciec/commpost/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func newRecord(id, runID string) *commpost.Record {
	total := 5
	sponsor := "Member for 1 year"
	return &commpost.Record{
		Meta: commpost.Meta{
			RunID:       runID,
			SourceHash:  "00000000deadbeef",
			ProcessedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		},
		Post: &commpost.Post{
			ID: id,
			Main: commpost.Main{
				Author:      "Channel",
				PublishTime: "2 days ago",
				Content:     "Hello",
				ContentAttachment: &commpost.ContentAttachment{
					Images: []string{"https://i.ytimg.com/a.jpg"},
					Videos: []string{},
				},
				Like: 12,
			},
			Comments: []commpost.MainComment{{
				Comment: commpost.Comment{Author: "A", Content: "<b>Hi</b>", SponsorDuration: &sponsor, Like: 3},
				Replies: []commpost.Comment{{Author: "B", Content: ":_wave:"}},
			}},
			TotalComment: &total,
		},
	}
}

func TestPostService_SavePost(t *testing.T) {
	t.Parallel()

	t.Run("stores and retrieves record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPostService(setupTestDB(t))
		ctx := context.Background()
		rec := newRecord("p1", "")

		require.NoError(t, svc.SavePost(ctx, rec))

		got, err := svc.FindPostByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, rec, got)
	})

	t.Run("replaces existing record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPostService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SavePost(ctx, newRecord("p1", "")))

		updated := newRecord("p1", "")
		updated.Like = 99
		require.NoError(t, svc.SavePost(ctx, updated))

		got, err := svc.FindPostByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, 99, got.Like)

		all, err := svc.FindPosts(ctx, commpost.PostFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("rejects invalid record", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPostService(setupTestDB(t))

		err := svc.SavePost(context.Background(), &commpost.Record{Post: &commpost.Post{}})

		assert.Equal(t, commpost.EINVALID, commpost.ErrorCode(err))
	})

	t.Run("rejects unknown run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPostService(setupTestDB(t))

		err := svc.SavePost(context.Background(), newRecord("p1", "missing-run"))

		require.Error(t, err)
	})
}

func TestPostService_FindPostByID(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for missing post", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPostService(setupTestDB(t))

		_, err := svc.FindPostByID(context.Background(), "missing")

		assert.Equal(t, commpost.ENOTFOUND, commpost.ErrorCode(err))
	})
}

func TestPostService_FindPosts(t *testing.T) {
	t.Parallel()

	t.Run("filters by run and orders by id", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		run := &commpost.Run{SourceDir: "archive"}
		require.NoError(t, sqlite.NewRunService(db).CreateRun(ctx, run))

		svc := sqlite.NewPostService(db)
		require.NoError(t, svc.SavePost(ctx, newRecord("c", run.ID)))
		require.NoError(t, svc.SavePost(ctx, newRecord("a", run.ID)))
		require.NoError(t, svc.SavePost(ctx, newRecord("b", "")))

		recs, err := svc.FindPosts(ctx, commpost.PostFilter{RunID: &run.ID})

		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "a", recs[0].ID)
		assert.Equal(t, "c", recs[1].ID)
		assert.Equal(t, run.ID, recs[0].Meta.RunID)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPostService(setupTestDB(t))
		ctx := context.Background()
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, svc.SavePost(ctx, newRecord(id, "")))
		}

		recs, err := svc.FindPosts(ctx, commpost.PostFilter{Offset: 1})
		require.NoError(t, err)
		require.Len(t, recs, 2)
		assert.Equal(t, "b", recs[0].ID)

		recs, err = svc.FindPosts(ctx, commpost.PostFilter{Limit: 1, Offset: 2})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "c", recs[0].ID)
	})
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()

	t.Run("deletes existing post", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPostService(setupTestDB(t))
		ctx := context.Background()
		require.NoError(t, svc.SavePost(ctx, newRecord("p1", "")))

		require.NoError(t, svc.DeletePost(ctx, "p1"))

		_, err := svc.FindPostByID(ctx, "p1")
		assert.Equal(t, commpost.ENOTFOUND, commpost.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for missing post", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewPostService(setupTestDB(t))

		err := svc.DeletePost(context.Background(), "missing")

		assert.Equal(t, commpost.ENOTFOUND, commpost.ErrorCode(err))
	})
}
