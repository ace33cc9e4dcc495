package main

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/jobboard/internal/domain/listing"
	"github.com/oksasatya/jobboard/internal/infrastructure/memory"
	"github.com/oksasatya/jobboard/pkg/helpers"
)

func TestSeedRun(t *testing.T) {
	logger, _ := test.NewNullLogger()
	store := memory.NewStore()
	s, err := newSeeder(store.Users(), store.Jobs(), store.Posts(), 42, logger)
	require.NoError(t, err)
	ctx := context.Background()

	sum, err := s.run(ctx, options{Users: 5, Jobs: 8, Posts: 6})
	require.NoError(t, err)
	assert.Equal(t, 6, sum.Users)
	assert.Equal(t, 8, sum.Jobs)
	assert.Equal(t, 6, sum.Posts)

	n, err := store.Jobs().Count(ctx, listing.JobQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 8, n)

	posts, err := store.Posts().List(ctx, listing.PostQuery{}, 0, 0)
	require.NoError(t, err)
	likes := 0
	for _, p := range posts {
		likes += len(p.Likes)
	}
	assert.Equal(t, sum.Likes, likes)

	demo, err := store.Users().GetByEmail(ctx, demoEmail)
	require.NoError(t, err)
	assert.True(t, helpers.CompareHashAndPassword(demo.Password, demoPassword))

	// a second run reuses the demo account
	sum, err = s.run(ctx, options{})
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Users)
}
