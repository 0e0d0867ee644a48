package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/common"
	"foodgram-service/internal/application/query"
	"foodgram-service/internal/domain/domainerr"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/messaging"
)

func TestFollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, name := range []string{"One", "Two", "Three"} {
		env.mustCreate(t, env.alice.Id, name)
	}

	_, err := env.userService.Follow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: env.bob.Id})
	assert.True(t, domainerr.Is(err, domainerr.KindInvalidArgument))

	_, err = env.userService.Follow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: uuid.New()})
	assert.True(t, domainerr.Is(err, domainerr.KindNotFound))

	sub, err := env.userService.Follow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: env.alice.Id, RecipesLimit: 2})
	require.NoError(t, err)
	assert.Equal(t, "alice", sub.Result.Username)
	assert.True(t, sub.Result.IsSubscribed)
	assert.Len(t, sub.Result.Recipes, 2)
	assert.Equal(t, int64(3), sub.Result.RecipesCount)

	_, err = env.userService.Follow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: env.alice.Id})
	assert.True(t, domainerr.Is(err, domainerr.KindConflict))

	assert.Contains(t, env.events.names(), messaging.EventFollowAdded)
}

func TestUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.userService.Unfollow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: env.bob.Id})
	assert.True(t, domainerr.Is(err, domainerr.KindInvalidArgument))

	err = env.userService.Unfollow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: env.alice.Id})
	assert.True(t, domainerr.Is(err, domainerr.KindNotFound))

	_, err = env.userService.Follow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: env.alice.Id, RecipesLimit: -1})
	require.NoError(t, err)
	require.NoError(t, env.userService.Unfollow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: env.alice.Id}))

	profile, err := env.userService.GetUser(ctx, &env.bob.Id, env.alice.Id)
	require.NoError(t, err)
	assert.False(t, profile.Result.IsSubscribed)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.userService.Follow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: env.alice.Id, RecipesLimit: -1})
	require.NoError(t, err)

	asBob, err := env.userService.GetUser(ctx, &env.bob.Id, env.alice.Id)
	require.NoError(t, err)
	assert.True(t, asBob.Result.IsSubscribed)
	assert.Equal(t, "alice@example.com", asBob.Result.Email)

	anonymous, err := env.userService.GetUser(ctx, nil, env.alice.Id)
	require.NoError(t, err)
	assert.False(t, anonymous.Result.IsSubscribed)

	self, err := env.userService.GetUser(ctx, &env.alice.Id, env.alice.Id)
	require.NoError(t, err)
	assert.False(t, self.Result.IsSubscribed)

	_, err = env.userService.GetUser(ctx, nil, uuid.New())
	assert.True(t, domainerr.Is(err, domainerr.KindNotFound))
}

func TestListSubscriptions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	carol, err := env.users.Create(ctx, entities.NewUser("carol@example.com", "carol", "Carol", "C"))
	require.NoError(t, err)
	env.mustCreate(t, env.alice.Id, "Alice's")
	env.mustCreate(t, carol.Id, "Carol's 1")
	env.mustCreate(t, carol.Id, "Carol's 2")

	for _, author := range []uuid.UUID{env.alice.Id, carol.Id} {
		_, err := env.userService.Follow(ctx, &command.FollowCommand{UserId: env.bob.Id, AuthorId: author, RecipesLimit: -1})
		require.NoError(t, err)
	}

	all, err := env.userService.ListSubscriptions(ctx, &query.ListSubscriptionsQuery{UserId: env.bob.Id, RecipesLimit: -1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Count)
	require.Len(t, all.Results, 2)
	total := 0
	for _, sub := range all.Results {
		assert.True(t, sub.IsSubscribed)
		total += len(sub.Recipes)
	}
	assert.Equal(t, 3, total)

	truncated, err := env.userService.ListSubscriptions(ctx, &query.ListSubscriptionsQuery{
		UserId:       env.bob.Id,
		Page:         common.Page{Number: 1, Limit: 1},
		RecipesLimit: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), truncated.Count)
	require.Len(t, truncated.Results, 1)
	assert.LessOrEqual(t, len(truncated.Results[0].Recipes), 1)

	none, err := env.userService.ListSubscriptions(ctx, &query.ListSubscriptionsQuery{UserId: env.alice.Id})
	require.NoError(t, err)
	assert.Zero(t, none.Count)
	assert.Empty(t, none.Results)
}
