package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/validation"
	"foodgram-service/internal/config"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure"
	"foodgram-service/internal/infrastructure/db"
	"foodgram-service/internal/infrastructure/db/postgres"
	"foodgram-service/internal/infrastructure/logger"
	"foodgram-service/internal/infrastructure/storage"
)

type publishedEvent struct {
	Name    string
	Payload interface{}
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Name: event, Payload: payload})
	return nil
}

func (p *recordingPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name)
	}
	return out
}

// memoryImages keeps saved images in a map keyed by reference.
type memoryImages struct {
	mu     sync.Mutex
	next   int
	stored map[string][]byte
}

func newMemoryImages() *memoryImages {
	return &memoryImages{stored: map[string][]byte{}}
}

func (m *memoryImages) Save(_ context.Context, img *storage.Image) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	ref := fmt.Sprintf("/media/recipes/%d.png", m.next)
	m.stored[ref] = img.Data
	return ref, nil
}

func (m *memoryImages) Delete(_ context.Context, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stored, ref)
	return nil
}

func (m *memoryImages) refs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.stored))
	for ref := range m.stored {
		out = append(out, ref)
	}
	return out
}

type testEnv struct {
	users       repositories.UserRepository
	tags        repositories.TagRepository
	ingredients repositories.IngredientRepository
	recipeRepo  repositories.RecipeRepository
	relationsDB repositories.RelationRepository
	followsDB   repositories.FollowRepository

	catalog      interfaces.CatalogService
	recipes      interfaces.RecipeService
	relations    interfaces.RelationService
	userService  interfaces.UserService
	shoppingList interfaces.ShoppingListService

	events *recordingPublisher
	images *memoryImages

	alice, bob *entities.User
	salt       *entities.Ingredient
	flour      *entities.Ingredient
	breakfast  *entities.Tag
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()

	gdb, err := db.Open(config.DatabaseConfig{Driver: db.DriverSQLite, DSN: "file::memory:?_foreign_keys=on"}, log)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(gdb))
	sqlDB, err := db.SQLX(gdb, db.DriverSQLite)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	env := &testEnv{
		users:       postgres.NewUserRepository(gdb, log),
		tags:        postgres.NewTagRepository(gdb, log),
		ingredients: postgres.NewIngredientRepository(gdb, log),
		recipeRepo:  postgres.NewRecipeRepository(gdb, log),
		relationsDB: postgres.NewRelationRepository(gdb, log),
		followsDB:   postgres.NewFollowRepository(gdb, log),
		events:      &recordingPublisher{},
		images:      newMemoryImages(),
	}

	cache, err := infrastructure.NewCatalogCache(64, time.Minute, infrastructure.NewRedisService(config.RedisConfig{}, log), log)
	require.NoError(t, err)

	env.catalog = NewCatalogService(env.tags, env.ingredients, cache, log)
	env.recipes = NewRecipeService(env.recipeRepo, env.users, env.relationsDB, env.followsDB,
		validation.NewRecipeValidator(env.ingredients, env.tags), env.images, env.events, log)
	env.relations = NewRelationService(env.recipeRepo, env.relationsDB, env.events, log)
	env.userService = NewUserService(env.users, env.followsDB, env.recipeRepo, env.events, log)
	env.shoppingList = NewShoppingListService(postgres.NewShoppingListRepository(sqlDB, false, log), log)

	env.alice, err = env.users.Create(ctx, entities.NewUser("alice@example.com", "alice", "Alice", "A"))
	require.NoError(t, err)
	env.bob, err = env.users.Create(ctx, entities.NewUser("bob@example.com", "bob", "Bob", "B"))
	require.NoError(t, err)

	salt, _ := entities.NewIngredient("salt", "g")
	env.salt, err = env.ingredients.Create(ctx, salt)
	require.NoError(t, err)
	flour, _ := entities.NewIngredient("flour", "g")
	env.flour, err = env.ingredients.Create(ctx, flour)
	require.NoError(t, err)
	breakfast, _ := entities.NewTag("Breakfast", "#FFAA00", "breakfast")
	env.breakfast, err = env.tags.Create(ctx, breakfast)
	require.NoError(t, err)

	return env
}

var testImage = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png"))

func (env *testEnv) createCommand(author uuid.UUID, name string, ingredients ...command.IngredientAmountInput) *command.CreateRecipeCommand {
	if len(ingredients) == 0 {
		ingredients = []command.IngredientAmountInput{{ID: env.flour.Id, Amount: 100}}
	}
	return &command.CreateRecipeCommand{
		AuthorId:    author,
		Name:        name,
		Text:        "Cook it.",
		CookingTime: 15,
		Image:       testImage,
		Ingredients: ingredients,
		Tags:        []uuid.UUID{env.breakfast.Id},
	}
}

func (env *testEnv) mustCreate(t *testing.T, author uuid.UUID, name string, ingredients ...command.IngredientAmountInput) uuid.UUID {
	t.Helper()
	result, err := env.recipes.CreateRecipe(context.Background(), env.createCommand(author, name, ingredients...))
	require.NoError(t, err)
	return result.Result.Id
}
