package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"foodgram-service/internal/config"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/infrastructure/db"
	"foodgram-service/internal/infrastructure/logger"
)

// testStore is a migrated in-memory sqlite database with a few catalog rows.
type testStore struct {
	gdb         *gorm.DB
	users       *UserRepository
	tags        *TagRepository
	ingredients *IngredientRepository
	recipes     *RecipeRepository
	relations   *RelationRepository
	follows     *FollowRepository

	alice, bob  *entities.User
	salt, flour *entities.Ingredient
	breakfast   *entities.Tag
	dinner      *entities.Tag
}

func newTestStore(t *testing.T) *testStore {
	t.Helper()
	return openTestStore(t, config.DatabaseConfig{
		Driver: db.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
}

// openTestStore migrates the given database and seeds it. A postgres
// database is wiped first, so point it at a disposable one.
func openTestStore(t *testing.T, cfg config.DatabaseConfig) *testStore {
	t.Helper()
	log := logger.NewNop()

	gdb, err := db.Open(cfg, log)
	require.NoError(t, err)
	if cfg.Driver == db.DriverPostgres {
		require.NoError(t, gdb.Migrator().DropTable(
			&FollowModel{}, &CartModel{}, &FavoriteModel{}, &RecipeTagModel{}, &RecipeIngredientModel{},
			&RecipeModel{}, &IngredientModel{}, &TagModel{}, &UserModel{},
		))
	}
	require.NoError(t, Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	s := &testStore{
		gdb:         gdb,
		users:       NewUserRepository(gdb, log).(*UserRepository),
		tags:        NewTagRepository(gdb, log).(*TagRepository),
		ingredients: NewIngredientRepository(gdb, log).(*IngredientRepository),
		recipes:     NewRecipeRepository(gdb, log).(*RecipeRepository),
		relations:   NewRelationRepository(gdb, log).(*RelationRepository),
		follows:     NewFollowRepository(gdb, log).(*FollowRepository),
	}

	ctx := context.Background()
	s.alice = s.mustUser(t, "alice")
	s.bob = s.mustUser(t, "bob")

	salt, err := entities.NewIngredient("salt", "g")
	require.NoError(t, err)
	s.salt, err = s.ingredients.Create(ctx, salt)
	require.NoError(t, err)
	flour, err := entities.NewIngredient("flour", "g")
	require.NoError(t, err)
	s.flour, err = s.ingredients.Create(ctx, flour)
	require.NoError(t, err)

	breakfast, err := entities.NewTag("Breakfast", "#FFAA00", "breakfast")
	require.NoError(t, err)
	s.breakfast, err = s.tags.Create(ctx, breakfast)
	require.NoError(t, err)
	dinner, err := entities.NewTag("Dinner", "#0000FF", "dinner")
	require.NoError(t, err)
	s.dinner, err = s.tags.Create(ctx, dinner)
	require.NoError(t, err)

	return s
}

func (s *testStore) mustUser(t *testing.T, username string) *entities.User {
	t.Helper()
	user, err := s.users.Create(context.Background(),
		entities.NewUser(fmt.Sprintf("%s@example.com", username), username, username, "Tester"))
	require.NoError(t, err)
	return user
}

func (s *testStore) mustRecipe(t *testing.T, author uuid.UUID, name string, ingredients []entities.RecipeIngredient, tags ...uuid.UUID) *entities.Recipe {
	t.Helper()
	validated, err := entities.NewValidatedRecipe(entities.NewRecipe(author, name, "Cook it.", 10, ingredients, tags))
	require.NoError(t, err)
	validated.SetImage("/media/recipes/" + name + ".png")
	recipe, err := s.recipes.Create(context.Background(), validated)
	require.NoError(t, err)
	return recipe
}

func amounts(pairs ...interface{}) []entities.RecipeIngredient {
	var out []entities.RecipeIngredient
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, entities.RecipeIngredient{
			IngredientId: pairs[i].(uuid.UUID),
			Amount:       pairs[i+1].(int),
		})
	}
	return out
}
