package rest

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-service/internal/application/services"
	"foodgram-service/internal/application/validation"
	"foodgram-service/internal/config"
	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/infrastructure"
	"foodgram-service/internal/infrastructure/authz"
	"foodgram-service/internal/infrastructure/db"
	"foodgram-service/internal/infrastructure/db/postgres"
	"foodgram-service/internal/infrastructure/logger"
	"foodgram-service/internal/infrastructure/storage"
	"foodgram-service/internal/messaging"
)

const testSecret = "test-secret"

type apiFixture struct {
	e          *echo.Echo
	jwt        *infrastructure.JWTService
	alice, bob *entities.User
	salt       *entities.Ingredient
	flour      *entities.Ingredient
	breakfast  *entities.Tag
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	ctx := context.Background()
	log := logger.NewNop()

	gdb, err := db.Open(config.DatabaseConfig{Driver: db.DriverSQLite, DSN: "file::memory:?_foreign_keys=on"}, log)
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(gdb))
	sqlDB, err := db.SQLX(gdb, db.DriverSQLite)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	users := postgres.NewUserRepository(gdb, log)
	tags := postgres.NewTagRepository(gdb, log)
	ingredients := postgres.NewIngredientRepository(gdb, log)
	recipes := postgres.NewRecipeRepository(gdb, log)
	relations := postgres.NewRelationRepository(gdb, log)
	follows := postgres.NewFollowRepository(gdb, log)

	cache, err := infrastructure.NewCatalogCache(64, time.Minute, infrastructure.NewRedisService(config.RedisConfig{}, log), log)
	require.NoError(t, err)
	mediaDir := t.TempDir()
	images, err := storage.NewLocalStore(mediaDir, "/media")
	require.NoError(t, err)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)
	limiterCtx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)

	events := messaging.NopPublisher{}
	f := &apiFixture{jwt: infrastructure.NewJWTService(testSecret)}
	f.e = NewRouter(Deps{
		Catalog: services.NewCatalogService(tags, ingredients, cache, log),
		Recipes: services.NewRecipeService(recipes, users, relations, follows,
			validation.NewRecipeValidator(ingredients, tags), images, events, log),
		Relations:    services.NewRelationService(recipes, relations, events, log),
		Users:        services.NewUserService(users, follows, recipes, events, log),
		ShoppingList: services.NewShoppingListService(postgres.NewShoppingListRepository(sqlDB, false, log), log),
		JWT:          f.jwt,
		Enforcer:     enforcer,
		Limiter:      infrastructure.NewRateLimiter(limiterCtx, 1000, 1000),
		Metrics:      NewMetrics(),
		MediaDir:     mediaDir,
		Log:          log,
	})

	f.alice, err = users.Create(ctx, entities.NewUser("alice@example.com", "alice", "Alice", "A"))
	require.NoError(t, err)
	f.bob, err = users.Create(ctx, entities.NewUser("bob@example.com", "bob", "Bob", "B"))
	require.NoError(t, err)
	salt, _ := entities.NewIngredient("salt", "g")
	f.salt, err = ingredients.Create(ctx, salt)
	require.NoError(t, err)
	flour, _ := entities.NewIngredient("flour", "g")
	f.flour, err = ingredients.Create(ctx, flour)
	require.NoError(t, err)
	breakfast, _ := entities.NewTag("Breakfast", "#FFAA00", "breakfast")
	f.breakfast, err = tags.Create(ctx, breakfast)
	require.NoError(t, err)
	return f
}

func (f *apiFixture) token(t *testing.T, user *entities.User, role string) string {
	t.Helper()
	token, err := f.jwt.GenerateToken(user.Id, role, time.Hour)
	require.NoError(t, err)
	return token
}

func (f *apiFixture) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(raw))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func (f *apiFixture) recipeBody(name string) map[string]interface{} {
	return map[string]interface{}{
		"name":         name,
		"text":         "Mix and bake.",
		"cooking_time": 30,
		"image":        "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png")),
		"ingredients": []map[string]interface{}{
			{"id": f.flour.Id, "amount": 2},
			{"id": f.salt.Id, "amount": 1},
		},
		"tags": []uuid.UUID{f.breakfast.Id},
	}
}

func (f *apiFixture) createRecipe(t *testing.T, token, name string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/api/recipes", token, f.recipeBody(name))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode(t, rec)["id"].(string)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	f.do(t, http.MethodGet, "/api/tags", "", nil)
	rec = f.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `foodgram_http_requests_total{method="GET",route="/api/tags",status="200"}`)
}

func TestCatalogEndpoints(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.token(t, f.alice, authz.RoleAdmin)
	user := f.token(t, f.bob, authz.RoleUser)

	rec := f.do(t, http.MethodGet, "/api/tags", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tags []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tags))
	require.Len(t, tags, 1)
	assert.Equal(t, "breakfast", tags[0]["slug"])

	body := map[string]string{"name": "Lunch", "color": "#00FF00", "slug": "lunch"}
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/api/tags", "", body).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPost, "/api/tags", user, body).Code)
	rec = f.do(t, http.MethodPost, "/api/tags", admin, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/tags", admin, body).Code)

	rec = f.do(t, http.MethodGet, "/api/ingredients?name=fl", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var ingredients []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ingredients))
	require.Len(t, ingredients, 1)
	assert.Equal(t, "flour", ingredients[0]["name"])

	assert.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/ingredients/"+f.salt.Id.String(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/ingredients/"+uuid.NewString(), "", nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/ingredients/not-a-uuid", "", nil).Code)
}

func TestRecipeLifecycle(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, f.alice, authz.RoleUser)
	bob := f.token(t, f.bob, authz.RoleUser)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/api/recipes", "", f.recipeBody("Anon")).Code)

	id := f.createRecipe(t, alice, "Scones")

	rec := f.do(t, http.MethodGet, "/api/recipes/"+id, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	recipe := decode(t, rec)
	assert.Equal(t, "Scones", recipe["name"])
	assert.True(t, strings.HasPrefix(recipe["image"].(string), "/media/recipes/"))
	ingredients := recipe["ingredients"].([]interface{})
	require.Len(t, ingredients, 2)
	first := ingredients[0].(map[string]interface{})
	assert.Equal(t, "flour", first["name"])
	assert.Equal(t, "g", first["measurement_unit"])
	assert.Equal(t, float64(2), first["amount"])
	tag := recipe["tags"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "#FFAA00", tag["color"])

	imageRec := f.do(t, http.MethodGet, recipe["image"].(string), "", nil)
	assert.Equal(t, http.StatusOK, imageRec.Code)

	patch := map[string]interface{}{
		"name":        "Better scones",
		"ingredients": []map[string]interface{}{{"id": f.salt.Id, "amount": 3}},
		"tags":        []uuid.UUID{f.breakfast.Id},
	}
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPatch, "/api/recipes/"+id, bob, patch).Code)
	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodPatch, "/api/recipes/"+id, bob, map[string]interface{}{}).Code)
	rec = f.do(t, http.MethodPatch, "/api/recipes/"+id, alice, patch)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decode(t, rec)
	assert.Equal(t, "Better scones", updated["name"])
	assert.Len(t, updated["ingredients"], 1)

	assert.Equal(t, http.StatusForbidden, f.do(t, http.MethodDelete, "/api/recipes/"+id, bob, nil).Code)
	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/recipes/"+id, alice, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodGet, "/api/recipes/"+id, "", nil).Code)
}

func TestRecipeValidationErrors(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, f.alice, authz.RoleUser)

	body := f.recipeBody("Bad")
	body["ingredients"] = []map[string]interface{}{{"id": f.salt.Id, "amount": 0}}
	body["cooking_time"] = 0
	rec := f.do(t, http.MethodPost, "/api/recipes", alice, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, "error", resp["status"])
	errs := resp["errors"].(map[string]interface{})
	assert.Contains(t, errs, "ingredients")
	assert.Contains(t, errs, "cooking_time")

	body = f.recipeBody("Missing")
	body["tags"] = []uuid.UUID{uuid.New()}
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/api/recipes", alice, body).Code)

	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader("{not json"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+alice)
	raw := httptest.NewRecorder()
	f.e.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/recipes", "garbage", nil).Code)
}

func TestFavoritesCartAndDownload(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, f.alice, authz.RoleUser)
	bob := f.token(t, f.bob, authz.RoleUser)
	first := f.createRecipe(t, alice, "First")
	second := f.createRecipe(t, alice, "Second")

	rec := f.do(t, http.MethodPost, "/api/recipes/"+first+"/favorite", bob, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "First", decode(t, rec)["name"])
	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, "/api/recipes/"+first+"/favorite", bob, nil).Code)
	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodPost, "/api/recipes/"+first+"/favorite", "", nil).Code)

	rec = f.do(t, http.MethodGet, "/api/recipes?is_favorited=1", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Equal(t, float64(1), page["count"])
	result := page["results"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, true, result["is_favorited"])

	rec = f.do(t, http.MethodGet, "/api/recipes?is_favorited=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decode(t, rec)["count"])

	for _, id := range []string{first, second} {
		require.Equal(t, http.StatusCreated, f.do(t, http.MethodPost, "/api/recipes/"+id+"/shopping_cart", bob, nil).Code)
	}
	rec = f.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "attachment; filename=shopping_list.txt", rec.Header().Get(echo.HeaderContentDisposition))
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain))
	assert.Equal(t, "flour (g) — 4\nsalt (g) — 2\n", rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/recipes/download_shopping_cart", "", nil).Code)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, "/api/recipes/"+second+"/shopping_cart", bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, "/api/recipes/"+second+"/shopping_cart", bob, nil).Code)
}

func TestRecipeListFilters(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, f.alice, authz.RoleUser)
	bob := f.token(t, f.bob, authz.RoleUser)
	for _, name := range []string{"A", "B", "C"} {
		f.createRecipe(t, alice, name)
	}
	f.createRecipe(t, bob, "D")

	rec := f.do(t, http.MethodGet, "/api/recipes?limit=2&page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Equal(t, float64(4), page["count"])
	assert.Len(t, page["results"], 2)

	rec = f.do(t, http.MethodGet, "/api/recipes?author="+f.bob.Id.String(), "", nil)
	assert.Equal(t, float64(1), decode(t, rec)["count"])

	rec = f.do(t, http.MethodGet, "/api/recipes?tags=breakfast&tags=dinner", "", nil)
	assert.Equal(t, float64(4), decode(t, rec)["count"])

	rec = f.do(t, http.MethodGet, "/api/recipes?tags=dinner", "", nil)
	assert.Equal(t, float64(0), decode(t, rec)["count"])

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodGet, "/api/recipes?limit=abc", "", nil).Code)
}

func TestSubscriptions(t *testing.T) {
	f := newAPIFixture(t)
	alice := f.token(t, f.alice, authz.RoleUser)
	bob := f.token(t, f.bob, authz.RoleUser)
	for _, name := range []string{"A", "B", "C"} {
		f.createRecipe(t, alice, name)
	}

	aliceURL := "/api/users/" + f.alice.Id.String()
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPost, "/api/users/"+f.bob.Id.String()+"/subscribe", bob, nil).Code)

	rec := f.do(t, http.MethodPost, aliceURL+"/subscribe?recipes_limit=2", bob, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decode(t, rec)
	assert.Equal(t, "alice", sub["username"])
	assert.Equal(t, true, sub["is_subscribed"])
	assert.Len(t, sub["recipes"], 2)
	assert.Equal(t, float64(3), sub["recipes_count"])

	assert.Equal(t, http.StatusConflict, f.do(t, http.MethodPost, aliceURL+"/subscribe", bob, nil).Code)

	rec = f.do(t, http.MethodGet, aliceURL, bob, nil)
	assert.Equal(t, true, decode(t, rec)["is_subscribed"])
	rec = f.do(t, http.MethodGet, aliceURL, "", nil)
	assert.Equal(t, false, decode(t, rec)["is_subscribed"])

	rec = f.do(t, http.MethodGet, "/api/users/subscriptions", bob, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode(t, rec)
	assert.Equal(t, float64(1), page["count"])
	first := page["results"].([]interface{})[0].(map[string]interface{})
	assert.Len(t, first["recipes"], 3)

	assert.Equal(t, http.StatusUnauthorized, f.do(t, http.MethodGet, "/api/users/subscriptions", "", nil).Code)

	assert.Equal(t, http.StatusNoContent, f.do(t, http.MethodDelete, aliceURL+"/subscribe", bob, nil).Code)
	assert.Equal(t, http.StatusNotFound, f.do(t, http.MethodDelete, aliceURL+"/subscribe", bob, nil).Code)
}

func TestRateLimit(t *testing.T) {
	f := newAPIFixture(t)
	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	e := echo.New()
	e.HTTPErrorHandler = NewErrorHandler(logger.NewNop())
	e.Use(Authenticate(f.jwt), RateLimit(infrastructure.NewRateLimiter(ctx, 0.001, 1)))
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		RequirePermission(enforcer, authz.ObjectCatalog, authz.ActionRead))

	codes := []int{}
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, rec.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
}
