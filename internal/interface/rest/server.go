package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/infrastructure"
	"foodgram-service/internal/infrastructure/authz"
	"foodgram-service/internal/infrastructure/logger"
)

// Deps collects everything the HTTP layer needs. MediaDir is served under
// /media when set.
type Deps struct {
	Catalog      interfaces.CatalogService
	Recipes      interfaces.RecipeService
	Relations    interfaces.RelationService
	Users        interfaces.UserService
	ShoppingList interfaces.ShoppingListService
	JWT          *infrastructure.JWTService
	Enforcer     *authz.Enforcer
	Limiter      *infrastructure.RateLimiter
	Metrics      *Metrics
	MediaDir     string
	Log          *logger.Logger
}

func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(deps.Log)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(deps.Log))
	if deps.Metrics != nil {
		e.Use(deps.Metrics.Middleware())
		e.GET("/metrics", deps.Metrics.Handler())
	}
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if deps.MediaDir != "" {
		e.Static("/media", deps.MediaDir)
	}

	api := e.Group("/api", Authenticate(deps.JWT))
	if deps.Limiter != nil {
		api.Use(RateLimit(deps.Limiter))
	}

	allow := func(object, action string) echo.MiddlewareFunc {
		return RequirePermission(deps.Enforcer, object, action)
	}
	readCatalog := allow(authz.ObjectCatalog, authz.ActionRead)
	writeCatalog := allow(authz.ObjectCatalog, authz.ActionWrite)
	readRecipe := allow(authz.ObjectRecipe, authz.ActionRead)
	writeRecipe := allow(authz.ObjectRecipe, authz.ActionWrite)
	readRelation := allow(authz.ObjectRelation, authz.ActionRead)
	writeRelation := allow(authz.ObjectRelation, authz.ActionWrite)
	readUser := allow(authz.ObjectUser, authz.ActionRead)

	catalog := NewCatalogHandler(deps.Catalog)
	api.GET("/tags", catalog.ListTags, readCatalog)
	api.GET("/tags/:id", catalog.GetTag, readCatalog)
	api.POST("/tags", catalog.CreateTag, writeCatalog)
	api.GET("/ingredients", catalog.ListIngredients, readCatalog)
	api.GET("/ingredients/:id", catalog.GetIngredient, readCatalog)
	api.POST("/ingredients", catalog.CreateIngredient, writeCatalog)

	recipes := NewRecipeHandler(deps.Recipes, deps.Relations, deps.ShoppingList)
	api.GET("/recipes", recipes.List, readRecipe)
	api.POST("/recipes", recipes.Create, writeRecipe)
	api.GET("/recipes/download_shopping_cart", recipes.DownloadShoppingCart, readRelation)
	api.GET("/recipes/:id", recipes.Get, readRecipe)
	api.PATCH("/recipes/:id", recipes.Update, writeRecipe)
	api.DELETE("/recipes/:id", recipes.Delete, writeRecipe)
	api.POST("/recipes/:id/favorite", recipes.AddFavorite, writeRelation)
	api.DELETE("/recipes/:id/favorite", recipes.RemoveFavorite, writeRelation)
	api.POST("/recipes/:id/shopping_cart", recipes.AddToCart, writeRelation)
	api.DELETE("/recipes/:id/shopping_cart", recipes.RemoveFromCart, writeRelation)

	users := NewUserHandler(deps.Users)
	api.GET("/users/subscriptions", users.Subscriptions, readRelation)
	api.GET("/users/:id", users.Get, readUser)
	api.POST("/users/:id/subscribe", users.Subscribe, writeRelation)
	api.DELETE("/users/:id/subscribe", users.Unsubscribe, writeRelation)

	return e
}
