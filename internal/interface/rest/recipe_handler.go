package rest

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/common"
	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/query"
	"foodgram-service/internal/domain/entities"
)

const shoppingListFilename = "shopping_list.txt"

type RecipeHandler struct {
	recipes      interfaces.RecipeService
	relations    interfaces.RelationService
	shoppingList interfaces.ShoppingListService
}

func NewRecipeHandler(recipes interfaces.RecipeService, relations interfaces.RelationService, shoppingList interfaces.ShoppingListService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, relations: relations, shoppingList: shoppingList}
}

func (h *RecipeHandler) List(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	q := &query.ListRecipesQuery{
		ViewerId:         viewerID(c),
		TagSlugs:         c.QueryParams()["tags"],
		IsFavorited:      queryBool(c, "is_favorited"),
		IsInShoppingCart: queryBool(c, "is_in_shopping_cart"),
		Page:             page,
	}
	if raw := c.QueryParam("author"); raw != "" {
		authorId, err := uuid.Parse(raw)
		if err != nil {
			return c.JSON(http.StatusOK, query.RecipeQueryListResult{Results: []*common.RecipeResult{}})
		}
		q.AuthorId = &authorId
	}

	result, err := h.recipes.ListRecipes(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.recipes.GetRecipe(c.Request().Context(), viewerID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Result)
}

func (h *RecipeHandler) Create(c echo.Context) error {
	var cmd command.CreateRecipeCommand
	if err := bindJSON(c, &cmd); err != nil {
		return err
	}
	cmd.AuthorId = identityFrom(c).UserID

	result, err := h.recipes.CreateRecipe(c.Request().Context(), &cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result.Result)
}

func (h *RecipeHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var cmd command.UpdateRecipeCommand
	if err := bindJSON(c, &cmd); err != nil {
		return err
	}
	cmd.ActorId = identityFrom(c).UserID
	cmd.RecipeId = id

	result, err := h.recipes.UpdateRecipe(c.Request().Context(), &cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Result)
}

func (h *RecipeHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd := &command.DeleteRecipeCommand{ActorId: identityFrom(c).UserID, RecipeId: id}
	if err := h.recipes.DeleteRecipe(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *RecipeHandler) AddFavorite(c echo.Context) error {
	return h.addRelation(c, entities.RelationFavorite)
}

func (h *RecipeHandler) RemoveFavorite(c echo.Context) error {
	return h.removeRelation(c, entities.RelationFavorite)
}

func (h *RecipeHandler) AddToCart(c echo.Context) error {
	return h.addRelation(c, entities.RelationShoppingCart)
}

func (h *RecipeHandler) RemoveFromCart(c echo.Context) error {
	return h.removeRelation(c, entities.RelationShoppingCart)
}

func (h *RecipeHandler) DownloadShoppingCart(c echo.Context) error {
	body, err := h.shoppingList.RenderShoppingList(c.Request().Context(), identityFrom(c).UserID)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+shoppingListFilename)
	return c.Blob(http.StatusOK, echo.MIMETextPlainCharsetUTF8, body)
}

func (h *RecipeHandler) addRelation(c echo.Context, kind entities.RelationKind) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd := &command.RelationCommand{Kind: kind, UserId: identityFrom(c).UserID, RecipeId: id}
	result, err := h.relations.AddRelation(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result.Result)
}

func (h *RecipeHandler) removeRelation(c echo.Context, kind entities.RelationKind) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd := &command.RelationCommand{Kind: kind, UserId: identityFrom(c).UserID, RecipeId: id}
	if err := h.relations.RemoveRelation(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
