package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/interfaces"
)

type CatalogHandler struct {
	catalog interfaces.CatalogService
}

func NewCatalogHandler(catalog interfaces.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

func (h *CatalogHandler) ListTags(c echo.Context) error {
	result, err := h.catalog.ListTags(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Result)
}

func (h *CatalogHandler) GetTag(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.catalog.GetTag(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Result)
}

func (h *CatalogHandler) CreateTag(c echo.Context) error {
	var cmd command.CreateTagCommand
	if err := bindJSON(c, &cmd); err != nil {
		return err
	}
	result, err := h.catalog.CreateTag(c.Request().Context(), &cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result.Result)
}

func (h *CatalogHandler) ListIngredients(c echo.Context) error {
	result, err := h.catalog.ListIngredients(c.Request().Context(), c.QueryParam("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Result)
}

func (h *CatalogHandler) GetIngredient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.catalog.GetIngredient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Result)
}

func (h *CatalogHandler) CreateIngredient(c echo.Context) error {
	var cmd command.CreateIngredientCommand
	if err := bindJSON(c, &cmd); err != nil {
		return err
	}
	result, err := h.catalog.CreateIngredient(c.Request().Context(), &cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result.Result)
}
