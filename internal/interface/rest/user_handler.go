package rest

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"foodgram-service/internal/application/command"
	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/query"
)

type UserHandler struct {
	users interfaces.UserService
}

func NewUserHandler(users interfaces.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	result, err := h.users.GetUser(c.Request().Context(), viewerID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result.Result)
}

func (h *UserHandler) Subscribe(c echo.Context) error {
	authorId, err := pathID(c, "id")
	if err != nil {
		return err
	}
	limit, err := recipesLimit(c)
	if err != nil {
		return err
	}
	cmd := &command.FollowCommand{UserId: identityFrom(c).UserID, AuthorId: authorId, RecipesLimit: limit}
	result, err := h.users.Follow(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result.Result)
}

func (h *UserHandler) Unsubscribe(c echo.Context) error {
	authorId, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cmd := &command.FollowCommand{UserId: identityFrom(c).UserID, AuthorId: authorId}
	if err := h.users.Unfollow(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *UserHandler) Subscriptions(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	limit, err := recipesLimit(c)
	if err != nil {
		return err
	}
	q := &query.ListSubscriptionsQuery{UserId: identityFrom(c).UserID, Page: page, RecipesLimit: limit}
	result, err := h.users.ListSubscriptions(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
