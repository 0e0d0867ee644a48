package rest

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"foodgram-service/internal/application/common"
	"foodgram-service/internal/domain/domainerr"
)

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerr.NotFound("not found")
	}
	return id, nil
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, domainerr.InvalidField(name, "must be a non-negative integer")
	}
	return n, nil
}

func queryBool(c echo.Context, name string) bool {
	switch strings.ToLower(strings.TrimSpace(c.QueryParam(name))) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func queryPage(c echo.Context) (common.Page, error) {
	number, err := queryInt(c, "page", 1)
	if err != nil {
		return common.Page{}, err
	}
	limit, err := queryInt(c, "limit", common.DefaultPageSize)
	if err != nil {
		return common.Page{}, err
	}
	return common.Page{Number: number, Limit: limit}.Normalize(), nil
}

// recipesLimit returns -1 when the caller did not ask for truncation.
func recipesLimit(c echo.Context) (int, error) {
	return queryInt(c, "recipes_limit", -1)
}

func bindJSON(c echo.Context, dest interface{}) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, dest); err != nil {
		return domainerr.InvalidArgument("malformed request body")
	}
	return nil
}
