package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"foodgram-service/internal/domain/entities"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
)

// ShoppingListRepository runs the cart aggregation as one explicit query
// instead of going through the ORM.
type ShoppingListRepository struct {
	db      *sqlx.DB
	builder sq.StatementBuilderType
	log     *logger.Logger
}

type shoppingListRow struct {
	Name            string `db:"name"`
	MeasurementUnit string `db:"measurement_unit"`
	TotalAmount     int64  `db:"total_amount"`
}

// NewShoppingListRepository builds the repository; dollarPlaceholders selects
// $1-style bind variables for postgres instead of '?'.
func NewShoppingListRepository(db *sqlx.DB, dollarPlaceholders bool, baseLog *logger.Logger) repositories.ShoppingListRepository {
	builder := sq.StatementBuilder.PlaceholderFormat(sq.Question)
	if dollarPlaceholders {
		builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return &ShoppingListRepository{db: db, builder: builder, log: baseLog.With("repo", "ShoppingListRepository")}
}

func (r *ShoppingListRepository) Aggregate(ctx context.Context, userId uuid.UUID) ([]entities.ShoppingListItem, error) {
	query, args, err := r.aggregateQuery(userId)
	if err != nil {
		return nil, fmt.Errorf("build shopping list query: %w", err)
	}

	var rows []shoppingListRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("aggregate shopping list: %w", err)
	}

	items := make([]entities.ShoppingListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.ShoppingListItem{
			Name:            row.Name,
			MeasurementUnit: row.MeasurementUnit,
			TotalAmount:     row.TotalAmount,
		})
	}
	return items, nil
}

func (r *ShoppingListRepository) aggregateQuery(userId uuid.UUID) (string, []interface{}, error) {
	return r.builder.
		Select(
			"i.name AS name",
			"i.measurement_unit AS measurement_unit",
			"SUM(ri.amount) AS total_amount",
		).
		From("carts c").
		Join("recipe_ingredients ri ON ri.recipe_id = c.recipe_id").
		Join("ingredients i ON i.id = ri.ingredient_id").
		Where(sq.Eq{"c.user_id": userId}).
		GroupBy("i.id", "i.name", "i.measurement_unit").
		OrderBy("i.name", "i.measurement_unit", "i.id").
		ToSql()
}
