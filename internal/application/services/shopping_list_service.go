package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"

	"foodgram-service/internal/application/interfaces"
	"foodgram-service/internal/application/mapper"
	"foodgram-service/internal/application/query"
	"foodgram-service/internal/domain/repositories"
	"foodgram-service/internal/infrastructure/logger"
)

type ShoppingListService struct {
	shoppingListRepo repositories.ShoppingListRepository
	log              *logger.Logger
}

func NewShoppingListService(shoppingListRepo repositories.ShoppingListRepository, baseLog *logger.Logger) interfaces.ShoppingListService {
	return &ShoppingListService{
		shoppingListRepo: shoppingListRepo,
		log:              baseLog.With("service", "ShoppingListService"),
	}
}

func (s *ShoppingListService) GetShoppingList(ctx context.Context, userId uuid.UUID) (*query.ShoppingListQueryResult, error) {
	items, err := s.shoppingListRepo.Aggregate(ctx, userId)
	if err != nil {
		return nil, err
	}
	return &query.ShoppingListQueryResult{Result: mapper.NewShoppingListResults(items)}, nil
}

// RenderShoppingList produces the plain-text download, one ingredient per line.
func (s *ShoppingListService) RenderShoppingList(ctx context.Context, userId uuid.UUID) ([]byte, error) {
	items, err := s.shoppingListRepo.Aggregate(ctx, userId)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	for _, item := range items {
		fmt.Fprintf(&buf, "%s (%s) — %d\n", item.Name, item.MeasurementUnit, item.TotalAmount)
	}
	s.log.Debug("shopping list rendered", "user_id", userId, "items", len(items))
	return buf.Bytes(), nil
}
