package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram-service/internal/domain/domainerr"
)

func TestNewFollow(t *testing.T) {
	user, author := uuid.New(), uuid.New()

	f, err := NewFollow(user, author)
	require.NoError(t, err)
	assert.Equal(t, user, f.UserId)
	assert.Equal(t, author, f.AuthorId)

	_, err = NewFollow(user, user)
	assert.True(t, domainerr.Is(err, domainerr.KindInvalidArgument))
}

func TestRelationKindValid(t *testing.T) {
	assert.True(t, RelationFavorite.Valid())
	assert.True(t, RelationShoppingCart.Valid())
	assert.False(t, RelationKind("wishlist").Valid())
}

func TestNewTag(t *testing.T) {
	tag, err := NewTag(" Breakfast ", "#e26c2d", "breakfast")
	require.NoError(t, err)
	assert.Equal(t, "Breakfast", tag.Name)
	assert.Equal(t, "#E26C2D", tag.Color)

	_, err = NewTag("Lunch", "red", "lunch slug")
	var de *domainerr.Error
	require.ErrorAs(t, err, &de)
	assert.Contains(t, de.Fields, "color")
	assert.Contains(t, de.Fields, "slug")
}

func TestNewIngredient(t *testing.T) {
	_, err := NewIngredient("Salt", "g")
	require.NoError(t, err)

	_, err = NewIngredient("Salt", " ")
	assert.True(t, domainerr.Is(err, domainerr.KindInvalidArgument))
}
