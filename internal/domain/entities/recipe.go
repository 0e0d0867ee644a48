package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"foodgram-service/internal/domain/domainerr"
)

const MaxRecipeNameLength = 200

// RecipeIngredient is one row of a recipe's ingredient list. On the write
// path only IngredientId and Amount are meaningful; reads fill in the
// catalog fields.
type RecipeIngredient struct {
	IngredientId    uuid.UUID
	Name            string
	MeasurementUnit string
	Amount          int
}

type Recipe struct {
	Id          uuid.UUID
	AuthorId    uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string
	Image       string
	Text        string
	CookingTime int
	Ingredients []RecipeIngredient
	Tags        []Tag
}

func NewRecipe(authorId uuid.UUID, name, text string, cookingTime int, ingredients []RecipeIngredient, tagIds []uuid.UUID) *Recipe {
	now := time.Now()
	tags := make([]Tag, 0, len(tagIds))
	for _, id := range tagIds {
		tags = append(tags, Tag{Id: id})
	}
	return &Recipe{
		Id:          uuid.New(),
		AuthorId:    authorId,
		CreatedAt:   now,
		UpdatedAt:   now,
		Name:        strings.TrimSpace(name),
		Text:        strings.TrimSpace(text),
		CookingTime: cookingTime,
		Ingredients: ingredients,
		Tags:        tags,
	}
}

func (r *Recipe) validate() error {
	fields := map[string]string{}
	if msg := checkName(r.Name); msg != "" {
		fields["name"] = msg
	}
	if r.Text == "" {
		fields["text"] = "must not be empty"
	}
	if r.CookingTime < 1 {
		fields["cooking_time"] = "must be at least 1"
	}
	if msg := checkIngredients(r.Ingredients); msg != "" {
		fields["ingredients"] = msg
	}
	if msg := checkTags(r.Tags); msg != "" {
		fields["tags"] = msg
	}
	if r.AuthorId == uuid.Nil {
		fields["author"] = "must be set"
	}
	if len(fields) > 0 {
		return domainerr.InvalidFields(fields)
	}
	return nil
}

func (r *Recipe) IngredientIds() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		ids = append(ids, ri.IngredientId)
	}
	return ids
}

func (r *Recipe) TagIds() []uuid.UUID {
	return tagIds(r.Tags)
}

func (r *Recipe) EnsureOwnedBy(actorId uuid.UUID) error {
	if r.AuthorId != actorId {
		return domainerr.Forbidden("only the author may change this recipe")
	}
	return nil
}

func (r *Recipe) Summary() RecipeSummary {
	return RecipeSummary{Id: r.Id, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

// RecipePatch carries an update: nil scalars are left untouched, while the
// ingredient and tag sets always replace the stored ones.
type RecipePatch struct {
	Name        *string
	Text        *string
	CookingTime *int
	Image       *string
	Ingredients []RecipeIngredient
	Tags        []Tag
}

func NewRecipePatch(name, text *string, cookingTime *int, ingredients []RecipeIngredient, tagIds []uuid.UUID) *RecipePatch {
	p := &RecipePatch{CookingTime: cookingTime, Ingredients: ingredients}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		p.Name = &trimmed
	}
	if text != nil {
		trimmed := strings.TrimSpace(*text)
		p.Text = &trimmed
	}
	for _, id := range tagIds {
		p.Tags = append(p.Tags, Tag{Id: id})
	}
	return p
}

func (p *RecipePatch) validate() error {
	fields := map[string]string{}
	if p.Name != nil {
		if msg := checkName(*p.Name); msg != "" {
			fields["name"] = msg
		}
	}
	if p.Text != nil && *p.Text == "" {
		fields["text"] = "must not be empty"
	}
	if p.CookingTime != nil && *p.CookingTime < 1 {
		fields["cooking_time"] = "must be at least 1"
	}
	if msg := checkIngredients(p.Ingredients); msg != "" {
		fields["ingredients"] = msg
	}
	if msg := checkTags(p.Tags); msg != "" {
		fields["tags"] = msg
	}
	if len(fields) > 0 {
		return domainerr.InvalidFields(fields)
	}
	return nil
}

func (p *RecipePatch) IngredientIds() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Ingredients))
	for _, ri := range p.Ingredients {
		ids = append(ids, ri.IngredientId)
	}
	return ids
}

func (p *RecipePatch) TagIds() []uuid.UUID {
	return tagIds(p.Tags)
}

// ApplyTo copies the present scalar fields and the full association sets onto r.
func (p *RecipePatch) ApplyTo(r *Recipe) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Text != nil {
		r.Text = *p.Text
	}
	if p.CookingTime != nil {
		r.CookingTime = *p.CookingTime
	}
	if p.Image != nil {
		r.Image = *p.Image
	}
	r.Ingredients = p.Ingredients
	r.Tags = p.Tags
	r.UpdatedAt = time.Now()
}

// RecipeAssociations is the ingredient and tag set of a recipe, replaced as a whole.
type RecipeAssociations struct {
	Ingredients []RecipeIngredient
	Tags        []Tag
}

func NewRecipeAssociations(ingredients []RecipeIngredient, tagIds []uuid.UUID) *RecipeAssociations {
	a := &RecipeAssociations{Ingredients: ingredients}
	for _, id := range tagIds {
		a.Tags = append(a.Tags, Tag{Id: id})
	}
	return a
}

func (a *RecipeAssociations) validate() error {
	fields := map[string]string{}
	if msg := checkIngredients(a.Ingredients); msg != "" {
		fields["ingredients"] = msg
	}
	if msg := checkTags(a.Tags); msg != "" {
		fields["tags"] = msg
	}
	if len(fields) > 0 {
		return domainerr.InvalidFields(fields)
	}
	return nil
}

func (a *RecipeAssociations) IngredientIds() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(a.Ingredients))
	for _, ri := range a.Ingredients {
		ids = append(ids, ri.IngredientId)
	}
	return ids
}

func (a *RecipeAssociations) TagIds() []uuid.UUID {
	return tagIds(a.Tags)
}

// RecipeDetails is a recipe as presented to one viewer.
type RecipeDetails struct {
	Recipe
	Author           UserProfile
	IsFavorited      bool
	IsInShoppingCart bool
}

type RecipeSummary struct {
	Id          uuid.UUID
	Name        string
	Image       string
	CookingTime int
}

type RecipeFilter struct {
	AuthorId    *uuid.UUID
	TagSlugs    []string
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	Limit       int
	Offset      int
}

func checkName(name string) string {
	if name == "" {
		return "must not be empty"
	}
	if utf8.RuneCountInString(name) > MaxRecipeNameLength {
		return "must be at most 200 characters"
	}
	return ""
}

func checkIngredients(items []RecipeIngredient) string {
	if len(items) == 0 {
		return "at least one ingredient is required"
	}
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if item.IngredientId == uuid.Nil {
			return "ingredient id is required"
		}
		if _, dup := seen[item.IngredientId]; dup {
			return "ingredients must be unique"
		}
		seen[item.IngredientId] = struct{}{}
		if item.Amount < 1 {
			return "amount must be at least 1"
		}
	}
	return ""
}

func checkTags(tags []Tag) string {
	if len(tags) == 0 {
		return "at least one tag is required"
	}
	seen := make(map[uuid.UUID]struct{}, len(tags))
	for _, t := range tags {
		if t.Id == uuid.Nil {
			return "tag id is required"
		}
		if _, dup := seen[t.Id]; dup {
			return "tags must be unique"
		}
		seen[t.Id] = struct{}{}
	}
	return ""
}

func tagIds(tags []Tag) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.Id)
	}
	return ids
}
