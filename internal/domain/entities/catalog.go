package entities

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"foodgram-service/internal/domain/domainerr"
)

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

type Tag struct {
	Id    uuid.UUID
	Name  string
	Color string
	Slug  string
}

func NewTag(name, color, slug string) (*Tag, error) {
	t := &Tag{
		Id:    uuid.New(),
		Name:  strings.TrimSpace(name),
		Color: strings.ToUpper(strings.TrimSpace(color)),
		Slug:  strings.TrimSpace(slug),
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tag) validate() error {
	fields := map[string]string{}
	if t.Name == "" {
		fields["name"] = "must not be empty"
	}
	if !hexColorPattern.MatchString(t.Color) {
		fields["color"] = "must be a hex color like #E26C2D"
	}
	if !slugPattern.MatchString(t.Slug) {
		fields["slug"] = "may contain only letters, digits, '-' and '_'"
	}
	if len(fields) > 0 {
		return domainerr.InvalidFields(fields)
	}
	return nil
}

type Ingredient struct {
	Id              uuid.UUID
	Name            string
	MeasurementUnit string
}

func NewIngredient(name, measurementUnit string) (*Ingredient, error) {
	i := &Ingredient{
		Id:              uuid.New(),
		Name:            strings.TrimSpace(name),
		MeasurementUnit: strings.TrimSpace(measurementUnit),
	}
	fields := map[string]string{}
	if i.Name == "" {
		fields["name"] = "must not be empty"
	}
	if i.MeasurementUnit == "" {
		fields["measurement_unit"] = "must not be empty"
	}
	if len(fields) > 0 {
		return nil, domainerr.InvalidFields(fields)
	}
	return i, nil
}
