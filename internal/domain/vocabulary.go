package domain

import "fmt"

// Category groups the multi-select preferences on the form.
type Category string

const (
	CategoryColor Category = "color"
	CategoryFood  Category = "food"
	CategoryDrink Category = "drink"
)

// Categories lists the categories in form order.
func Categories() []Category {
	return []Category{CategoryColor, CategoryFood, CategoryDrink}
}

// ParseCategory validates a category name coming from a form field.
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryColor, CategoryFood, CategoryDrink:
		return c, nil
	default:
		return "", NewValidationErrorWithValue("category", fmt.Sprintf("unknown category %q", s), s)
	}
}

// Option is one selectable tag with its Russian label. Swatch is set for
// colors only.
type Option struct {
	Tag    string
	Label  string
	Swatch string
}

var (
	colorOptions = []Option{
		{Tag: "olive", Label: "Оливковый", Swatch: "#4d5c22"},
		{Tag: "sage", Label: "Шалфей", Swatch: "#a6b15f"},
		{Tag: "beige", Label: "Бежевый", Swatch: "#8d7a54"},
		{Tag: "silver", Label: "Серебристый", Swatch: "#bebdc2"},
		{Tag: "ivory", Label: "Слоновая кость", Swatch: "#f0f0ef"},
		{Tag: "black", Label: "Строгий черный", Swatch: "#000000"},
	}

	foodOptions = []Option{
		{Tag: "nomeat", Label: "Не ем мясо"},
		{Tag: "nofish", Label: "Не ем рыбу"},
		{Tag: "noseafood", Label: "Не ем морепродукты"},
	}

	drinkOptions = []Option{
		{Tag: "wine", Label: "Вино"},
		{Tag: "champagne", Label: "Шампанское"},
		{Tag: "cognac", Label: "Коньяк"},
		{Tag: "vodka", Label: "Водка"},
		{Tag: "whisky", Label: "Виски"},
		{Tag: "nonalcoholic", Label: "Безалкогольные напитки"},
	}

	labelIndex = map[Category]map[string]string{
		CategoryColor: indexLabels(colorOptions),
		CategoryFood:  indexLabels(foodOptions),
		CategoryDrink: indexLabels(drinkOptions),
	}
)

func indexLabels(opts []Option) map[string]string {
	m := make(map[string]string, len(opts))
	for _, o := range opts {
		m[o.Tag] = o.Label
	}

	return m
}

// Options returns the selectable tags of a category in display order.
func Options(c Category) []Option {
	var src []Option

	switch c {
	case CategoryColor:
		src = colorOptions
	case CategoryFood:
		src = foodOptions
	case CategoryDrink:
		src = drinkOptions
	}

	out := make([]Option, len(src))
	copy(out, src)

	return out
}

// Label resolves a tag to its display label. Unknown tags are returned as-is.
func Label(c Category, tag string) string {
	if label, ok := labelIndex[c][tag]; ok {
		return label
	}

	return tag
}

// Labels resolves tags in order.
func Labels(c Category, tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = Label(c, t)
	}

	return out
}
