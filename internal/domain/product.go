package domain

import "strconv"

const (
	fallbackCategory    = "Sin Categoria"
	fallbackDescription = "Sin descripción disponible."
)

type ProductID int64

func (id ProductID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type Category struct {
	ID   int64
	Name string
}

type Product struct {
	ID          ProductID
	Name        string
	Price       Money
	Description *string
	ImageURL    *string
	CategoryID  *int64
	Category    *Category
}

func (p Product) DisplayCategory() string {
	if p.Category == nil || p.Category.Name == "" {
		return fallbackCategory
	}
	return p.Category.Name
}

func (p Product) DisplayDescription() string {
	if p.Description == nil || *p.Description == "" {
		return fallbackDescription
	}
	return *p.Description
}

func (p Product) DisplayImage(placeholder string) string {
	return imageOrPlaceholder(p.ImageURL, placeholder)
}

func imageOrPlaceholder(url *string, placeholder string) string {
	if url == nil || *url == "" {
		return placeholder
	}
	return *url
}
