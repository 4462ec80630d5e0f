package dto

// CategoryDTO is one of the six axes.
type CategoryDTO struct {
	ID       uint64 `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Icon     string `json:"icon"`
	Position int    `json:"position"`
}

// UpdateCategoryDTO adjusts presentation fields only. The axis set
// itself is fixed.
type UpdateCategoryDTO struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Color    *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon     *string `json:"icon,omitempty" validate:"omitempty,max=32"`
	Position *int    `json:"position,omitempty" validate:"omitempty,min=0,max=10"`
}
