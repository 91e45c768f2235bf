package api

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty"`
}

type CreateCategoryResponse struct {
	Category *Category `json:"category"`
}

type ListCategoriesRequest struct {
	// Type limits results to income or expense categories.
	Type string `json:"type,omitempty"`
}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type DeleteCategoryRequest struct {
	ID string `json:"id"`
}

type DeleteCategoryResponse struct{}
