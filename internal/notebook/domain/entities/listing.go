package entities

// PageSize - количество заметок на странице списка.
const PageSize = 5

// ListQuery - параметры запроса списка. Параметры объединяются по AND.
type ListQuery struct {
	Page   int
	Search string
	Tag    string
}

// Pagination описывает положение страницы в выборке.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Filters - примененные фильтры; nil означает, что фильтр не задан.
type Filters struct {
	Search *string `json:"search"`
	Tag    *string `json:"tag"`
}

// ListResult - одна страница заметок.
type ListResult struct {
	Notes      []*Note    `json:"notes"`
	Pagination Pagination `json:"pagination"`
	Filters    Filters    `json:"filters"`
}

// TagCount - частота тега среди заметок пользователя.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Overview - страница заметок вместе с частотами всех тегов пользователя.
type Overview struct {
	*ListResult
	Tags []TagCount `json:"tags"`
}

// NewPagination считает страницы для totalCount записей.
func NewPagination(page, totalCount int) Pagination {
	totalPages := (totalCount + PageSize - 1) / PageSize
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNextPage: page < totalPages,
		HasPrevPage: page > 1,
	}
}
