package inventory

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage acota el offset para que (page-1)*pageSize no desborde.
	MaxPage = 1_000_000
)

// Page resultado paginado.
type Page[T any] struct {
	Total    int
	Page     int
	PageSize int
	Items    []T
}

// NormalizePage aplica los valores por defecto: page en 1..MaxPage, pageSize en 1..100 (20 si no se indica).
func NormalizePage(page, pageSize int) (int, int) {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case pageSize <= 0:
		pageSize = DefaultPageSize
	case pageSize > MaxPageSize:
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func offset(page, pageSize int) int {
	return (page - 1) * pageSize
}
