package services

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// pageWindow normalizes a page/limit pair into an offset/limit window.
func pageWindow(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}
	return (page - 1) * limit, limit
}
