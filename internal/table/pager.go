package table

const (
	// PageSize is the number of rows on one table page.
	PageSize = 10
	// WindowSize is the number of page buttons rendered at once.
	WindowSize = 5
)

// TotalPages is ceil(n/size), never less than 1.
func TotalPages(n, size int) int {
	if size <= 0 {
		size = PageSize
	}
	pages := (n + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

// Paginate returns the rows of the 1-based page and the total page count.
// A page outside [1, totalPages] yields an empty slice.
func Paginate(rows []Row, page, size int) ([]Row, int) {
	if size <= 0 {
		size = PageSize
	}
	total := TotalPages(len(rows), size)
	if page < 1 || page > total {
		return []Row{}, total
	}

	start := (page - 1) * size
	if start >= len(rows) {
		return []Row{}, total
	}
	end := min(start+size, len(rows))
	return rows[start:end], total
}

// PageWindow lists the page numbers to render as buttons: at most
// WindowSize consecutive pages, centered on page when possible and never
// outside [1, totalPages].
func PageWindow(page, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	start := 1
	if totalPages >= WindowSize {
		start = max(1, min(page-WindowSize/2, totalPages-WindowSize+1))
	}

	n := min(totalPages, WindowSize)
	window := make([]int, n)
	for i := range window {
		window[i] = start + i
	}
	return window
}
