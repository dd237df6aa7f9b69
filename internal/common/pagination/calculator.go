package pagination

// CalculateOffset calculates the database OFFSET value for a 1-based page.
//
// Formula: offset = (page - 1) * pageSize
func CalculateOffset(page, pageSize int) int {
	return (page - 1) * pageSize
}

// CalculateTotalPages calculates the total number of pages with ceiling
// division. An empty result set has zero pages.
//
// Examples:
//   - Total 0, PageSize 20 -> 0 pages
//   - Total 10, PageSize 20 -> 1 page
//   - Total 20, PageSize 20 -> 1 page
//   - Total 21, PageSize 20 -> 2 pages
func CalculateTotalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
