package ports

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// PageRequest selects a 1-based page.
type PageRequest struct {
	Page     int
	PageSize int
}

// Offset is the number of rows skipped before the page starts.
func (p PageRequest) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
