package datatable

// Pagination describes the slice of sorted rows shown on the current page.
type Pagination struct {
	Page       int
	PageSize   int
	TotalRows  int
	TotalPages int
	Start      int // index of the first row on the page
	End        int // index after the last row on the page
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// Paged reports whether the rows are split across more than one page.
func (p Pagination) Paged() bool { return p.TotalPages > 1 }

// paginate clamps page into range and computes the row window.
// A pageSize of zero or less puts every row on one page.
func paginate(total, page, pageSize int) Pagination {
	if pageSize <= 0 {
		pageSize = total
	}
	totalPages := 1
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	if start > end {
		start = end
	}

	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalRows:  total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}
