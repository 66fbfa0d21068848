package tabular

// Page is the visible window of a record collection.
type Page struct {
	Rows        []Record `json:"rows"`
	TotalPages  int      `json:"total_pages"`
	ClampedPage int      `json:"page"`
	TotalRows   int      `json:"total_rows"`
	// FirstRow and LastRow are the 1-based bounds shown as "Showing X to Y of Z";
	// both are 0 when there are no rows.
	FirstRow int `json:"first_row"`
	LastRow  int `json:"last_row"`
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool {
	return p.ClampedPage > 1
}

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool {
	return p.ClampedPage < p.TotalPages
}

// TotalPages returns max(1, ceil(count/pageSize)). A pageSize below 1 counts as 1.
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = 1
	}
	if count <= 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices records for the requested page. Out of range pages clamp to the
// nearest valid page instead of returning an empty window.
func Paginate(records []Record, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(len(records), pageSize)
	clamped := ClampPage(page, total)

	start := (clamped - 1) * pageSize
	end := min(start+pageSize, len(records))
	rows := make([]Record, 0, max(0, end-start))
	if start < end {
		rows = append(rows, records[start:end]...)
	}

	out := Page{
		Rows:        rows,
		TotalPages:  total,
		ClampedPage: clamped,
		TotalRows:   len(records),
	}
	if len(rows) > 0 {
		out.FirstRow = start + 1
		out.LastRow = end
	}
	return out
}
