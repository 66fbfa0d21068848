package tabular

// DefaultPageSize matches the "Top Products" table.
const DefaultPageSize = 5

// View holds the interactive state of one table: sort column/direction and the current
// page. It is a plain value; callers own synchronization.
type View struct {
	Policy   SortPolicy `json:"policy" yaml:"policy"`
	Sort     SortState  `json:"sort" yaml:"sort"`
	Page     int        `json:"page" yaml:"page"`
	PageSize int        `json:"page_size" yaml:"page_size"`
}

// NewView returns an unsorted view on page 1.
func NewView(policy SortPolicy, pageSize int) View {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return View{Policy: policy, Page: 1, PageSize: pageSize}
}

// Click advances the sort state for key and jumps back to the first page.
func (v View) Click(key string) View {
	v.Sort = AdvanceSortState(v.Sort, key, v.Policy)
	v.Page = 1
	return v
}

// Next moves one page forward; Render clamps it against the data.
func (v View) Next() View {
	v.Page = max(1, v.Page) + 1
	return v
}

// Prev moves one page back, never below 1.
func (v View) Prev() View {
	v.Page = max(1, v.Page-1)
	return v
}

// GoTo requests a page number.
func (v View) GoTo(page int) View {
	v.Page = page
	return v
}

// Render sorts and paginates records. The returned View carries the clamped page so
// a shrinking dataset never leaves the stored page out of range.
func (v View) Render(records []Record, opts ...SortOption) (Page, View) {
	size := v.PageSize
	if size < 1 {
		size = DefaultPageSize
	}
	page := Paginate(SortRecords(records, v.Sort, opts...), v.Page, size)
	v.Page = page.ClampedPage
	v.PageSize = size
	return page, v
}
