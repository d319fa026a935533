package table

import (
	"slices"

	"golang.org/x/text/language"
)

// State is the transient view state of one table.
type State struct {
	Query     string    `json:"q"`
	SortKey   string    `json:"sort"`
	Direction Direction `json:"dir"`
	Page      int       `json:"page"`
}

// InitialState is an empty query, no sort key, ascending, page 1.
func InitialState() State {
	return State{Direction: Asc, Page: 1}
}

// Toggled returns s with the sort toggled on key: the direction flips when
// key is already the sort key, otherwise key sorts ascending. Page resets to 1.
func (s State) Toggled(key string) State {
	if key == s.SortKey {
		s.Direction = s.Direction.Flip()
	} else {
		s.SortKey = key
		s.Direction = Asc
	}
	s.Page = 1
	return s
}

// Snapshot is one recomputation of a view.
type Snapshot struct {
	State      State    `json:"state"`
	Columns    []Header `json:"columns"`
	Rows       []Row    `json:"-"`
	Cells      [][]Cell `json:"rows"`
	Total      int      `json:"total"`
	Filtered   int      `json:"filtered"`
	TotalPages int      `json:"total_pages"`
	Window     []int    `json:"window"`
}

// Empty reports whether the visible page has no rows.
func (s Snapshot) Empty() bool {
	return len(s.Rows) == 0
}

// Option configures a View.
type Option func(*View)

// WithState starts the view from s instead of InitialState.
func WithState(s State) Option {
	return func(v *View) {
		if s.Direction != Desc {
			s.Direction = Asc
		}
		v.state = s
	}
}

// WithPageSize overrides PageSize.
func WithPageSize(size int) Option {
	return func(v *View) {
		if size > 0 {
			v.pageSize = size
		}
	}
}

// WithCollation sets the language used to order text columns.
func WithCollation(tag language.Tag) Option {
	return func(v *View) {
		v.lang = tag
	}
}

// View filters, sorts and paginates one row set. Every read recomputes the
// pipeline from the rows and the current state.
type View struct {
	rows       []Row
	columns    []Column
	searchKeys []string
	pageSize   int
	lang       language.Tag
	state      State
}

// NewView creates a view in InitialState unless WithState is given.
func NewView(rows []Row, columns []Column, searchKeys []string, opts ...Option) *View {
	v := &View{
		rows:       rows,
		columns:    columns,
		searchKeys: searchKeys,
		pageSize:   PageSize,
		lang:       language.Und,
		state:      InitialState(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// State returns the current view state.
func (v *View) State() State {
	return v.state
}

// SetRows replaces the row set, keeping the state.
func (v *View) SetRows(rows []Row) {
	v.rows = rows
}

// SetQuery changes the search text and returns to page 1.
func (v *View) SetQuery(q string) {
	v.state.Query = q
	v.state.Page = 1
}

// ToggleSort flips the direction when key is already the sort key, otherwise
// sorts ascending by key. Either way the view returns to page 1.
func (v *View) ToggleSort(key string) {
	v.state = v.state.Toggled(key)
}

// SetPage moves to page p. The caller clamps p to [1, TotalPages]; pages
// outside that range render empty.
func (v *View) SetPage(p int) {
	v.state.Page = p
}

// Sorted returns every row that passes the filter, in sort order.
func (v *View) Sorted() []Row {
	filtered := Filter(v.rows, v.state.Query, v.searchKeys)
	if v.state.SortKey == "" {
		return filtered
	}

	cmp := NewComparator(v.state.SortKey, v.modeOf(v.state.SortKey), v.state.Direction, v.lang)
	sorted := slices.Clone(filtered)
	slices.SortStableFunc(sorted, cmp.Compare)
	return sorted
}

// Snapshot recomputes filter, sort and pagination for the current state.
func (v *View) Snapshot() Snapshot {
	sorted := v.Sorted()
	pageRows, totalPages := Paginate(sorted, v.state.Page, v.pageSize)

	return Snapshot{
		State:      v.state,
		Columns:    Headers(v.columns),
		Rows:       pageRows,
		Cells:      RenderRows(v.columns, pageRows),
		Total:      len(v.rows),
		Filtered:   len(sorted),
		TotalPages: totalPages,
		Window:     PageWindow(v.state.Page, totalPages),
	}
}

// Export renders every filtered, sorted row, ignoring pagination.
func (v *View) Export() ([]Header, [][]Cell) {
	return Headers(v.columns), RenderRows(v.columns, v.Sorted())
}

func (v *View) modeOf(key string) SortMode {
	for _, c := range v.columns {
		if c.Key == key {
			return c.Mode
		}
	}
	return Auto
}
