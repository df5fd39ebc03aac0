package ledger

import (
	"strings"

	"github.com/samber/lo"

	"stock-backend/internal/models"
)

// GroupMode selects which rows the rack-grouped view is built from
type GroupMode string

const (
	// GroupPage groups only the rows of the requested page
	GroupPage GroupMode = "page"
	// GroupFiltered groups every row that passed the filters
	GroupFiltered GroupMode = "filtered"
	// GroupNone disables grouping for a single query
	GroupNone GroupMode = "none"
)

// ParseGroupMode accepts page, filtered and none. Anything else yields fallback.
func ParseGroupMode(value string, fallback GroupMode) GroupMode {
	switch GroupMode(strings.ToLower(strings.TrimSpace(value))) {
	case GroupPage:
		return GroupPage
	case GroupFiltered:
		return GroupFiltered
	case GroupNone:
		return GroupNone
	}
	return fallback
}

type Query struct {
	Page     int
	PageSize int
	Search   string
	Rack     string
	Group    GroupMode // empty uses the engine default
}

// Engine runs summary queries. The zero value uses a page size of 10, no
// upper bound, and page grouping. The returned PageSize is the size actually
// applied; callers that must not be capped check MaxPageSize first.
type Engine struct {
	DefaultPageSize int
	MaxPageSize     int
	GroupMode       GroupMode
}

// Run filters rows, slices out the requested page and attaches the facet
// data. rows is not modified.
func (e Engine) Run(rows []models.StockSummary, q Query) models.StockSummaryPage {
	page, size := e.normalize(q.Page, q.PageSize)

	filtered := Filter(rows, q.Search, q.Rack)
	data, totalPages := Paginate(filtered, page, size)

	result := models.StockSummaryPage{
		Data:           data,
		TotalCount:     len(filtered),
		TotalPages:     totalPages,
		Page:           page,
		PageSize:       size,
		AvailableRacks: AvailableRacks(rows),
	}

	mode := q.Group
	if mode == "" {
		mode = e.GroupMode
	}
	switch mode {
	case GroupFiltered:
		result.Groups = GroupByRack(filtered)
	case GroupNone:
	default:
		result.Groups = GroupByRack(data)
	}
	return result
}

func (e Engine) normalize(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = e.DefaultPageSize
		if size < 1 {
			size = 10
		}
	}
	if e.MaxPageSize > 0 && size > e.MaxPageSize {
		size = e.MaxPageSize
	}
	return page, size
}

// Filter keeps rows whose product name contains search (case-insensitive,
// spaces included) and whose rack equals rack exactly. An empty search or an
// empty rack matches everything; any other rack value, including "all", is a
// label. Order is preserved.
func Filter(rows []models.StockSummary, search, rack string) []models.StockSummary {
	term := strings.ToLower(search)

	return lo.Filter(rows, func(r models.StockSummary, _ int) bool {
		if !strings.Contains(strings.ToLower(r.ProductName), term) {
			return false
		}
		return rack == "" || r.Rack == rack
	})
}

// Paginate returns rows [(page-1)*size, page*size) and the page count. An
// empty input still reports one page. Pages past the end come back empty,
// never nil. page and size must be positive.
func Paginate(rows []models.StockSummary, page, size int) ([]models.StockSummary, int) {
	// written without len+size-1 so a huge size cannot overflow
	totalPages := len(rows) / size
	if len(rows)%size != 0 {
		totalPages++
	}

	// checked before multiplying; (page-1)*size overflows for huge pages
	if page-1 >= totalPages {
		return []models.StockSummary{}, max(totalPages, 1)
	}
	start := (page - 1) * size
	end := start + min(size, len(rows)-start)

	out := make([]models.StockSummary, end-start)
	copy(out, rows[start:end])
	return out, max(totalPages, 1)
}

// AvailableRacks lists the distinct rack labels of rows in first-seen order.
// Products without a rack label do not contribute.
func AvailableRacks(rows []models.StockSummary) []string {
	racks := lo.Map(rows, func(r models.StockSummary, _ int) string { return r.Rack })
	return lo.Uniq(lo.Compact(racks))
}

// GroupByRack partitions rows by rack label. Groups appear in first-seen
// order and keep the relative order of their rows.
func GroupByRack(rows []models.StockSummary) []models.RackGroup {
	groups := make([]models.RackGroup, 0)
	index := make(map[string]int)
	for _, r := range rows {
		i, ok := index[r.Rack]
		if !ok {
			i = len(groups)
			index[r.Rack] = i
			groups = append(groups, models.RackGroup{Rack: r.Rack})
		}
		groups[i].Rows = append(groups[i].Rows, r)
	}
	return groups
}
