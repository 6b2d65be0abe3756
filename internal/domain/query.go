package domain

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(raw string) (SortDirection, bool) {
	switch SortDirection(raw) {
	case SortAsc, SortDesc:
		return SortDirection(raw), true
	}
	return "", false
}

// AccountFilter narrows a listing. CustomerID is mandatory: customer scoping
// is authorization, not a filter a caller may omit. The remaining fields are
// conjunctive and optional (nil = no constraint).
type AccountFilter struct {
	CustomerID  string
	AccountType *AccountType
	Status      *AccountStatus
	Currency    *string
}

// PageRequest describes one page of a sorted result set. Ties on SortBy are
// broken by account id so pagination stays stable across pages.
type PageRequest struct {
	Page    int
	Size    int
	SortBy  string
	SortDir SortDirection
}

func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

var sortableFields = map[string]struct{}{
	"createdAt":       {},
	"updatedAt":       {},
	"lastActivityAt":  {},
	"accountType":     {},
	"status":          {},
	"currency":        {},
	"balance":         {},
	"accountNickname": {},
}

func IsSortableField(name string) bool {
	_, ok := sortableFields[name]
	return ok
}

// PageMetadata describes a page's position within the whole filtered set.
type PageMetadata struct {
	TotalElements int64
	TotalPages    int
	CurrentPage   int
	Size          int
	HasNext       bool
	HasPrevious   bool
}

// NewPageMetadata derives the metadata for a page request against a filtered
// total. Requests past the last page yield empty content but accurate totals.
func NewPageMetadata(page PageRequest, total int64) PageMetadata {
	totalPages := 0
	if page.Size > 0 {
		totalPages = int((total + int64(page.Size) - 1) / int64(page.Size))
	}
	return PageMetadata{
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   page.Page,
		Size:          page.Size,
		HasNext:       page.Page+1 < totalPages,
		HasPrevious:   page.Page > 0,
	}
}
