package pagination

// Pagination represents limit/offset query parameters.
type Pagination struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int `form:"offset" binding:"omitempty,min=0"`
}

// Default values.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// New creates pagination with default values.
func New() *Pagination {
	return &Pagination{Limit: DefaultLimit}
}

// Normalize clamps the values into the accepted range.
func (p *Pagination) Normalize() *Pagination {
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
