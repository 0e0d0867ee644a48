package common

const (
	DefaultPageSize = 6
	MaxPageSize     = 100
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > MaxPageSize {
		p.Limit = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	n := p.Normalize()
	return (n.Number - 1) * n.Limit
}
