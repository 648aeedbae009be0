package dto

// DefaultPageSize is used when a list request does not specify a limit.
const DefaultPageSize = 20

// MaxPageSize caps list requests.
const MaxPageSize = 100

// PageParams are the cursor pagination query parameters shared by list endpoints.
type PageParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// EffectiveLimit applies defaults and the upper bound to Limit.
func (p PageParams) EffectiveLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultPageSize
	case p.Limit > MaxPageSize:
		return MaxPageSize
	default:
		return p.Limit
	}
}

// ErrorResponse is the body of every rejected request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
