package models

// DataPoint is a single aggregate bucket. Exactly one of the label fields is
// set, matching the category it was fetched for.
type DataPoint struct {
	RatingRange  string `json:"rating_range,omitempty" db:"rating_range"`
	Decade       string `json:"decade,omitempty" db:"decade"`
	CountryGroup string `json:"country_group,omitempty" db:"country_group"`
	Count        int64  `json:"count" db:"count"`
}

// NewDataPoint puts label into the field that belongs to c. Negative counts
// are clamped to zero.
func NewDataPoint(c Category, label string, count int64) DataPoint {
	if count < 0 {
		count = 0
	}
	p := DataPoint{Count: count}
	switch c {
	case CategoryRating:
		p.RatingRange = label
	case CategoryYear:
		p.Decade = label
	case CategoryCountry:
		p.CountryGroup = label
	}
	return p
}

// Label returns the bucket label for c, or "" if the point has another shape.
func (p DataPoint) Label(c Category) string {
	switch c {
	case CategoryRating:
		return p.RatingRange
	case CategoryYear:
		return p.Decade
	case CategoryCountry:
		return p.CountryGroup
	}
	return ""
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// DistributionResponse is the envelope served by /api/movies/{type}-distribution.
type DistributionResponse struct {
	Status  string      `json:"status"`
	Data    []DataPoint `json:"data"`
	Message string      `json:"message,omitempty"`
}

func (r DistributionResponse) OK() bool {
	return r.Status == StatusSuccess
}
