package domain

// EntityMatch is a directory candidate resolved from a free-text query.
type EntityMatch struct {
	ID          string
	Type        string
	Name        string
	Description string
}

// ContentItem is a single recommended piece of content returned per poll.
type ContentItem struct {
	ContentID   string
	Headline    string
	ContentType string
	Source      string
	Timestamp   int64
	Score       float64
	Summary     string
	Author      string
	LinkURL     string
	Related     []RelatedContent
}

// RelatedContent references another item linked to a recommendation.
type RelatedContent struct {
	Relationship string
	ContentType  string
	LinkURL      string
}

// ContentQuery carries all parameters of one recommendation poll.
type ContentQuery struct {
	Type      QueryType
	Mode      QueryMode
	BatchSize int
	EntityIDs []string
}

// Preview is an optional page excerpt fetched from an item's link.
type Preview struct {
	Title       string
	Description string
}

// QueryType selects the recommendation strategy of the remote service.
type QueryType string

const (
	QueryFeed           QueryType = "FEED"
	QueryRecommendation QueryType = "RECOMMENDATION"
	QuerySurvey         QueryType = "SURVEY"
	QuerySearch         QueryType = "SEARCH"
	QueryDiscovery      QueryType = "DISCOVERY"
)

// ParseQueryType maps a raw string onto a known query type. Unknown values
// fall back to FEED with ok=false so callers can warn without aborting.
func ParseQueryType(raw string) (QueryType, bool) {
	switch QueryType(raw) {
	case QueryFeed, QueryRecommendation, QuerySurvey, QuerySearch, QueryDiscovery:
		return QueryType(raw), true
	}
	return QueryFeed, false
}

// QueryMode is the lifecycle flag of the update loop: one INITIAL query
// establishes the baseline, every query after that asks for updates only.
type QueryMode string

const (
	ModeInitial QueryMode = "INITIAL"
	ModeUpdate  QueryMode = "UPDATE"
)
