package contextapi

import "contextwatch/internal/domain"

// requestEnvelope carries the credentials every API request embeds in its
// body. RequestID is a fresh UUID per request so individual calls can be
// correlated with server-side logs.
type requestEnvelope struct {
	APIKey    string `json:"apiKey"`
	SessionID string `json:"sessionID"`
	RequestID string `json:"requestID"`
}

type entitySearchRequest struct {
	requestEnvelope
	Query         string `json:"query"`
	ExactMatching bool   `json:"exactMatching"`
	MaxResults    int    `json:"maxResults"`
}

type entitySearchResponse struct {
	Results []wireEntity `json:"results"`
}

type wireEntity struct {
	EntityID    string `json:"entityID"`
	EntityType  string `json:"entityType"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
}

type contentQueryRequest struct {
	requestEnvelope
	QueryType  string   `json:"queryType"`
	UpdateType string   `json:"updateType"`
	NumItems   int      `json:"numItems"`
	EntityIDs  []string `json:"entityIDs"`
}

type contentQueryResponse struct {
	Recommendations []wireContentItem `json:"recommendations"`
}

type sourcesRequest struct {
	requestEnvelope
}

type sourcesResponse struct {
	Sources []string `json:"sources"`
}

type wireSocialInfo struct {
	Author string `json:"author"`
}

type wireRelatedItem struct {
	ContentType string `json:"contentType"`
	LinkURL     string `json:"linkURL"`
}

type wireRelated struct {
	Relationship string          `json:"relationship"`
	ContentItem  wireRelatedItem `json:"contentItem"`
}

type wireContentItem struct {
	ContentID      string         `json:"contentID"`
	Headline       string         `json:"headline"`
	ContentType    string         `json:"contentType"`
	Source         string         `json:"source"`
	Timestamp      int64          `json:"timestamp"`
	Score          float64        `json:"score"`
	Summary        string         `json:"summary"`
	SocialInfo     wireSocialInfo `json:"socialInfo"`
	LinkURL        string         `json:"linkURL"`
	RelatedContent []wireRelated  `json:"relatedContent"`
}

func (w wireContentItem) toDomain() domain.ContentItem {
	item := domain.ContentItem{
		ContentID:   w.ContentID,
		Headline:    w.Headline,
		ContentType: w.ContentType,
		Source:      w.Source,
		Timestamp:   w.Timestamp,
		Score:       w.Score,
		Summary:     w.Summary,
		Author:      w.SocialInfo.Author,
		LinkURL:     w.LinkURL,
	}

	for _, rc := range w.RelatedContent {
		item.Related = append(item.Related, domain.RelatedContent{
			Relationship: rc.Relationship,
			ContentType:  rc.ContentItem.ContentType,
			LinkURL:      rc.ContentItem.LinkURL,
		})
	}

	return item
}
