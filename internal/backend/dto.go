package backend

// queryRequest is the body for collection :query calls
type queryRequest struct {
	Filters    []filterDTO `json:"filters,omitempty"`
	OrderBy    *orderByDTO `json:"orderBy,omitempty"`
	StartAfter string      `json:"startAfter,omitempty"`
	Limit      int         `json:"limit,omitempty"`
}

// filterDTO is one equality or range filter
type filterDTO struct {
	Field string `json:"field"`
	Op    string `json:"op"` // "==", ">=", "<="
	Value any    `json:"value"`
}

// orderByDTO is the ordering clause
type orderByDTO struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // "asc" or "desc"
}

// queryResponse is the :query result envelope
type queryResponse struct {
	Documents  []documentDTO `json:"documents"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

// countRequest is the body for collection :count calls
type countRequest struct {
	Filters []filterDTO `json:"filters,omitempty"`
}

// countResponse is the :count result envelope
type countResponse struct {
	Count int `json:"count"`
}

// updateRequest is the body for document :update calls. ArrayUnion and
// ArrayRemove are atomic set operations on an array field.
type updateRequest struct {
	Field       string   `json:"field"`
	ArrayUnion  []string `json:"arrayUnion,omitempty"`
	ArrayRemove []string `json:"arrayRemove,omitempty"`
}

// documentDTO mirrors the backend document shape. Field names are the
// store's own (Portuguese) names; the mapper converts to domain types.
type documentDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"titulo"`
	Category    string   `json:"categoria"`
	IsPremium   bool     `json:"isPremium"`
	New         bool     `json:"nova"`
	Tags        []string `json:"tags,omitempty"`
	FavoritedBy []string `json:"favoritadoPor,omitempty"`
	CreatedAt   string   `json:"createdAt"` // RFC 3339

	// Lesson sections
	Story       string `json:"historia,omitempty"`
	Application string `json:"aplicacao,omitempty"`
	Dynamic     string `json:"dinamica,omitempty"`
	Activity    string `json:"atividade,omitempty"`
	Prayer      string `json:"oracao,omitempty"`
	DrawingURL  string `json:"desenhoUrl,omitempty"`

	// Activity fields
	ImageURL string `json:"imageUrl,omitempty"`

	PDFURL string `json:"pdfUrl,omitempty"`
}

// errorResponse is the backend's error envelope
type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
