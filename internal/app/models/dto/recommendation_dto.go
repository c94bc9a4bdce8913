package dto

// RecommendationResponse is one ranked mentor candidate. MatchScore is an
// integer percentage in (0, 100]; zero-overlap candidates are never
// returned.
type RecommendationResponse struct {
	ID         int64    `json:"_id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Skills     []string `json:"skills"`
	Avatar     *string  `json:"avatar,omitempty"`
	MatchScore int      `json:"matchScore"`
}
