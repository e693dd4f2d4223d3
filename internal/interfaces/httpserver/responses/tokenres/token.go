package tokenres

// TokenResponse is the result of any POST /api/token flow. Token is only
// set for flows that resolve a conversation; Existing reports whether the
// member flow reused a live conversation instead of minting one.
type TokenResponse struct {
	Type      string `json:"type"`
	Valid     bool   `json:"valid"`
	Token     string `json:"token,omitempty"`
	ProjectID string `json:"projectId,omitempty"`
	Title     string `json:"title,omitempty"`
	Existing  bool   `json:"existing,omitempty"`
}
