package tokenreq

// EntryType selects which flow the token endpoint runs.
type EntryType string

const (
	EntryTypeAdmin    EntryType = "admin"
	EntryTypeMember   EntryType = "member"
	EntryTypeProject  EntryType = "project"
	EntryTypeValidate EntryType = "validate"
)

// TokenRequest is the body of POST /api/token. Which fields are required
// depends on Type: member needs email or name, project needs ProjectID,
// validate and admin need Token.
type TokenRequest struct {
	Type      EntryType `json:"type" binding:"required"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	ProjectID string    `json:"projectId,omitempty"`
	Token     string    `json:"token,omitempty"`
}
