package messagereq

// SendMessageRequest is the body for posting a message into a conversation.
type SendMessageRequest struct {
	SenderName  string   `json:"sender_name"`
	Content     string   `json:"content"`
	Attachments []string `json:"attachments,omitempty"`
}
