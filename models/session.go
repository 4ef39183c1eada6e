package models

// Session represents an authenticated bearer-token session. SessionID is
// the SHA-256 hash of the opaque token, so the table never holds the
// bearer secret itself. Timestamps are epoch milliseconds.
type Session struct {
	Username  string `dynamodbav:"username" json:"username"`
	SessionID string `dynamodbav:"sessionId" json:"sessionId"`
	CreatedAt int64  `dynamodbav:"createdAt" json:"createdAt"`
	ExpiresAt int64  `dynamodbav:"expiresAt" json:"expiresAt"`
}
