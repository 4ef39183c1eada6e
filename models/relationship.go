package models

// Relationship is one side of a friendship edge. Every edge between two
// users is stored as two mirror records, (A,B) and (B,A), so that a single
// partition query answers "all of A's friends". The two records always
// carry identical IsPending and Requester values and are only ever written
// or removed together in one transaction.
type Relationship struct {
	Username  string `dynamodbav:"username" json:"username"`
	Friend    string `dynamodbav:"friend" json:"friend"`
	IsPending bool   `dynamodbav:"isPending" json:"isPending"`
	Requester string `dynamodbav:"requester" json:"requester"`
	CreatedAt int64  `dynamodbav:"createdAt" json:"createdAt"`
}

// Engagement actions for a pending friend request.
const (
	EngageActionAccept = "accept"
	EngageActionReject = "reject"
)
