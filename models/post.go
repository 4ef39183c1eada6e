package models

// Reply is a response to a comment. ID is unique within the parent comment.
type Reply struct {
	ID     int    `dynamodbav:"id" json:"id"`
	Author string `dynamodbav:"author" json:"author"`
	Reply  string `dynamodbav:"reply" json:"reply"`
}

// Comment is a top-level comment on a post. ID is unique within the post.
type Comment struct {
	ID      int     `dynamodbav:"id" json:"id"`
	Author  string  `dynamodbav:"author" json:"author"`
	Content string  `dynamodbav:"content" json:"content"`
	Replies []Reply `dynamodbav:"replies,omitempty" json:"replies,omitempty"`
}

// Reaction is an emoji reaction left on a post.
type Reaction struct {
	Emoji  string `dynamodbav:"emoji" json:"emoji"`
	Author string `dynamodbav:"author" json:"author"`
}

// Post is a user's image post. Posts are created empty and the image slots
// are filled asynchronously once the S3 uploads land; a post is only
// feed-eligible when both slots are set.
type Post struct {
	Username       string     `dynamodbav:"username" json:"username"`
	PostID         string     `dynamodbav:"postId" json:"postId"`
	PrimaryImage   *Image     `dynamodbav:"primaryImage,omitempty" json:"primaryImage,omitempty"`
	SecondaryImage *Image     `dynamodbav:"secondaryImage,omitempty" json:"secondaryImage,omitempty"`
	Caption        string     `dynamodbav:"caption" json:"caption"`
	Likes          int        `dynamodbav:"likes" json:"likes"`
	Reactions      []Reaction `dynamodbav:"reactions" json:"reactions"`
	Comments       []Comment  `dynamodbav:"comments" json:"comments"`
	CreatedAt      int64      `dynamodbav:"createdAt" json:"createdAt"`
}

// IsComplete reports whether both image slots have been attached.
func (p *Post) IsComplete() bool {
	return p.PrimaryImage != nil && p.SecondaryImage != nil
}

// Image slot identifiers used by upload keys and attach operations.
const (
	ImageSlotPrimary   = "primary"
	ImageSlotSecondary = "secondary"
)
