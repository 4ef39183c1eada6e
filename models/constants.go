package models

// Default DynamoDB table names. Deployments override these through the
// corresponding environment variables (see the config package).
const (
	UserTable         = "Users"
	SessionTable      = "Sessions"
	RelationshipTable = "Relationships"
	PostTable         = "Posts"
)

// S3 object metadata keys carrying image dimensions through the upload.
const (
	WidthMetadataHeader  = "width"
	HeightMetadataHeader = "height"
)

// CaptionMaxLength bounds post captions, comments, and replies.
const CaptionMaxLength = 140
