package services

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Error taxonomy shared by all services. Callers distinguish outcomes with
// errors.Is; anything not matching a sentinel is a transient store failure
// and may be retried.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a conflicting record was already present
	// (conditional create lost).
	ErrAlreadyExists = errors.New("already exists")

	// ErrForbidden indicates a policy violation, e.g. accepting one's own
	// friend request.
	ErrForbidden = errors.New("forbidden")

	// ErrRateLimited indicates the daily post limit has been reached.
	ErrRateLimited = errors.New("rate limited")
)

// isConditionalFailure reports whether err is a DynamoDB conditional-write
// or transaction-condition failure, i.e. a lost create-if-absent race.
func isConditionalFailure(err error) bool {
	var condErr *types.ConditionalCheckFailedException
	if errors.As(err, &condErr) {
		return true
	}
	var txErr *types.TransactionCanceledException
	if errors.As(err, &txErr) {
		for _, reason := range txErr.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return true
			}
		}
	}
	return false
}
