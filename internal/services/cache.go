package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/gofrs/uuid"
)

// ListCache holds serialized list pages. *cache.GuardedCache implements it.
type ListCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
	Invalidate(ctx context.Context, pattern string) error
}

func projectListKey(ownerID uuid.UUID, page PageRequest, search string) string {
	return fmt.Sprintf("projects:%s:%d:%d:%s", ownerID, page.Page, page.Limit, url.QueryEscape(search))
}

func projectListPattern(ownerID uuid.UUID) string {
	return fmt.Sprintf("projects:%s:*", ownerID)
}

// Task pages are keyed by caller too: with ownership enforced two callers
// can get different answers for the same project.
func taskListKey(projectID, callerID uuid.UUID, status string, page PageRequest, search string) string {
	return fmt.Sprintf("tasks:%s:%s:%s:%d:%d:%s", projectID, callerID, url.QueryEscape(status), page.Page, page.Limit, url.QueryEscape(search))
}

func taskListPattern(projectID uuid.UUID) string {
	return fmt.Sprintf("tasks:%s:*", projectID)
}
