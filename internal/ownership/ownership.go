// Package ownership guards mutations of user-authored resources.
package ownership

import (
	"forum/pkg/domain"
	"forum/pkg/serrors"
)

// Owned is implemented by resources that have a single author.
type Owned interface {
	OwnerID() domain.UserID
}

// Authorize returns a Forbidden error unless actor authored resource.
func Authorize(resource Owned, actor domain.UserID) error {
	if resource.OwnerID() != actor {
		return serrors.With(serrors.ErrForbidden, "only the author can modify this resource")
	}

	return nil
}
