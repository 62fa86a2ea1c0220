// Package ownership holds the single access-control primitive shared by the
// user and expense services.
package ownership

import appErrors "github.com/sebuszqo/ExpenseTracker/internal/errors"

// AuthorizeByID fails with errors.ErrNotAuthorized unless the acting user is
// the owner of the resource.
func AuthorizeByID(actorID, ownerID int64) error {
	if actorID != ownerID {
		return appErrors.ErrNotAuthorized
	}
	return nil
}
