package services

import (
	"cookbook/internal/apperrors"
	"cookbook/internal/models"
)

// AssertOwner fails with PermissionDenied unless callerID owns entity.
// action names the attempted operation, e.g. "update recipe".
func AssertOwner(entity models.Owned, callerID, action string) error {
	if entity == nil || callerID == "" || entity.OwnerID() != callerID {
		return apperrors.PermissionDenied(action)
	}
	return nil
}
