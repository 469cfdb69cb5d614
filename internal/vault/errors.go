package vault

import "errors"

// ValidationError reports a required field that was left empty. It is
// returned before any store access, so the caller's sequence is untouched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrNameRequired     = &ValidationError{Field: "name", Message: "name is required"}
	ErrUsernameRequired = &ValidationError{Field: "username", Message: "username is required"}
	ErrPasswordRequired = &ValidationError{Field: "password", Message: "password is required"}

	ErrCurrentNameRequired = &ValidationError{Field: "current_name", Message: "current credentials name is required"}
	ErrNewNameRequired     = &ValidationError{Field: "name", Message: "credentials new name is required"}
	ErrNewUsernameRequired = &ValidationError{Field: "username", Message: "credentials new username is required"}
	ErrNewPasswordRequired = &ValidationError{Field: "password", Message: "credentials new password is required"}
)

var (
	ErrNotFound         = errors.New("credentials with specified name was not found")
	ErrIdentityRequired = errors.New("caller identity is required")
	ErrOwnerNotSet      = errors.New("vault owner is not set")
)

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
