package domain

import "errors"

// ErrorResponse is the JSON body returned on any failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}

// Sentinel errors for the store and lifecycle layers. Controllers map
// these onto HTTP status codes; nothing below the controller layer knows
// about HTTP.
var (
	ErrNotFound           = errors.New("record not found")
	ErrForbidden          = errors.New("insufficient role")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidAssignee    = errors.New("assignee is not an engineer")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserHasDefects     = errors.New("user has created defects")
)
