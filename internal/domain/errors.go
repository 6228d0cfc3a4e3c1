package domain

import "errors"

// Validation errors surfaced by the release engine. Handlers map these to
// client error responses; none of them leave partial state behind.
var (
	ErrGroupNameRequired  = errors.New("group name is required")
	ErrGroupExists        = errors.New("group name already exists")
	ErrGroupNotFound      = errors.New("group not found")
	ErrReservedGroupName  = errors.New("group name is reserved")
	ErrTierNotFound       = errors.New("tier not found")
	ErrConfirmRequired    = errors.New("deleting a tier with sales requires confirmation")
	ErrInvalidTierStatus  = errors.New("invalid tier status")
	ErrInvalidTransition  = errors.New("invalid tier status transition")
	ErrInvalidReleaseMode = errors.New("invalid release mode")
	ErrIndexOutOfRange    = errors.New("tier index out of range")
)
