package repmgr

import "errors"

var (
	// ErrRegistrationFailed marks a failed `repmgr primary register`
	ErrRegistrationFailed = errors.New("primary registration failed")
	// ErrCloneFailed marks a failed `repmgr standby clone`
	ErrCloneFailed = errors.New("standby clone failed")
)
