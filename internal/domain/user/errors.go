package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")

	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrManagerAccessRequired  = errors.New("manager access required")
)
