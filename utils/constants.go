// File: utils/constants.go
package utils

// ScheduleCachePrefix is the prefix used for Redis schedule cache keys.
const ScheduleCachePrefix = "schedule:"

// Headers set by the upstream auth provider for every authenticated request.
const (
	HeaderShopID   = "X-Shop-ID"
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)
