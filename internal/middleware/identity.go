package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// Context keys set by JWTAuth.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

// DeviceHeader names the request header that identifies the client device.
// Each device keeps its own user record.
const DeviceHeader = "X-Device-ID"

// DefaultDevice is used when a request carries no DeviceHeader.
const DefaultDevice = "default"

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	s, _ := c.Get(ContextUserID).(string)
	return s
}

// Role returns the authenticated role, or "".
func Role(c echo.Context) string {
	s, _ := c.Get(ContextRole).(string)
	return s
}

// DeviceID returns the trimmed DeviceHeader value or DefaultDevice.
// Colons are replaced so the id can be embedded in store keys.
func DeviceID(c echo.Context) string {
	id := strings.TrimSpace(c.Request().Header.Get(DeviceHeader))
	if id == "" {
		return DefaultDevice
	}
	return strings.ReplaceAll(id, ":", "_")
}
