package handlers

import (
	"sahayata/middleware"
)

// HandlerBundle groups the endpoint handlers registered by the routes package.
type HandlerBundle struct {
	Tokens middleware.TokenValidator

	Auth          *AuthHandler
	Profile       *ProfileHandler
	Care          *CareHandler
	Records       *RecordHandler
	Community     *CommunityHandler
	Notifications *NotificationHandler
	Stream        *StreamHandler

	// Debug is nil when the debug endpoints are disabled.
	Debug *DebugHandler
}
