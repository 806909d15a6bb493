package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth routes
	RouteAuthLoginState    = "/api/auth/login-state"
	RouteAuthPKCEChallenge = "/api/auth/pkce-challenge"
	RouteAuthLogin         = "/api/auth/login"
	RouteAuthCallback      = "/api/auth/callback"
	RouteAuthLogout        = "/api/auth/logout"
	RouteAuthMe            = "/api/auth/me"

	// Demo routes (registered only when demo mode is enabled)
	RouteAuthDemoLogin  = "/api/auth/demo-login"
	RouteAuthDemoLogout = "/api/auth/demo-logout"

	// Tarot routes
	RouteTarotGenerateReading = "/api/tarot/generate-reading"
	RouteTarotPremiumReading  = "/api/tarot/premium-reading"
	RouteTarotSaveReading     = "/api/tarot/save-reading"
	RouteTarotReadings        = "/api/tarot/readings"
	RouteTarotReadingByID     = "/api/tarot/readings/{id}"
	RouteTarotTrends          = "/api/tarot/trends"
)

// Cookie names
const (
	// sessionTokenCookieName carries the signed first-party session token.
	sessionTokenCookieName = "token"
	// browserSessionCookieName identifies the server-side browser session
	// that owns the pending login attempt.
	browserSessionCookieName = "sid"
)
