package server

import "net/http"

func (s *Server) initRoutes() {
	api := s.APIMiddleware()
	protected := func() []func(http.HandlerFunc) http.HandlerFunc {
		return append(s.APIMiddleware(), s.RequireAuth())
	}

	// AUTH
	s.RegisterRouteHandler("GET "+RouteAuthLoginState, ChainMiddleware(s.LoginStateHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthPKCEChallenge, ChainMiddleware(s.PKCEChallengeHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginRedirectHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.AuthCallbackHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), api...))
	s.RegisterRouteHandler("GET "+RouteAuthMe, ChainMiddleware(s.CurrentUserHandler(), protected()...))

	// Demo bypass is wired only when the deployment enables it; the
	// handlers themselves never branch on environment.
	if s.config.DemoMode {
		s.RegisterRouteHandler("POST "+RouteAuthDemoLogin, ChainMiddleware(s.DemoLoginHandler(), api...))
		s.RegisterRouteHandler("POST "+RouteAuthDemoLogout, ChainMiddleware(s.DemoLogoutHandler(), api...))
	}

	// TAROT
	s.RegisterRouteHandler("POST "+RouteTarotGenerateReading, ChainMiddleware(s.GenerateReadingHandler(), api...))
	s.RegisterRouteHandler("POST "+RouteTarotPremiumReading, ChainMiddleware(s.PremiumReadingHandler(), protected()...))
	s.RegisterRouteHandler("POST "+RouteTarotSaveReading, ChainMiddleware(s.SaveReadingHandler(), protected()...))
	s.RegisterRouteHandler("GET "+RouteTarotReadings, ChainMiddleware(s.ListReadingsHandler(), protected()...))
	s.RegisterRouteHandler("DELETE "+RouteTarotReadingByID, ChainMiddleware(s.DeleteReadingHandler(), protected()...))
	s.RegisterRouteHandler("GET "+RouteTarotTrends, ChainMiddleware(s.TrendsHandler(), protected()...))

	// Static front-end assets
	s.RegisterRouteHandler("GET /", http.FileServer(http.Dir(s.config.PublicDir)))
}
