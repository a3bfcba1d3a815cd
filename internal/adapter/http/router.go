package http

import (
	"agricredit-backend/internal/access"
	mw "agricredit-backend/internal/adapter/middleware"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Health        *Handler
	Auth          *AuthHandler
	Applications  *ApplicationHandler
	Programs      *ProgramHandler
	Simulation    *SimulationHandler
	Accounts      *AccountHandler
	Notifications *NotificationHandler
	Profiles      *ProfileHandler
	Users         *UserHandler
	Documents     *DocumentHandler
}

// RegisterRoutes mounts the API. idem may be nil to run without
// idempotency keys.
func RegisterRoutes(e *echo.Echo, h Handlers, authn mw.Authenticator, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api")
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/simulate-credit", h.Simulation.Simulate)
	api.GET("/credit-programs", h.Programs.ListActive)

	// browser-opened links may carry the token in the query string
	api.GET("/documents/view/:id", h.Documents.View, mw.Auth(authn, true))
	api.GET("/notifications/stream", h.Notifications.Stream, mw.Auth(authn, true))

	chain := []echo.MiddlewareFunc{mw.Auth(authn, false)}
	if idem != nil {
		chain = append(chain, idem)
	}
	priv := api.Group("", chain...)

	priv.GET("/auth/me", h.Auth.Me)
	priv.GET("/auth/permissions", h.Auth.Permissions)

	priv.POST("/credit-applications", h.Applications.Submit)
	priv.GET("/credit-applications/user", h.Applications.ListMine)
	priv.GET("/credit-applications/financial-institution", h.Applications.ListForInstitution)
	priv.GET("/credit-applications/:id", h.Applications.Get)
	priv.GET("/credit-applications/:id/documents", h.Applications.Documents)
	priv.PATCH("/credit-applications/:id/status", h.Applications.UpdateStatus)

	priv.GET("/credit-programs/institution", h.Programs.ListMine)
	priv.GET("/credit-programs/:id", h.Programs.Get)
	priv.POST("/credit-programs", h.Programs.Create)
	priv.PATCH("/credit-programs/:id", h.Programs.Update)
	priv.PATCH("/credit-programs/:id/toggle", h.Programs.Toggle)

	priv.GET("/accounts/user", h.Accounts.ListMine)
	priv.GET("/accounts/financial-institution", h.Accounts.ListForInstitution)
	priv.GET("/accounts/:id", h.Accounts.Get)
	priv.POST("/accounts/:id/payments", h.Accounts.Pay)
	priv.GET("/accounts/:id/payments", h.Accounts.Payments)

	priv.GET("/notifications", h.Notifications.List)
	priv.GET("/notifications/unread-count", h.Notifications.UnreadCount)
	priv.PATCH("/notifications/read-all", h.Notifications.MarkAllRead)
	priv.PATCH("/notifications/:id/read", h.Notifications.MarkRead)
	priv.DELETE("/notifications/:id", h.Notifications.Delete)

	admin := priv.Group("", mw.RequireAny(access.ProfilesRead, access.UsersRead))
	admin.GET("/profiles", h.Profiles.List)
	admin.POST("/profiles", h.Profiles.Create)
	admin.PATCH("/profiles/:id", h.Profiles.Update)
	admin.DELETE("/profiles/:id", h.Profiles.Delete)
	admin.GET("/permissions", h.Profiles.Permissions)
	admin.GET("/users", h.Users.List)
	admin.POST("/users", h.Users.Create)
	admin.PATCH("/users/:id/profile", h.Users.AssignProfile)
	admin.PATCH("/users/:id/deactivate", h.Users.Deactivate)

	priv.POST("/documents/upload", h.Documents.Upload)
	priv.GET("/documents/user", h.Documents.ListMine)
	priv.GET("/documents/download/:id", h.Documents.Download)
}
