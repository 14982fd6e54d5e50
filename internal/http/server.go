package http

import (
	"context"
	stdhttp "net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"docvault/internal/auth"
	"docvault/internal/config"
	"docvault/internal/http/handler"
	"docvault/internal/http/middleware"
	"docvault/internal/service"
)

const (
	jsonKeyStatus    = "status"
	statusOK         = "ok"
	requestBodyLimit = "300M"
)

type ServerDependencies struct {
	Config         *config.Config
	AuthService    *service.AuthService
	ProjectService *service.ProjectService
	FileService    *service.FileService
	ShareService   *service.ShareService
	AuthMiddleware *auth.Middleware
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first, so every log line can carry it.
	e.Use(middleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))

	globalRateLimiter := middleware.NewRateLimiter(deps.Config.App.RateLimitRPS, deps.Config.App.RateLimitBurst)
	e.Use(globalRateLimiter.Middleware())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.AuthService)
	projectHandler := handler.NewProjectHandler(deps.ProjectService)
	fileHandler := handler.NewFileHandler(deps.FileService)
	shareHandler := handler.NewShareHandler(deps.ShareService)

	e.POST("/auth/signup", authHandler.Signup, strictRateLimiter.Middleware())
	e.POST("/auth/login", authHandler.Login, strictRateLimiter.Middleware())
	e.GET("/shares/:token", shareHandler.ResolveShareLink, strictRateLimiter.Middleware())
	e.GET("/health", healthCheck)

	api := e.Group("/api")
	api.Use(deps.AuthMiddleware.RequireJWT())

	api.GET("/projects", projectHandler.ListProjects)
	api.POST("/projects", projectHandler.CreateProject)
	api.GET("/projects/:id", projectHandler.GetProject)
	api.PUT("/projects/:id", projectHandler.UpdateProject)
	api.DELETE("/projects/:id", projectHandler.DeleteProject)
	api.POST("/projects/:id/tags", projectHandler.AddTag)
	api.DELETE("/projects/:id/tags/:tag", projectHandler.RemoveTag)
	api.POST("/projects/:id/comments", projectHandler.Comment)
	api.GET("/projects/:id/activities", projectHandler.ListActivities)

	api.POST("/projects/:id/files", fileHandler.Upload)
	api.GET("/projects/:id/files", fileHandler.ListFiles)
	api.GET("/files/:id", fileHandler.GetFile)
	api.GET("/files/:id/download", fileHandler.Download)
	api.PATCH("/files/:id", fileHandler.UpdateFile)
	api.DELETE("/files/:id", fileHandler.DeleteFile)
	api.POST("/files/:id/move", fileHandler.MoveFile)

	api.GET("/files/:id/permissions", shareHandler.GetPermissions)
	api.PUT("/files/:id/permissions/:user_id", shareHandler.UpdatePermissions)
	api.POST("/files/:id/shares/users", shareHandler.ShareWithUser)
	api.GET("/files/:id/shares/users", shareHandler.ListUserShares)
	api.POST("/files/:id/shares/emails", shareHandler.ShareWithEmail)
	api.GET("/files/:id/shares/emails", shareHandler.ListEmailShares)
	api.POST("/shares/emails/:id/accept", shareHandler.AcceptEmailShare)
	api.POST("/files/:id/links", shareHandler.GenerateLink)
	api.GET("/files/:id/links", shareHandler.ListLinks)
	api.DELETE("/files/:id/links/:link_id", shareHandler.RevokeLink)

	api.PUT("/settings/size-limits", fileHandler.UpdateSizeLimits)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func healthCheck(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyStatus: statusOK,
	})
}
