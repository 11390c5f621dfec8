package router

import (
	"github.com/dev-singh-05/gymers/internal/auth"
	"github.com/dev-singh-05/gymers/internal/cart"
	"github.com/dev-singh-05/gymers/internal/chat"
	"github.com/dev-singh-05/gymers/internal/config"
	"github.com/dev-singh-05/gymers/internal/handler"
	"github.com/dev-singh-05/gymers/internal/metrics"
	"github.com/dev-singh-05/gymers/internal/middleware"
	"github.com/dev-singh-05/gymers/internal/store"
	"github.com/dev-singh-05/gymers/internal/upload"

	"github.com/gin-gonic/gin"
)

// Deps carries the wired services the routes need.
type Deps struct {
	Auth     *auth.Service
	Chat     *chat.Service
	Cart     *cart.Cart
	Profiles *store.ProfileStore
	Programs *store.ProgramStore
	Todos    *store.TodoStore
	Members  *store.MemberStore
	Uploads  *upload.Client
	Metrics  *metrics.Collector
}

// Setup configures the gin engine and all routes.
func Setup(cfg *config.Config, d Deps) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(d.Auth, d.Metrics)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.Auth(d.Auth))

	protected.POST("/auth/logout", authHandler.Logout)

	profileHandler := handler.NewProfileHandler(d.Profiles)
	protected.GET("/me", profileHandler.Me)
	protected.GET("/profile", profileHandler.Me)
	protected.PUT("/profile", profileHandler.Update)

	programHandler := handler.NewProgramHandler(d.Programs, d.Cart)
	protected.GET("/programs", programHandler.List)
	protected.POST("/programs", programHandler.Join)
	protected.DELETE("/programs/:id", programHandler.Leave)
	protected.GET("/programs/:id/joined", programHandler.Joined)
	protected.GET("/cart", programHandler.CartView)

	todoHandler := handler.NewTodoHandler(d.Todos)
	protected.GET("/todos", todoHandler.List)
	protected.POST("/todos", todoHandler.Add)
	protected.PUT("/todos/:id", todoHandler.Toggle)
	protected.DELETE("/todos/:id", todoHandler.Delete)

	groupHandler := handler.NewGroupHandler(d.Members, d.Profiles)
	protected.GET("/grp/members", groupHandler.List)
	protected.POST("/grp/members", groupHandler.Join)
	protected.GET("/grp/members/me", groupHandler.IsMember)

	chatHandler := handler.NewChatHandler(d.Chat, d.Members, d.Profiles, d.Metrics)
	protected.GET("/grp/messages", chatHandler.History)
	// websocket clients pass the token as ?token=
	protected.GET("/grp/ws", chatHandler.Socket)

	uploadHandler := handler.NewUploadHandler(d.Uploads, d.Profiles, d.Metrics)
	protected.POST("/uploads/avatar", uploadHandler.Avatar)

	exportHandler := handler.NewExportHandler(d.Programs)
	protected.GET("/export/programs.csv", exportHandler.CSV)
	protected.GET("/export/programs.xlsx", exportHandler.XLSX)

	return r
}
