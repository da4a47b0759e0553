package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/tasksync/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Board  *apiHandler.BoardHandler
	Task   *apiHandler.TaskHandler
	Users  *apiHandler.UsersHandler
	Health *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/signin", handlers.Auth.SignIn)
	r.POST("/api/v1/auth/signup", handlers.Auth.SignUp)
	r.POST("/api/v1/auth/signout", handlers.Auth.SignOut)

	// Protected routes
	r.GET("/api/v1/board", authMiddleware(handlers.Board.GetBoard))
	r.GET("/api/v1/users", authMiddleware(handlers.Users.ListCandidates))

	r.POST("/api/v1/tasks", authMiddleware(handlers.Task.CreateTask))
	r.PATCH("/api/v1/tasks/{id}", authMiddleware(handlers.Task.PatchTask))
	r.PUT("/api/v1/tasks/{id}/status", authMiddleware(handlers.Task.UpdateStatus))
	r.DELETE("/api/v1/tasks/{id}", authMiddleware(handlers.Task.DeleteTask))

	return r
}
