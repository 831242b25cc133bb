// Package server exposes the application over a gin JSON API.
package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"inventoryManagement/internal/auth"
	"inventoryManagement/internal/chat"
	"inventoryManagement/internal/config"
	"inventoryManagement/models"
	"inventoryManagement/repository"
)

type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	products repository.ProductRepositoryI
	users    repository.UserRepositoryI
	chat     *chat.Dispatcher

	// One conversation per authenticated user, kept in memory.
	mu       sync.Mutex
	sessions map[string]*chat.Session
}

// New creates a server instance with all routes registered.
func New(cfg *config.Config, products repository.ProductRepositoryI, users repository.UserRepositoryI) *Server {
	router := gin.Default()

	s := &Server{
		router:   router,
		cfg:      cfg,
		products: products,
		users:    users,
		chat:     chat.NewDispatcher(products),
		sessions: make(map[string]*chat.Session),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.POST("/login", s.login)
	}

	// Both admin and staff.
	authed := api.Group("")
	authed.Use(auth.Middleware(s.cfg.Auth.JWTSecret))
	{
		authed.GET("/products", s.listProducts)
		authed.GET("/products/sold", s.listSoldOut)
		authed.GET("/products/:id", s.getProduct)
		authed.POST("/products", s.createProduct)
		authed.PUT("/products/:id", s.updateProduct)
		authed.POST("/products/:id/photo", s.uploadPhoto)
		authed.POST("/products/:id/sell", s.sellProduct)
		authed.POST("/chat", s.chatMessage)
		authed.POST("/export/csv", s.exportCSV)
		authed.POST("/reports/stock", s.stockReport)
	}

	// Admin only: destructive product operations and account management.
	admin := api.Group("")
	admin.Use(auth.Middleware(s.cfg.Auth.JWTSecret), auth.RequireRole(models.RoleAdmin))
	{
		admin.DELETE("/products/:id", s.deleteProduct)
		admin.GET("/users", s.listUsers)
		admin.POST("/users", s.createUser)
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "inventory"})
}

// Router exposes the gin engine, mainly for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// Start runs the HTTP server on the given address.
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
