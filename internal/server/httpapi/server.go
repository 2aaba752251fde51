// Package httpapi exposes the user and order services over HTTP/JSON.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserAPI is the slice of the user service the handlers need.
type UserAPI interface {
	Create(ctx context.Context, email, firstName, lastName string) (*models.User, error)
	Get(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, id uuid.UUID, take, skip int) ([]models.UserChange, error)
}

// OrderAPI is the slice of the order service the handlers need.
type OrderAPI interface {
	Create(ctx context.Context, userID uuid.UUID, status models.OrderStatus, amount float64) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	Update(ctx context.Context, id int64, patch models.OrderPatch) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

type Server struct {
	address string
	users   UserAPI
	orders  OrderAPI
	logger  logging.Logger
}

func NewServer(address string, users UserAPI, orders OrderAPI, logger logging.Logger) *Server {
	return &Server{
		address: address,
		users:   users,
		orders:  orders,
		logger:  logger.With("module", "http_server"),
	}
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")

	users := api.Group("/users")
	users.GET("", s.listUsers)
	users.POST("", s.createUser)
	users.GET("/:id", s.getUser)
	users.PUT("/:id", s.updateUser)
	users.DELETE("/:id", s.deleteUser)
	users.GET("/:id/history", s.userHistory)

	orders := api.Group("/orders")
	orders.GET("", s.listOrders)
	orders.POST("", s.createOrder)
	// the id here is a *user* id: the endpoint lists that user's orders
	orders.GET("/:id", s.ordersByUser)
	orders.PUT("/:id", s.updateOrder)
	orders.DELETE("/:id", s.deleteOrder)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
