package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/usersvc/internal/common"
	"github.com/dmitrijs2005/usersvc/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// writeError maps service errors onto the response contract. Only a
// ConflictError ever yields 409; every other store failure stays a
// generic 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var ce *common.ConflictError
	switch {
	case errors.As(err, &ce):
		c.JSON(http.StatusConflict, gin.H{
			"message": "user with this email already exists",
			"field":   ce.Field,
			"value":   ce.Value,
		})
	case errors.Is(err, common.ErrorNotFound):
		c.Status(http.StatusNotFound)
	case errors.Is(err, common.ErrorInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"error": "status must be a value from 1 to 6"})
	default:
		s.logger.Error(c.Request.Context(), err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// userID parses the :id route param. A malformed id behaves like a
// route miss, matching a guid-constrained route.
func userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusNotFound)
		return uuid.Nil, false
	}
	return id, true
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// --- users ---

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.GetAll(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) getUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	user, err := s.users.Get(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.users.Create(c.Request.Context(), req.Email, req.FirstName, req.LastName)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.UserPatch{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if _, err := s.users.Update(c.Request.Context(), id, patch); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := s.users.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) userHistory(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	// out-of-range values are clamped by the service
	take, _ := strconv.Atoi(c.DefaultQuery("take", "50"))
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))

	history, err := s.users.History(c.Request.Context(), id, take, skip)
	if err != nil {
		s.writeError(c, err)
		return
	}

	result := make([]userChangeResponse, 0, len(history))
	for i := range history {
		dto, err := toChangeResponse(&history[i])
		if err != nil {
			s.writeError(c, err)
			return
		}
		result = append(result, *dto)
	}
	c.JSON(http.StatusOK, result)
}

// --- orders ---

func (s *Server) listOrders(c *gin.Context) {
	orders, err := s.orders.GetAll(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) ordersByUser(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	orders, err := s.orders.GetByUser(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := s.orders.Create(c.Request.Context(), req.UserID, models.OrderStatus(req.Status), *req.Amount)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (s *Server) updateOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := models.OrderPatch{Amount: req.Amount}
	if req.Status != nil {
		status := models.OrderStatus(*req.Status)
		patch.Status = &status
	}

	if _, err := s.orders.Update(c.Request.Context(), id, patch); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) deleteOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := s.orders.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
