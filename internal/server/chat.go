package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventoryManagement/internal/auth"
	"inventoryManagement/internal/chat"
)

type chatRequest struct {
	Message string `json:"message" binding:"required"`
}

// chatMessage feeds one line into the caller's conversation. The session
// mutex serializes turns so a session only ever advances one step at a time.
func (s *Server) chatMessage(c *gin.Context) {
	p := auth.PrincipalFrom(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[p.Username]
	if !ok {
		sess = &chat.Session{}
		s.sessions[p.Username] = sess
	}
	reply := s.chat.Handle(c.Request.Context(), sess, req.Message)
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
