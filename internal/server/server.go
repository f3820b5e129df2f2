package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/htic/graphrag/internal/config"
	"github.com/htic/graphrag/internal/core"
	"github.com/htic/graphrag/internal/logger"
)

type Server struct {
	Pipeline *core.Pipeline
	Config   *config.Config
}

func New(p *core.Pipeline, cfg *config.Config) *Server {
	return &Server{
		Pipeline: p,
		Config:   cfg,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", s.Health)
	r.POST("/retrieve", s.Retrieve)
	r.POST("/chat", s.Chat)

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

type RetrieveRequest struct {
	Question     string `json:"question"`
	TopKEntities int    `json:"topk_entities"`
}

func (s *Server) Retrieve(c *gin.Context) {
	var req RetrieveRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
		return
	}

	bundles, err := s.Pipeline.Retrieve(c.Request.Context(), req.Question, req.TopKEntities)
	if err != nil {
		logger.Error("retrieval failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"context": bundles})
}

type ChatRequest struct {
	Question       string `json:"question"`
	ConversationID string `json:"conversation_id"`
	// Context carries prior-turn text for follow-up questions; prefixing it
	// onto the question happens here, the core never sees conversation state.
	Context string `json:"context"`
}

type ChatResponse struct {
	Answer         string  `json:"answer"`
	ConversationID string  `json:"conversation_id"`
	EntitiesUsed   int     `json:"entities_used"`
	ProcessingTime float64 `json:"processing_time"`
	Success        bool    `json:"success"`
	Error          string  `json:"error,omitempty"`
}

func (s *Server) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
		return
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.New().String()
	}

	question := req.Question
	if prior := strings.TrimSpace(req.Context); prior != "" {
		question = prior + "\n\n" + question
	}

	start := time.Now()
	result := s.Pipeline.Answer(c.Request.Context(), question, s.Config.Retrieval.TopKEntities)

	c.JSON(http.StatusOK, ChatResponse{
		Answer:         result.Answer,
		ConversationID: conversationID,
		EntitiesUsed:   result.EntitiesUsed,
		ProcessingTime: time.Since(start).Seconds(),
		Success:        result.Success,
		Error:          result.Err,
	})
}
