package ui

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"poemnames/app"
	"poemnames/domain/almanac"
	"poemnames/domain/naming"
	"poemnames/internal"
	"poemnames/internal/container"
	apperrors "poemnames/internal/errors"
)

// Server is the public JSON API.
type Server struct {
	router    *gin.Engine
	container *container.Container
	log       *internal.Logger
}

// NewServer creates the API server and wires its routes.
func NewServer(c *container.Container, log *internal.Logger) *Server {
	gin.SetMode(c.Config.Server.GinMode)
	s := &Server{
		router:    gin.Default(),
		container: c,
		log:       log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")

	api.POST("/names/generate", s.handleGenerate)
	api.GET("/names/trending", s.handleTrending)
	api.POST("/names/explain", s.handleExplain)

	api.POST("/analysis/elements", s.handleElements)
	api.POST("/analysis/phonology", s.handlePhonology)
	api.POST("/analysis/context", s.handleContext)

	api.GET("/users/:id/favorites", s.handleListFavorites)
	api.POST("/users/:id/favorites", s.handleAddFavorite)
	api.DELETE("/users/:id/favorites/:name", s.handleRemoveFavorite)
}

// Run starts the server on the configured port.
func (s *Server) Run() error {
	return s.router.Run(":" + s.container.Config.Server.Port)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

type generateRequest struct {
	Surname       string             `json:"surname"`
	Gender        string             `json:"gender"`
	Count         int                `json:"count"`
	Length        int                `json:"length"`
	Preferences   naming.Preferences `json:"preferences"`
	Seed          int64              `json:"seed"`
	UserID        string             `json:"user_id"`
	Collaborative bool               `json:"collaborative"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Count == 0 {
		req.Count = 5
	}
	if req.Length == 0 {
		req.Length = 2
	}
	if req.Seed == 0 {
		req.Seed = time.Now().UnixNano()
	}

	params := app.GenerateParams{
		Surname:       req.Surname,
		Gender:        req.Gender,
		Count:         req.Count,
		Length:        req.Length,
		Preferences:   req.Preferences,
		Seed:          req.Seed,
		Collaborative: req.Collaborative,
	}
	if req.UserID != "" {
		id, err := uuid.Parse(req.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
			return
		}
		params.UserID = id
	}

	candidates, err := s.container.NameService().Generate(c.Request.Context(), params)
	if err != nil {
		if isParamError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.log.Error("generation failed: %v", err)
		// AppError messages are written for humans; anything else stays
		// behind a generic reply.
		msg := "generation failed"
		if apperrors.IsAppError(err) {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"candidates": candidates, "count": len(candidates)})
}

func isParamError(err error) bool {
	return errors.Is(err, naming.ErrInvalidLength) ||
		errors.Is(err, naming.ErrUnknownGender) ||
		errors.Is(err, naming.ErrInvalidCount)
}

func (s *Server) handleTrending(c *gin.Context) {
	rows, err := s.container.TrendingService().Trending(c.Request.Context(), 0, 0)
	if err != nil {
		s.log.Error("trending lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "trending unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"names": rows})
}

type analysisRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Surname  string `json:"surname"`
}

func (s *Server) handleElements(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}
	c.JSON(http.StatusOK, s.container.AnalysisService().Elements(req.FullName, req.Surname))
}

func (s *Server) handlePhonology(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}
	c.JSON(http.StatusOK, s.container.AnalysisService().Phonology(req.FullName, req.Surname))
}

type contextRequest struct {
	Zodiac string `json:"zodiac"`
	Period string `json:"period"`
	Month  int    `json:"month"`
	Lunar  bool   `json:"lunar"`
}

func (s *Server) handleContext(c *gin.Context) {
	var req contextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	result := s.container.AnalysisService().Context(almanac.Input{
		Zodiac: req.Zodiac,
		Period: req.Period,
		Month:  req.Month,
		Lunar:  req.Lunar,
	})
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleListFavorites(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	favs, err := s.container.NameService().Favorites(c.Request.Context(), userID)
	if err != nil {
		s.log.Error("favorites lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "favorites unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favs})
}

func (s *Server) handleAddFavorite(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	var candidate naming.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid candidate body"})
		return
	}
	if candidate.Surname == "" || len(candidate.Chars) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "surname and chars are required"})
		return
	}
	if candidate.GivenName == "" {
		for _, ch := range candidate.Chars {
			candidate.GivenName += ch
		}
	}
	if err := s.container.NameService().AddFavorite(c.Request.Context(), userID, candidate); err != nil {
		s.log.Error("add favorite failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save favorite"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"full_name": candidate.FullName()})
}

func (s *Server) handleRemoveFavorite(c *gin.Context) {
	userID, ok := s.userID(c)
	if !ok {
		return
	}
	fullName := c.Param("name")
	if err := s.container.NameService().RemoveFavorite(c.Request.Context(), userID, fullName); err != nil {
		s.log.Error("remove favorite failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove favorite"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return uuid.Nil, false
	}
	return id, true
}
