package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"

	"poemnames/internal/recommender"
)

type explainRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	GivenName string `json:"given_name"`
	Gender    string `json:"gender"`
	Meaning   string `json:"meaning"`
	Origin    string `json:"origin"`
	Format    string `json:"format"` // "html" renders markdown, default raw text
}

func (s *Server) handleExplain(c *gin.Context) {
	var req explainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name is required"})
		return
	}

	card := recommender.NameCard{
		FullName:  req.FullName,
		GivenName: req.GivenName,
		Gender:    req.Gender,
		Meaning:   req.Meaning,
		Origin:    req.Origin,
	}
	text, err := s.container.NameService().Explain(c.Request.Context(), card)
	if err != nil {
		s.log.Error("explanation failed for %s: %v", req.FullName, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "explanation unavailable"})
		return
	}

	resp := gin.H{"full_name": req.FullName, "explanation": text}
	if req.Format == "html" {
		resp["html"] = string(markdown.ToHTML([]byte(text), nil, nil))
	}
	c.JSON(http.StatusOK, resp)
}
