package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	activitydomain "github.com/orgcatalog/catalog/internal/activity/domain"
)

func (s *Server) GetActivitiesTree(c *gin.Context) {
	maxDepth := activitydomain.MaxTreeDepth
	if raw := strings.TrimSpace(c.Query("max_depth")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			AbortWithError(c, newValidationError("max_depth", "invalid_max_depth", "max_depth must be an integer between 1 and 3"))
			return
		}
		maxDepth = parsed
	}

	forest, err := s.activitySvc.Tree(c.Request.Context(), maxDepth)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, forest)
}

func (s *Server) GetActivity(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	detail, err := s.activitySvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

type createActivityRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

func (s *Server) CreateActivity(c *gin.Context) {
	var req createActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	detail, err := s.activitySvc.Create(c.Request.Context(), activitydomain.CreateRequest{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, detail)
}

type updateActivityRequest struct {
	Name     *string `json:"name"`
	ParentID *int64  `json:"parent_id"`
}

func (s *Server) UpdateActivity(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	detail, err := s.activitySvc.Update(c.Request.Context(), id, activitydomain.UpdateRequest{
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (s *Server) DeleteActivity(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.activitySvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
