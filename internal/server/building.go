package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	buildingdomain "github.com/orgcatalog/catalog/internal/building/domain"
	organizationdomain "github.com/orgcatalog/catalog/internal/organization/domain"
	"github.com/orgcatalog/catalog/pkg/db/pagination"
)

func (s *Server) ListBuildings(c *gin.Context) {
	var window pagination.Window
	if err := c.ShouldBindQuery(&window); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	buildings, err := s.buildingSvc.List(c.Request.Context(), window)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildings)
}

// GetNearbyBuildings picks the circle mode when lat, lon and radius are all
// present, the rectangle mode when all four bounds are present, and rejects
// anything else. Presence is checked, not truthiness, so zero coordinates
// stay valid.
func (s *Server) GetNearbyBuildings(c *gin.Context) {
	lat, err1 := parseOptionalFloat(c.Query("lat"))
	lon, err2 := parseOptionalFloat(c.Query("lon"))
	radius, err3 := parseOptionalFloat(c.Query("radius"))
	minLat, err4 := parseOptionalFloat(c.Query("min_lat"))
	maxLat, err5 := parseOptionalFloat(c.Query("max_lat"))
	minLon, err6 := parseOptionalFloat(c.Query("min_lon"))
	maxLon, err7 := parseOptionalFloat(c.Query("max_lon"))
	for _, err := range []error{err1, err2, err3, err4, err5, err6, err7} {
		if err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	switch {
	case lat != nil && lon != nil && radius != nil:
		matches, err := s.buildingSvc.FindInRadius(c.Request.Context(), *lat, *lon, *radius)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, matches)
	case minLat != nil && maxLat != nil && minLon != nil && maxLon != nil:
		buildings, err := s.buildingSvc.FindInRectangle(c.Request.Context(), *minLat, *maxLat, *minLon, *maxLon)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		matches := make([]buildingdomain.WithDistance, 0, len(buildings))
		for _, building := range buildings {
			matches = append(matches, buildingdomain.WithDistance{Building: building})
		}
		c.JSON(http.StatusOK, matches)
	default:
		AbortWithError(c, newValidationError(
			"query", "incomplete_area",
			"provide (lat, lon, radius) for circle search or (min_lat, max_lat, min_lon, max_lon) for rectangle search",
		))
	}
}

type buildingDetail struct {
	buildingdomain.Building
	Organizations []organizationdomain.View `json:"organizations"`
}

func (s *Server) GetBuilding(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	building, err := s.buildingSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	organizations, err := s.organizationSvc.ListByBuilding(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, buildingDetail{
		Building:      *building,
		Organizations: organizations,
	})
}

func (s *Server) GetBuildingOrganizations(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if _, err := s.buildingSvc.GetByID(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	organizations, err := s.organizationSvc.ListByBuilding(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, organizations)
}

type createBuildingRequest struct {
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (s *Server) CreateBuilding(c *gin.Context) {
	var req createBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		AbortWithError(c, newValidationError("coordinates", "required", "latitude and longitude are required"))
		return
	}

	building, err := s.buildingSvc.Create(c.Request.Context(), buildingdomain.CreateRequest{
		Address:   req.Address,
		Latitude:  *req.Latitude,
		Longitude: *req.Longitude,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, building)
}

type updateBuildingRequest struct {
	Address   *string  `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (s *Server) UpdateBuilding(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateBuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	building, err := s.buildingSvc.Update(c.Request.Context(), id, buildingdomain.UpdateRequest{
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, building)
}
