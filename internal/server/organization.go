package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	organizationdomain "github.com/orgcatalog/catalog/internal/organization/domain"
	"github.com/orgcatalog/catalog/pkg/db/pagination"
)

// SearchOrganizations applies the filter precedence activity > name > area;
// with no filter it falls back to the windowed listing. The in_area string
// is parsed into a structured filter here, at the boundary, and only when
// no higher-precedence filter shadows it.
func (s *Server) SearchOrganizations(c *gin.Context) {
	var query struct {
		pagination.Window
		ActivityID string `form:"activity_id"`
		Name       string `form:"name"`
		InArea     string `form:"in_area"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	activityID, err := parseOptionalInt64(query.ActivityID)
	if err != nil {
		AbortWithError(c, newValidationError("activity_id", "invalid_activity_id", "activity_id must be an integer"))
		return
	}

	req := organizationdomain.SearchRequest{
		ActivityID: activityID,
		Name:       strings.TrimSpace(query.Name),
		Window:     query.Window,
	}
	if activityID == nil && req.Name == "" && strings.TrimSpace(query.InArea) != "" {
		area, err := organizationdomain.ParseAreaFilter(strings.TrimSpace(query.InArea))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		req.Area = area
	}

	organizations, err := s.organizationSvc.Search(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, organizations)
}

func (s *Server) GetOrganization(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	organization, err := s.organizationSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, organization)
}

type phoneNumberRequest struct {
	Number string `json:"number"`
}

type createOrganizationRequest struct {
	Name         string               `json:"name"`
	BuildingID   int64                `json:"building_id"`
	PhoneNumbers []phoneNumberRequest `json:"phone_numbers"`
	ActivityIDs  []int64              `json:"activity_ids"`
}

func (s *Server) CreateOrganization(c *gin.Context) {
	var req createOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	organization, err := s.organizationSvc.Create(c.Request.Context(), organizationdomain.CreateRequest{
		Name:         req.Name,
		BuildingID:   req.BuildingID,
		PhoneNumbers: phoneNumbers(req.PhoneNumbers),
		ActivityIDs:  req.ActivityIDs,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, organization)
}

type updateOrganizationRequest struct {
	Name         *string               `json:"name"`
	BuildingID   *int64                `json:"building_id"`
	PhoneNumbers *[]phoneNumberRequest `json:"phone_numbers"`
	ActivityIDs  *[]int64              `json:"activity_ids"`
}

func (s *Server) UpdateOrganization(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	update := organizationdomain.UpdateRequest{
		Name:        req.Name,
		BuildingID:  req.BuildingID,
		ActivityIDs: req.ActivityIDs,
	}
	if req.PhoneNumbers != nil {
		numbers := phoneNumbers(*req.PhoneNumbers)
		update.PhoneNumbers = &numbers
	}

	organization, err := s.organizationSvc.Update(c.Request.Context(), id, update)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, organization)
}

func (s *Server) DeleteOrganization(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.organizationSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func phoneNumbers(reqs []phoneNumberRequest) []string {
	numbers := make([]string, 0, len(reqs))
	for _, req := range reqs {
		numbers = append(numbers, req.Number)
	}
	return numbers
}
