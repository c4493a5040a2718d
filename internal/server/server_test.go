package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	activitydomain "github.com/orgcatalog/catalog/internal/activity/domain"
	activityrepository "github.com/orgcatalog/catalog/internal/activity/repository"
	activityservice "github.com/orgcatalog/catalog/internal/activity/service"
	buildingdomain "github.com/orgcatalog/catalog/internal/building/domain"
	buildingrepository "github.com/orgcatalog/catalog/internal/building/repository"
	buildingservice "github.com/orgcatalog/catalog/internal/building/service"
	"github.com/orgcatalog/catalog/internal/config"
	organizationdomain "github.com/orgcatalog/catalog/internal/organization/domain"
	organizationrepository "github.com/orgcatalog/catalog/internal/organization/repository"
	organizationservice "github.com/orgcatalog/catalog/internal/organization/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testAPIKey = "test-api-key-123"

type testEnv struct {
	server *Server
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&activitydomain.Activity{},
		&buildingdomain.Building{},
		&organizationdomain.Organization{},
		&organizationdomain.PhoneNumber{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	activityRepo := activityrepository.NewRepository(db)
	activitySvc := activityservice.NewService(db, activityRepo, node)
	buildingSvc := buildingservice.NewService(
		db,
		buildingrepository.NewRepository(db),
		buildingrepository.NewLocator(db),
		node,
	)
	organizationSvc := organizationservice.NewService(
		db,
		organizationrepository.NewRepository(db),
		activitySvc,
		activityRepo,
		buildingSvc,
		node,
	)

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(ErrorHandlingMiddleware())
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	s := NewServer(ServerParams{
		Gin:             engine,
		Cfg:             config.Config{AppName: "catalog", APIKey: testAPIKey},
		Logger:          zap.NewNop(),
		ActivitySvc:     activitySvc,
		BuildingSvc:     buildingSvc,
		OrganizationSvc: organizationSvc,
	})
	s.RegisterAPIRoutes()

	return &testEnv{server: s, db: db}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	e.server.Engine().ServeHTTP(w, req)
	return w
}

func (e *testEnv) doAuth(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, method, path, body, map[string]string{HeaderAPIKey: testAPIKey})
}

func decodeJSON[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestAPIKeyEnforcement(t *testing.T) {
	env := newTestEnv(t)

	t.Run("missing header is a request-shape error", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/activities", nil, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("wrong key is unauthorized", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/activities", nil, map[string]string{HeaderAPIKey: "nope"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("correct key passes", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/activities", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("health stays open", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

type idPayload struct {
	ID int64 `json:"id"`
}

func createActivity(t *testing.T, env *testEnv, name string, parentID *int64) int64 {
	t.Helper()
	body := map[string]any{"name": name}
	if parentID != nil {
		body["parent_id"] = *parentID
	}
	w := env.doAuth(t, http.MethodPost, "/api/v1/activities", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON[idPayload](t, w).ID
}

func createBuilding(t *testing.T, env *testEnv, address string, lat, lon float64) int64 {
	t.Helper()
	w := env.doAuth(t, http.MethodPost, "/api/v1/buildings", map[string]any{
		"address":   address,
		"latitude":  lat,
		"longitude": lon,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeJSON[idPayload](t, w).ID
}

func TestCatalogScenario(t *testing.T) {
	env := newTestEnv(t)

	buildingID := createBuilding(t, env, "Moscow, Lenina 1", 55.7558, 37.6173)
	farBuildingID := createBuilding(t, env, "Saint Petersburg, Nevsky 50", 59.9343, 30.3351)

	rootID := createActivity(t, env, "Food", nil)
	childID := createActivity(t, env, "Meat", &rootID)
	grandchildID := createActivity(t, env, "Beef", &childID)

	w := env.doAuth(t, http.MethodPost, "/api/v1/organizations", map[string]any{
		"name":          "Horns and Hooves",
		"building_id":   buildingID,
		"phone_numbers": []map[string]string{{"number": "2-222-222"}},
		"activity_ids":  []int64{grandchildID},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orgID := decodeJSON[idPayload](t, w).ID

	t.Run("found via the root of its activity subtree", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, fmt.Sprintf("/api/v1/organizations?activity_id=%d", rootID), nil)
		require.Equal(t, http.StatusOK, w.Code)
		views := decodeJSON[[]idPayload](t, w)
		require.Len(t, views, 1)
		assert.Equal(t, orgID, views[0].ID)
	})

	t.Run("found via circle area search", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/organizations?in_area=circle:55.7558,37.6173,1000", nil)
		require.Equal(t, http.StatusOK, w.Code)
		views := decodeJSON[[]idPayload](t, w)
		require.Len(t, views, 1)
		assert.Equal(t, orgID, views[0].ID)
	})

	t.Run("found via name search", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/organizations?name=horns", nil)
		require.Equal(t, http.StatusOK, w.Code)
		views := decodeJSON[[]idPayload](t, w)
		require.Len(t, views, 1)
		assert.Equal(t, orgID, views[0].ID)
	})

	t.Run("nearby circle returns the building with distance", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/buildings/nearby?lat=55.7558&lon=37.6173&radius=1000", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var matches []struct {
			ID       int64    `json:"id"`
			Distance *float64 `json:"distance"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
		require.Len(t, matches, 1)
		assert.Equal(t, buildingID, matches[0].ID)
		require.NotNil(t, matches[0].Distance)
		assert.InDelta(t, 0, *matches[0].Distance, 1e-9)
	})

	t.Run("nearby rectangle has no distance", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/buildings/nearby?min_lat=59&max_lat=60&min_lon=30&max_lon=31", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var matches []struct {
			ID       int64    `json:"id"`
			Distance *float64 `json:"distance"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
		require.Len(t, matches, 1)
		assert.Equal(t, farBuildingID, matches[0].ID)
		assert.Nil(t, matches[0].Distance)
	})

	t.Run("building detail lists its organizations", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, fmt.Sprintf("/api/v1/buildings/%d", buildingID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var detail struct {
			ID            int64       `json:"id"`
			Organizations []idPayload `json:"organizations"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		assert.Equal(t, buildingID, detail.ID)
		require.Len(t, detail.Organizations, 1)
		assert.Equal(t, orgID, detail.Organizations[0].ID)
	})

	t.Run("activity in the middle of the tree shows parent and children", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, fmt.Sprintf("/api/v1/activities/%d", childID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var detail struct {
			ID       int64       `json:"id"`
			ParentID *int64      `json:"parent_id"`
			Children []idPayload `json:"children"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
		require.NotNil(t, detail.ParentID)
		assert.Equal(t, rootID, *detail.ParentID)
		require.Len(t, detail.Children, 1)
		assert.Equal(t, grandchildID, detail.Children[0].ID)
	})

	t.Run("deleting the root is blocked by its children", func(t *testing.T) {
		w := env.doAuth(t, http.MethodDelete, fmt.Sprintf("/api/v1/activities/%d", rootID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deleting a linked leaf is blocked by its organizations", func(t *testing.T) {
		w := env.doAuth(t, http.MethodDelete, fmt.Sprintf("/api/v1/activities/%d", grandchildID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("deleting the organization releases the leaf", func(t *testing.T) {
		w := env.doAuth(t, http.MethodDelete, fmt.Sprintf("/api/v1/organizations/%d", orgID), nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = env.doAuth(t, http.MethodDelete, fmt.Sprintf("/api/v1/activities/%d", grandchildID), nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestValidationResponses(t *testing.T) {
	env := newTestEnv(t)

	t.Run("nearby with incomplete parameters", func(t *testing.T) {
		for _, query := range []string{
			"lat=55.7558&lon=37.6173",
			"lat=55.7558&radius=1000",
			"min_lat=55&max_lat=56&min_lon=37",
			"",
		} {
			w := env.doAuth(t, http.MethodGet, "/api/v1/buildings/nearby?"+query, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, "query %q", query)
		}
	})

	t.Run("nearby with non-numeric parameter", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/buildings/nearby?lat=abc&lon=37.6173&radius=1000", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed in_area", func(t *testing.T) {
		for _, area := range []string{"circle:1,2", "sphere:1,2,3", "rect:a,b,c,d"} {
			w := env.doAuth(t, http.MethodGet, "/api/v1/organizations?in_area="+area, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, "in_area %q", area)
		}
	})

	t.Run("non-integer activity_id", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/organizations?activity_id=abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("tree depth out of range", func(t *testing.T) {
		for _, depth := range []string{"0", "4", "abc"} {
			w := env.doAuth(t, http.MethodGet, "/api/v1/activities?max_depth="+depth, nil)
			assert.Equal(t, http.StatusBadRequest, w.Code, "max_depth %q", depth)
		}
	})

	t.Run("building create requires coordinates", func(t *testing.T) {
		w := env.doAuth(t, http.MethodPost, "/api/v1/buildings", map[string]any{"address": "No coords"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("zero coordinates are accepted", func(t *testing.T) {
		w := env.doAuth(t, http.MethodPost, "/api/v1/buildings", map[string]any{
			"address":   "Null island",
			"latitude":  0,
			"longitude": 0,
		})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("bad path id", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/organizations/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid pagination", func(t *testing.T) {
		w := env.doAuth(t, http.MethodGet, "/api/v1/organizations?limit=5000", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestNotFoundResponses(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/activities/424242",
		"/api/v1/buildings/424242",
		"/api/v1/buildings/424242/organizations",
		"/api/v1/organizations/424242",
	} {
		w := env.doAuth(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "path %s", path)
	}
}

func TestUnknownActivityFilterIsEmptyNotError(t *testing.T) {
	env := newTestEnv(t)

	w := env.doAuth(t, http.MethodGet, "/api/v1/organizations?activity_id=424242", nil)
	require.Equal(t, http.StatusOK, w.Code)
	views := decodeJSON[[]idPayload](t, w)
	assert.Empty(t, views)
}

func TestOrganizationCreatePreconditions(t *testing.T) {
	env := newTestEnv(t)

	t.Run("unknown building", func(t *testing.T) {
		w := env.doAuth(t, http.MethodPost, "/api/v1/organizations", map[string]any{
			"name":        "Orphan",
			"building_id": 424242,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown activity ids are dropped, not fatal", func(t *testing.T) {
		buildingID := createBuilding(t, env, "Somewhere", 50, 50)
		w := env.doAuth(t, http.MethodPost, "/api/v1/organizations", map[string]any{
			"name":         "Tolerant",
			"building_id":  buildingID,
			"activity_ids": []int64{424242},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var view struct {
			Activities []idPayload `json:"activities"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Empty(t, view.Activities)
	})
}

func TestSearchPrecedence(t *testing.T) {
	env := newTestEnv(t)

	buildingID := createBuilding(t, env, "Moscow", 55.7558, 37.6173)
	activityID := createActivity(t, env, "Services", nil)

	w := env.doAuth(t, http.MethodPost, "/api/v1/organizations", map[string]any{
		"name":         "Tagged",
		"building_id":  buildingID,
		"activity_ids": []int64{activityID},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.doAuth(t, http.MethodPost, "/api/v1/organizations", map[string]any{
		"name":        "Named Only",
		"building_id": buildingID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// activity_id shadows name; a malformed in_area string alongside a
	// higher-precedence filter is never even parsed.
	url := fmt.Sprintf("/api/v1/organizations?activity_id=%d&name=named&in_area=garbage", activityID)
	w = env.doAuth(t, http.MethodGet, url, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var views []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "Tagged", views[0].Name)
}
