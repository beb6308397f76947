package contract

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorplan-project/placement-api/internal/handlers"
	"github.com/floorplan-project/placement-api/internal/services"
)

// newFloorplanRouter wires a real placement service behind the floorplan
// route group, mirroring the production router.
func newFloorplanRouter(t *testing.T) *gin.Engine {
	t.Helper()

	placementService, err := services.NewPlacementService(nil)
	require.NoError(t, err, "expected placement service creation to succeed")
	validationService := services.NewValidationService(nil)

	handler := handlers.NewPlacementHandler(placementService, validationService, nil)

	gin.SetMode(gin.TestMode)
	router := gin.New()

	v1 := router.Group("/api/v1")
	group := v1.Group("/floorplan")
	group.POST("/place", handler.RunPlacement)
	group.POST("/baseline", handler.RunBaseline)
	group.POST("/cost", handler.EvaluateCost)
	group.GET("/config", handler.GetConfig)
	group.PUT("/config", handler.UpdateConfig)
	group.POST("/config/validate", handler.ValidateConfig)
	group.GET("/status", handler.GetStatus)
	group.GET("/health", handler.GetHealth)

	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func placeBody(seed int64) map[string]interface{} {
	return map[string]interface{}{
		"blocks": []map[string]interface{}{
			{"id": "a", "width": 10, "height": 10, "power": 0, "heat": 0},
			{"id": "b", "width": 10, "height": 10, "power": 0, "heat": 0},
		},
		"nets": []map[string]interface{}{
			{"name": "n", "blocks": []string{"a", "b"}, "weight": 1},
		},
		"die": map[string]interface{}{"width": 100, "height": 100},
		"config": map[string]interface{}{
			"initial_temp":    1000.0,
			"final_temp":      1.0,
			"cooling_rate":    0.95,
			"chain_length":    20,
			"move_scale":      20.0,
			"placement_pitch": 1.0,
			"random_seed":     seed,
			"max_history":     8000,
		},
	}
}

func TestPlacementPostBasic(t *testing.T) {
	router := newFloorplanRouter(t)

	w := postJSON(t, router, "/api/v1/floorplan/place", placeBody(42))
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var response struct {
		Result struct {
			Placement    map[string]struct{ X, Y float64 } `json:"placement"`
			BestCost     float64                           `json:"best_cost"`
			BaselineCost float64                           `json:"baseline_cost"`
			CostHistory  []float64                         `json:"cost_history"`
			Status       string                            `json:"status"`
		} `json:"result"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.NotEmpty(t, response.RequestID)
	assert.Equal(t, "SUCCESS", response.Result.Status)
	assert.Len(t, response.Result.Placement, 2)
	assert.NotEmpty(t, response.Result.CostHistory)
	assert.LessOrEqual(t, response.Result.BestCost, response.Result.BaselineCost)
}

func TestPlacementPostInfeasibleDie(t *testing.T) {
	router := newFloorplanRouter(t)

	body := map[string]interface{}{
		"blocks": []map[string]interface{}{
			{"id": "a", "width": 60, "height": 60},
			{"id": "b", "width": 60, "height": 60},
			{"id": "c", "width": 60, "height": 60},
		},
		"die": map[string]interface{}{"width": 100, "height": 100},
	}

	w := postJSON(t, router, "/api/v1/floorplan/place", body)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var response struct {
		Error struct {
			ErrorType string `json:"error_type"`
			Message   string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "infeasible_placement", response.Error.ErrorType)
	assert.NotEmpty(t, response.Error.Message)
}

func TestPlacementPostRejectsInvalidInput(t *testing.T) {
	router := newFloorplanRouter(t)

	t.Run("malformed_json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/floorplan/place",
			bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown_config_field", func(t *testing.T) {
		body := placeBody(42)
		body["config"].(map[string]interface{})["reheat_factor"] = 2.0

		w := postJSON(t, router, "/api/v1/floorplan/place", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative_block_width", func(t *testing.T) {
		body := map[string]interface{}{
			"blocks": []map[string]interface{}{
				{"id": "a", "width": -10, "height": 10},
			},
			"die": map[string]interface{}{"width": 100, "height": 100},
		}

		w := postJSON(t, router, "/api/v1/floorplan/place", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("empty_block_set", func(t *testing.T) {
		body := map[string]interface{}{
			"blocks": []map[string]interface{}{},
			"die":    map[string]interface{}{"width": 100, "height": 100},
		}

		w := postJSON(t, router, "/api/v1/floorplan/place", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBaselinePost(t *testing.T) {
	router := newFloorplanRouter(t)

	body := placeBody(42)
	delete(body, "config")

	w := postJSON(t, router, "/api/v1/floorplan/baseline", body)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var response struct {
		Result struct {
			Placement map[string]struct{ X, Y float64 } `json:"placement"`
			Breakdown struct {
				Overlap  float64 `json:"overlap"`
				Boundary float64 `json:"boundary"`
				Total    float64 `json:"total"`
			} `json:"breakdown"`
			Status string `json:"status"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "SUCCESS", response.Result.Status)
	assert.Len(t, response.Result.Placement, 2)
	assert.Zero(t, response.Result.Breakdown.Overlap)
	assert.Zero(t, response.Result.Breakdown.Boundary)
}

func TestCostPost(t *testing.T) {
	router := newFloorplanRouter(t)

	body := map[string]interface{}{
		"blocks": []map[string]interface{}{
			{"id": "a", "width": 10, "height": 10},
			{"id": "b", "width": 10, "height": 10},
		},
		"nets": []map[string]interface{}{
			{"name": "n", "blocks": []string{"a", "b"}, "weight": 2},
		},
		"die": map[string]interface{}{"width": 100, "height": 100},
		"placement": map[string]interface{}{
			"a": map[string]float64{"x": 0, "y": 0},
			"b": map[string]float64{"x": 30, "y": 40},
		},
	}

	w := postJSON(t, router, "/api/v1/floorplan/cost", body)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	var breakdown struct {
		Wirelength float64 `json:"wirelength"`
		Total      float64 `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &breakdown))

	// centers 30 and 40 apart, weight 2.
	assert.InDelta(t, 140.0, breakdown.Wirelength, 1e-9)
	assert.InDelta(t, breakdown.Wirelength, breakdown.Total, 1e-9)
}
