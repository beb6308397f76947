package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/floorplan-project/placement-api/internal/adapters"
	"github.com/floorplan-project/placement-api/internal/adapters/csvio"
	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/ports"
)

// PlacementHandler handles HTTP requests for floorplan optimization
// operations.
type PlacementHandler struct {
	placementService  ports.PlacementService
	validationService ports.ValidationService
	registry          *adapters.Registry
}

// NewPlacementHandler creates a new placement HTTP handler.
func NewPlacementHandler(
	placementService ports.PlacementService,
	validationService ports.ValidationService,
	registry *adapters.Registry,
) *PlacementHandler {
	if registry == nil {
		registry = adapters.NewDefaultRegistry()
	}
	return &PlacementHandler{
		placementService:  placementService,
		validationService: validationService,
		registry:          registry,
	}
}

// RunPlacement handles POST /api/v1/floorplan/place requests.
func (h *PlacementHandler) RunPlacement(c *gin.Context) {
	request, ok := h.bindPlacementRequest(c)
	if !ok {
		return
	}

	result, err := h.placementService.RunPlacement(c.Request.Context(), request)
	if err != nil {
		c.JSON(http.StatusBadRequest, floorplan.NewErrorResponse(request.RequestID,
			floorplan.AsPlacementError(err)))
		return
	}
	h.writeResult(c, request.RequestID, result)
}

// RunBaseline handles POST /api/v1/floorplan/baseline requests.
func (h *PlacementHandler) RunBaseline(c *gin.Context) {
	request, ok := h.bindPlacementRequest(c)
	if !ok {
		return
	}

	result, err := h.placementService.RunBaseline(c.Request.Context(), request)
	if err != nil {
		c.JSON(http.StatusBadRequest, floorplan.NewErrorResponse(request.RequestID,
			floorplan.AsPlacementError(err)))
		return
	}
	h.writeResult(c, request.RequestID, result)
}

// EvaluateCost handles POST /api/v1/floorplan/cost requests.
func (h *PlacementHandler) EvaluateCost(c *gin.Context) {
	var request floorplan.CostRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return
	}

	if err := h.validationService.ValidateCostRequest(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Request validation failed",
			"details": err.Error(),
		})
		return
	}

	breakdown, err := h.placementService.EvaluateCost(c.Request.Context(), &request)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Cost evaluation failed",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// GetConfig handles GET /api/v1/floorplan/config requests.
func (h *PlacementHandler) GetConfig(c *gin.Context) {
	config, err := h.placementService.GetConfiguration(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get configuration",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, config)
}

// UpdateConfig handles PUT /api/v1/floorplan/config requests.
func (h *PlacementHandler) UpdateConfig(c *gin.Context) {
	config, ok := h.decodeConfig(c)
	if !ok {
		return
	}

	if err := h.placementService.UpdateConfiguration(c.Request.Context(), config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Configuration update failed",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// ValidateConfig handles POST /api/v1/floorplan/config/validate requests.
func (h *PlacementHandler) ValidateConfig(c *gin.Context) {
	config, ok := h.decodeConfig(c)
	if !ok {
		return
	}

	if err := h.validationService.ValidateAnnealingConfig(config); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

// GetMetrics handles GET /api/v1/floorplan/metrics requests.
func (h *PlacementHandler) GetMetrics(c *gin.Context) {
	metrics, err := h.placementService.GetMetrics(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get metrics",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, metrics)
}

// ResetMetrics handles POST /api/v1/floorplan/metrics/reset requests.
func (h *PlacementHandler) ResetMetrics(c *gin.Context) {
	if err := h.placementService.ResetMetrics(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to reset metrics",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// GetStatus handles GET /api/v1/floorplan/status requests.
func (h *PlacementHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.placementService.GetInstanceInfo(c.Request.Context()))
}

// GetHealth handles GET /api/v1/floorplan/health requests.
func (h *PlacementHandler) GetHealth(c *gin.Context) {
	if err := h.placementService.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"healthy": false,
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"healthy": true})
}

// ImportDesign handles POST /api/v1/floorplan/import requests: uploaded
// block and net tables are canonicalized into the JSON shapes the other
// endpoints accept.
func (h *PlacementHandler) ImportDesign(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	adapter, err := h.registry.Create(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Unsupported input format",
			"details": err.Error(),
		})
		return
	}

	blocksFile, err := c.FormFile("blocks")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Missing blocks file",
			"details": err.Error(),
		})
		return
	}
	blocksReader, err := blocksFile.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Cannot read blocks file",
			"details": err.Error(),
		})
		return
	}
	defer blocksReader.Close()

	var blocks []floorplan.Block
	if format == "csv" {
		// CSV uploads may be role tables from design entry tools; those
		// are compiled to canonical blocks before loading.
		data, err := io.ReadAll(blocksReader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Cannot read blocks file",
				"details": err.Error(),
			})
			return
		}
		blocks, err = csvio.LoadOrCompileBlocks(data)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Blocks parsing failed",
				"details": err.Error(),
			})
			return
		}
	} else {
		blocks, err = adapter.ParseBlocks(blocksReader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Blocks parsing failed",
				"details": err.Error(),
			})
			return
		}
	}

	var nets []floorplan.Net
	if netsFile, err := c.FormFile("nets"); err == nil {
		netsReader, err := netsFile.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Cannot read nets file",
				"details": err.Error(),
			})
			return
		}
		defer netsReader.Close()

		nets, err = adapter.ParseNets(netsReader)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Nets parsing failed",
				"details": err.Error(),
			})
			return
		}
	}

	response := gin.H{
		"blocks": blocks,
		"nets":   nets,
		"metadata": floorplan.DesignMetadata{
			Source:     format,
			BlockCount: len(blocks),
			NetCount:   len(nets),
		},
	}

	if widthStr := c.PostForm("die_width"); widthStr != "" {
		width, werr := strconv.ParseFloat(widthStr, 64)
		height, herr := strconv.ParseFloat(c.PostForm("die_height"), 64)
		if werr != nil || herr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid die dimensions"})
			return
		}
		die, err := csvio.DieFromParams(width, height)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Invalid die dimensions",
				"details": err.Error(),
			})
			return
		}
		response["die"] = die
	}

	c.JSON(http.StatusOK, response)
}

// bindPlacementRequest decodes and validates the shared request body of the
// place and baseline endpoints. The decoder rejects unknown fields so that
// misspelled configuration keys fail loudly instead of silently falling
// back to defaults.
func (h *PlacementHandler) bindPlacementRequest(c *gin.Context) (*floorplan.PlacementRequest, bool) {
	var request floorplan.PlacementRequest

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request format",
			"details": err.Error(),
		})
		return nil, false
	}

	if request.RequestID == "" {
		request.RequestID = uuid.NewString()
	}

	if err := h.validationService.ValidatePlacementRequest(&request); err != nil {
		c.JSON(http.StatusBadRequest, floorplan.NewErrorResponse(request.RequestID,
			floorplan.AsPlacementError(err)))
		return nil, false
	}
	return &request, true
}

// writeResult maps a service result to the HTTP response, distinguishing
// the infeasible-die signal from success.
func (h *PlacementHandler) writeResult(c *gin.Context, requestID string, result *floorplan.AnnealingResult) {
	if result.Status == floorplan.StatusInfeasible {
		c.JSON(http.StatusUnprocessableEntity, floorplan.NewErrorResponse(requestID,
			floorplan.NewInfeasibleError("blocks do not fit on the die; try a larger die")))
		return
	}
	c.JSON(http.StatusOK, floorplan.NewSuccessResponse(requestID, result))
}

// decodeConfig decodes an annealing configuration, rejecting unknown fields.
func (h *PlacementHandler) decodeConfig(c *gin.Context) (*floorplan.AnnealingConfig, bool) {
	var config floorplan.AnnealingConfig

	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid configuration format",
			"details": fmt.Sprintf("unknown or malformed field: %v", err),
		})
		return nil, false
	}
	return &config, true
}
