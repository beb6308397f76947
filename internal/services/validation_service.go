package services

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/infrastructure/validation"
	"github.com/floorplan-project/placement-api/internal/ports"
)

// validationService implements the ValidationService interface on top of
// the shared validator wrapper.
type validationService struct {
	validate *validator.Validate
	metrics  ports.MetricsCollector
}

// NewValidationService creates a new validation service.
func NewValidationService(metrics ports.MetricsCollector) ports.ValidationService {
	return &validationService{
		validate: validation.New().Engine(),
		metrics:  metrics,
	}
}

// ValidatePlacementRequest validates a full optimization request.
func (vs *validationService) ValidatePlacementRequest(request *floorplan.PlacementRequest) error {
	if request == nil {
		return fmt.Errorf("request cannot be nil")
	}

	if err := vs.validate.Struct(request); err != nil {
		vs.countError()
		return fmt.Errorf("request validation failed: %w", err)
	}

	// Model construction invariants go beyond struct tags (uniqueness,
	// cross-field rules).
	if err := request.Validate(); err != nil {
		vs.countError()
		return err
	}
	return nil
}

// ValidateCostRequest validates a cost evaluation request.
func (vs *validationService) ValidateCostRequest(request *floorplan.CostRequest) error {
	if request == nil {
		return fmt.Errorf("request cannot be nil")
	}

	if err := vs.validate.Struct(request); err != nil {
		vs.countError()
		return fmt.Errorf("request validation failed: %w", err)
	}
	if err := request.Validate(); err != nil {
		vs.countError()
		return err
	}
	return nil
}

// ValidateAnnealingConfig validates an annealing configuration.
func (vs *validationService) ValidateAnnealingConfig(config *floorplan.AnnealingConfig) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if err := vs.validate.Struct(config); err != nil {
		vs.countError()
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	if err := config.Validate(); err != nil {
		vs.countError()
		return err
	}
	return nil
}

func (vs *validationService) countError() {
	if vs.metrics != nil {
		vs.metrics.IncrementErrorCount()
	}
}
