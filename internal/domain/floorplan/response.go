package floorplan

import "time"

// APIResponse represents a wrapper for HTTP responses with error handling.
type APIResponse struct {
	Result       *AnnealingResult `json:"result,omitempty"`
	Error        *PlacementError  `json:"error,omitempty"`
	RequestID    string           `json:"request_id" validate:"required"`
	ResponseTime time.Time        `json:"response_time" validate:"required"`
}

// NewSuccessResponse creates a successful API response
func NewSuccessResponse(requestID string, result *AnnealingResult) *APIResponse {
	return &APIResponse{
		Result:       result,
		Error:        nil,
		RequestID:    requestID,
		ResponseTime: time.Now(),
	}
}

// NewErrorResponse creates an error API response
func NewErrorResponse(requestID string, placementError *PlacementError) *APIResponse {
	return &APIResponse{
		Result:       nil,
		Error:        placementError,
		RequestID:    requestID,
		ResponseTime: time.Now(),
	}
}

// IsSuccess returns true if the response represents a successful operation
func (r *APIResponse) IsSuccess() bool {
	return r.Error == nil && r.Result != nil
}

// IsError returns true if the response represents an error
func (r *APIResponse) IsError() bool {
	return r.Error != nil
}

// Validate ensures the response structure is valid
func (r *APIResponse) Validate() error {
	if r.Result != nil && r.Error != nil {
		return NewPlacementError(ErrorProcessing, "response cannot have both result and error")
	}
	if r.Result == nil && r.Error == nil {
		return NewPlacementError(ErrorProcessing, "response must have either result or error")
	}
	if r.RequestID == "" {
		return NewPlacementError(ErrorProcessing, "response must carry a request ID")
	}
	return nil
}
