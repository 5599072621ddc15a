package server

import "house-price-predictor/models"

// ErrorBody is the error payload of every failed request.
type ErrorBody struct {
	Kind    string              `json:"kind"`
	Message string              `json:"message"`
	Fields  []models.FieldError `json:"fields,omitempty"`
}

// PredictResponse is returned by POST /api/predict.
type PredictResponse struct {
	RequestID       string              `json:"request_id"`
	Price           *float64            `json:"price,omitempty"`
	LogPrice        *float64            `json:"log_price,omitempty"`
	ArtifactVersion string              `json:"artifact_version,omitempty"`
	Diagnostics     *models.Diagnostics `json:"diagnostics,omitempty"`
	Error           *ErrorBody          `json:"error,omitempty"`
}

// BatchRequest is the body of POST /api/predict/batch.
type BatchRequest struct {
	Inputs []models.RawInput `json:"inputs"`
}

// BatchItem is one outcome in a batch response.
type BatchItem struct {
	Index    int        `json:"index"`
	Price    *float64   `json:"price,omitempty"`
	LogPrice *float64   `json:"log_price,omitempty"`
	Error    *ErrorBody `json:"error,omitempty"`
}

// BatchResponse is returned by POST /api/predict/batch.
type BatchResponse struct {
	RequestID       string      `json:"request_id"`
	ArtifactVersion string      `json:"artifact_version"`
	Items           []BatchItem `json:"items"`
}
