package api

// AssessResponse is the payload for a valid POST /api/v1/assess.
type AssessResponse struct {
	Systolic                      int    `json:"systolic"`
	Diastolic                     int    `json:"diastolic"`
	Category                      string `json:"category"`
	CategoryLabel                 string `json:"category_label"`
	HeartRisk                     string `json:"heart_risk"`
	CardiovascularRisk            string `json:"cardiovascular_risk"`
	CardiovascularRiskDescription string `json:"cardiovascular_risk_description"`
	Score                         int    `json:"score"`
}

// FieldErrorResponse is one problem with a submission.
// Field is "reading" for the cross-field rule and "body" for undecodable JSON.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ErrorsResponse is the payload for 400 and 422 responses from /api/v1/assess.
type ErrorsResponse struct {
	Errors []FieldErrorResponse `json:"errors"`
}

// CategoryResponse describes one category in GET /api/v1/categories.
// The ceilings are omitted for High, which has none.
type CategoryResponse struct {
	Name         string `json:"name"`
	Label        string `json:"label"`
	HeartRisk    string `json:"heart_risk"`
	SystolicMax  *int   `json:"systolic_max,omitempty"`
	DiastolicMax *int   `json:"diastolic_max,omitempty"`
}

// RangesResponse lists the accepted input ranges, inclusive.
type RangesResponse struct {
	SystolicMin  int `json:"systolic_min"`
	SystolicMax  int `json:"systolic_max"`
	DiastolicMin int `json:"diastolic_min"`
	DiastolicMax int `json:"diastolic_max"`
}

// CategoriesResponse is the payload for GET /api/v1/categories.
type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Ranges     RangesResponse     `json:"ranges"`
}

// HealthResponse is the payload for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}

// errorResponse is a generic JSON error body.
type errorResponse struct {
	Error string `json:"error"`
}
