package http

// DataEnvelope wraps every successful payload.
type DataEnvelope struct {
	Data interface{} `json:"data"`
}

// ErrorEnvelope wraps every error payload.
type ErrorEnvelope struct {
	Error *AppError `json:"error"`
}

// SuccessFlag is the body of delete style operations.
type SuccessFlag struct {
	Success bool `json:"success"`
}
