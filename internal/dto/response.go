package dto

// ApiResponse is the envelope every endpoint answers with: a success flag, the
// HTTP status mirrored into the body, and optional payload/error/message.
type ApiResponse struct {
	Status     bool        `json:"status"`
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Message    string      `json:"message,omitempty"`
}

func Success(statusCode int, data interface{}, message string) ApiResponse {
	return ApiResponse{Status: true, StatusCode: statusCode, Data: data, Message: message}
}

func Failure(statusCode int, errMsg string) ApiResponse {
	return ApiResponse{Status: false, StatusCode: statusCode, Error: errMsg}
}
