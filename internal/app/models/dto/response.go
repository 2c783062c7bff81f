package dto

// Response is the envelope every endpoint returns. Status is "success" or
// "error"; Message is optional; Payload fields are flattened alongside via
// the concrete response types below.
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success builds a success envelope carrying a payload
func Success(data interface{}) Response {
	return Response{Status: "success", Data: data}
}

// SuccessMessage builds a success envelope carrying only a message
func SuccessMessage(message string) Response {
	return Response{Status: "success", Message: message}
}

// SuccessWithMessage builds a success envelope with both message and payload
func SuccessWithMessage(message string, data interface{}) Response {
	return Response{Status: "success", Message: message, Data: data}
}

// Error builds an error envelope. The message is the only detail exposed;
// internal errors never leak their cause here.
func Error(message string) Response {
	return Response{Status: "error", Message: message}
}
