// Package handler provides the HTTP surface of the sign-up API.
//
// NewRouter registers every route on a net/http ServeMux and wraps it in the
// middleware chain:
//
//	GET    /activities                          directory keyed by activity name
//	GET    /activities/{activity}               one activity
//	POST   /activities/{activity}/signup        ?email= adds a participant
//	DELETE /activities/{activity}/participants  ?email= removes a participant
//	GET    /health, /ready, /metrics
//
// Successful roster changes answer {"message": "..."}; failures are RFC 9457
// Problem Details produced by MapServiceError, with the human readable text
// in "detail".
package handler
