// Package model defines domain entities and data structures for the sign-up API.
//
// # Domain Entities
//
//   - Activity: a named club or class with descriptive metadata and an
//     ordered roster of participant emails
//   - Directory: every known activity in catalog order
//
// # JSON Serialization
//
// A Directory serializes as an object keyed by activity name, which is the
// shape GET /activities returns:
//
//	{"Chess Club": {"description": "...", "participants": ["..."]}}
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
