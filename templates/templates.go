// Package templates defines the message template model.
package templates

// Template is a parameterized alimtalk message body scoped to one space.
// The server calls the id field "templateId"; the client normalizes it to ID
// when it ingests the list response.
type Template struct {
	ID                    int    `json:"id"`
	Title                 string `json:"title"`
	ParameterizedTemplate string `json:"parameterizedTemplate"`
}

// SavePayload is the body for creating or updating a template in a space.
type SavePayload struct {
	SpaceID               int    `json:"spaceId"`
	Title                 string `json:"title"`
	ParameterizedTemplate string `json:"parameterizedTemplate"`
}
