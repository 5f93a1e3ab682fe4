// internal/workers/profiles/get-profile/models.go
package getprofile

import "ghotok-workers/internal/models"

type Input struct {
	ID                 int64 `json:"id"`
	IncludeDownloadURL bool  `json:"includeDownloadUrl,omitempty"`
}

type Output struct {
	Profile             models.Profile `json:"profile"`
	DocumentDownloadURL string         `json:"documentDownloadUrl,omitempty"`
	DocumentFilename    string         `json:"documentFilename,omitempty"`
}
