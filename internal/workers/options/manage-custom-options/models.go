// internal/workers/options/manage-custom-options/models.go
package managecustomoptions

import "ghotok-workers/internal/models"

const (
	OperationList   = "list"
	OperationCreate = "create"
	OperationDelete = "delete"
)

// Input selects one operation. list and create need FieldType, create also needs
// Value, and delete needs ID.
type Input struct {
	Operation string `json:"operation"`
	FieldType string `json:"fieldType,omitempty"`
	Value     string `json:"value,omitempty"`
	ID        int64  `json:"id,omitempty"`
}

type Output struct {
	Operation string                `json:"operation"`
	Values    []string              `json:"values,omitempty"`
	Custom    []models.CustomOption `json:"customOptions,omitempty"`
	Option    *models.CustomOption  `json:"option,omitempty"`
	Deleted   bool                  `json:"deleted,omitempty"`
}
