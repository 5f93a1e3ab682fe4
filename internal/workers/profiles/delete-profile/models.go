// internal/workers/profiles/delete-profile/models.go
package deleteprofile

type Input struct {
	ID int64 `json:"id"`
}

type Output struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}
