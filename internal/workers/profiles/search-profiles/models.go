// internal/workers/profiles/search-profiles/models.go
package searchprofiles

import (
	"ghotok-workers/internal/models"
	"ghotok-workers/internal/profiles"
)

type Input struct {
	Gender        string `json:"gender,omitempty"`
	Profession    string `json:"profession,omitempty"`
	MaritalStatus string `json:"maritalStatus,omitempty"`
	BirthYear     int    `json:"birthYear,omitempty"`
	Height        string `json:"height,omitempty"`
	Age           int    `json:"age,omitempty"`
}

func (in Input) filters() profiles.Filters {
	return profiles.Filters{
		Gender:        in.Gender,
		Profession:    in.Profession,
		MaritalStatus: in.MaritalStatus,
		Height:        in.Height,
		BirthYear:     in.BirthYear,
		Age:           in.Age,
	}
}

const (
	SourceElasticsearch = "elasticsearch"
	SourcePostgres      = "postgres"
)

type Output struct {
	Profiles []models.Profile `json:"profiles"`
	Total    int64            `json:"total"`
	Source   string           `json:"source"`
}
