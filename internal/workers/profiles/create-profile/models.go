// internal/workers/profiles/create-profile/models.go
package createprofile

import "ghotok-workers/internal/models"

// Input carries the asset URLs the upload step already produced.
type Input struct {
	Name                   string `json:"name"`
	Age                    int    `json:"age"`
	Gender                 string `json:"gender"`
	Profession             string `json:"profession,omitempty"`
	Qualification          string `json:"qualification,omitempty"`
	MaritalStatus          string `json:"maritalStatus,omitempty"`
	Height                 string `json:"height"`
	BirthYear              int    `json:"birthYear,omitempty"`
	ProfilePicture         string `json:"profilePicture,omitempty"`
	ProfilePictureOriginal string `json:"profilePictureOriginal,omitempty"`
	Document               string `json:"document,omitempty"`
	DocumentOriginal       string `json:"documentOriginal,omitempty"`
}

func (in Input) toProfile() models.Profile {
	return models.Profile{
		Name:                   in.Name,
		Age:                    in.Age,
		Gender:                 in.Gender,
		Profession:             in.Profession,
		Qualification:          in.Qualification,
		MaritalStatus:          in.MaritalStatus,
		Height:                 in.Height,
		BirthYear:              in.BirthYear,
		ProfilePicture:         in.ProfilePicture,
		ProfilePictureOriginal: in.ProfilePictureOriginal,
		Document:               in.Document,
		DocumentOriginal:       in.DocumentOriginal,
	}
}

type Output struct {
	Profile models.Profile `json:"profile"`
	Indexed bool           `json:"indexed"`
}
