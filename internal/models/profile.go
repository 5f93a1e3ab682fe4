// internal/models/profile.go
package models

import (
	"strings"
	"time"

	"ghotok-workers/internal/matching"
)

// Profile is a stored bride or groom profile. Asset fields hold already-uploaded URLs
// and the filenames they were uploaded under.
type Profile struct {
	ID                     int64     `json:"id"`
	ProfileID              string    `json:"profileId"`
	Name                   string    `json:"name"`
	Age                    int       `json:"age"`
	Gender                 string    `json:"gender"`
	Profession             string    `json:"profession,omitempty"`
	Qualification          string    `json:"qualification,omitempty"`
	MaritalStatus          string    `json:"maritalStatus,omitempty"`
	Height                 string    `json:"height"`
	ProfilePicture         string    `json:"profilePicture,omitempty"`
	ProfilePictureOriginal string    `json:"profilePictureOriginal,omitempty"`
	Document               string    `json:"document,omitempty"`
	DocumentOriginal       string    `json:"documentOriginal,omitempty"`
	BirthYear              int       `json:"birthYear"`
	CreatedAt              time.Time `json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

// Candidate projects the fields the matcher reads.
func (p Profile) Candidate() matching.Candidate {
	return matching.Candidate{
		ID:         p.ID,
		Age:        p.Age,
		Gender:     matching.Gender(p.Gender),
		Profession: p.Profession,
		Height:     p.Height,
	}
}

// DocumentDownloadURL rewrites an upload URL so the asset host serves it as an
// attachment. It returns "" when the profile has no document.
func (p Profile) DocumentDownloadURL() string {
	if p.Document == "" {
		return ""
	}
	return strings.Replace(p.Document, "/upload/", "/upload/fl_attachment/", 1)
}

// DocumentFilename is the name a downloaded document should be saved under.
func (p Profile) DocumentFilename() string {
	if p.DocumentOriginal != "" {
		return p.DocumentOriginal
	}
	return "document_" + itoa(p.ID)
}

// BirthYearFor derives a birth year from an age.
func BirthYearFor(age int, now time.Time) int {
	return now.Year() - age
}

type ProfileStats struct {
	TotalProfiles int `json:"totalProfiles"`
	BrideProfiles int `json:"brideProfiles"`
	GroomProfiles int `json:"groomProfiles"`
}
