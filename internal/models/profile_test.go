package models

import (
	"testing"
	"time"

	"ghotok-workers/internal/matching"

	"github.com/stretchr/testify/assert"
)

func TestDocumentDownloadURL(t *testing.T) {
	p := Profile{ID: 7, Document: "https://res.cloudinary.com/demo/raw/upload/v1/docs/cv.pdf"}
	assert.Equal(t, "https://res.cloudinary.com/demo/raw/upload/fl_attachment/v1/docs/cv.pdf", p.DocumentDownloadURL())
	assert.Equal(t, "document_7", p.DocumentFilename())

	p.DocumentOriginal = "cv.pdf"
	assert.Equal(t, "cv.pdf", p.DocumentFilename())

	assert.Empty(t, Profile{}.DocumentDownloadURL())
}

func TestCandidate(t *testing.T) {
	p := Profile{ID: 3, Age: 30, Gender: "Male", Profession: "Doctor", Height: `6'0"`, Name: "x"}
	assert.Equal(t, matching.Candidate{ID: 3, Age: 30, Gender: matching.Male, Profession: "Doctor", Height: `6'0"`}, p.Candidate())
}

func TestBirthYearFor(t *testing.T) {
	now := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1996, BirthYearFor(30, now))
}

func TestUserPublicHidesPassword(t *testing.T) {
	u := User{ID: 1, Username: "admin", Password: "$2a$10$hash", Email: "admin@example.com"}
	assert.Equal(t, PublicUser{ID: 1, Username: "admin", Email: "admin@example.com"}, u.Public())
}
