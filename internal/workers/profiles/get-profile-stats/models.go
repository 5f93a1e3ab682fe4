// internal/workers/profiles/get-profile-stats/models.go
package getprofilestats

type Input struct {
	ForceRefresh bool `json:"forceRefresh,omitempty"`
}

type Output struct {
	TotalProfiles int  `json:"totalProfiles"`
	BrideProfiles int  `json:"brideProfiles"`
	GroomProfiles int  `json:"groomProfiles"`
	Cached        bool `json:"cached"`
}
