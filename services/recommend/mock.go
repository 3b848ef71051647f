package recommend

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"grantsassist/backend/services/ai"
)

// Predefined arrays for plausible mock recommendations.
var grantThemes = []string{
	"Community Fund", "Capacity Building Grant", "Impact Award",
	"Neighborhood Initiative", "Resilience Fund", "Innovation Grant",
	"Opportunity Fund", "Outreach Program Grant", "Sustainability Grant",
	"Youth Futures Fund", "Food Security Grant", "Health Access Grant",
}

var matchReasons = []string{
	"The funder prioritizes organizations with a similar mission.",
	"Your stated needs align with this grant's funding categories.",
	"This funder supports programs at your organization's stage.",
	"Your goals match the outcomes this grant is designed to fund.",
	"This opportunity targets the communities your organization serves.",
}

// MockSource generates recommendation batches without touching the AI
// service, for use when the mock-data flag is on.
type MockSource struct{}

func NewMockSource() *MockSource {
	return &MockSource{}
}

// Generate produces 5-7 recommendations whose (grantName, funderName)
// pairs avoid the exclude set, mirroring the real engine's find-more
// behavior.
func (m *MockSource) Generate(exclude []Key) []ai.GrantRecommendation {
	excluded := make(map[Key]bool, len(exclude))
	for _, k := range exclude {
		excluded[k] = true
	}

	count := 5 + gofakeit.Number(0, 2)
	recs := make([]ai.GrantRecommendation, 0, count)
	for len(recs) < count {
		funder := gofakeit.Company() + " Foundation"
		grant := fmt.Sprintf("%s %s", gofakeit.City(), grantThemes[gofakeit.Number(0, len(grantThemes)-1)])

		k := Key{GrantName: grant, FunderName: funder}
		if excluded[k] {
			continue
		}
		excluded[k] = true

		recs = append(recs, ai.GrantRecommendation{
			FunderName:  funder,
			GrantName:   grant,
			Description: gofakeit.Sentence(12),
			Website:     fmt.Sprintf("https://www.%s", gofakeit.DomainName()),
			MatchReason: matchReasons[gofakeit.Number(0, len(matchReasons)-1)],
		})
	}
	return recs
}
