// Note: To generate sample projects, use:
// curl -X POST "http://localhost:8080/api/test/generate-projects?count=5" -H "Content-Type: application/json"

package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/exp/rand"

	"grantsassist/backend/services/grants"
)

// Predefined arrays for consistent sample data.
var grantTitles = []string{
	"Community Fund", "Capacity Building Grant", "Impact Award",
	"Neighborhood Initiative", "Resilience Fund", "Innovation Grant",
	"Opportunity Fund", "Outreach Program Grant", "Sustainability Grant",
	"Youth Futures Fund", "Food Security Grant", "Health Access Grant",
}

var proposalOpeners = []string{
	"Our organization requests support to expand its core programs.",
	"This proposal outlines a one-year plan to deepen our community impact.",
	"We seek funding to meet growing demand for our services.",
	"With this grant we will strengthen our outreach and operations.",
}

// GenerateTestDataHandler seeds the project store with sample grant
// projects in a realistic mix of lifecycle states. Every generated
// project reaches its status through legal transitions only.
func GenerateTestDataHandler(store *grants.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		// Get count parameter, default to 10 if not provided
		count := 10
		if countParam := r.URL.Query().Get("count"); countParam != "" {
			parsedCount, err := strconv.Atoi(countParam)
			if err != nil || parsedCount < 1 || parsedCount > 150 {
				http.Error(w, "Count must be between 1 and 150", http.StatusBadRequest)
				return
			}
			count = parsedCount
		}

		created := 0
		for i := 0; i < count; i++ {
			title := fmt.Sprintf("%s %s", gofakeit.City(), grantTitles[rand.Intn(len(grantTitles))])
			funder := gofakeit.Company() + " Foundation"

			project, err := store.Create(title, funder)
			if err != nil {
				log.Printf("Error creating sample project: %v", err)
				http.Error(w, "Error generating sample projects", http.StatusInternalServerError)
				return
			}

			// Most samples carry a proposal draft.
			if rand.Intn(4) > 0 {
				project.Proposal = proposalOpeners[rand.Intn(len(proposalOpeners))] + "\n\n" + gofakeit.Paragraph(2, 4, 16, "\n\n")
				if project, err = store.Save(project); err != nil {
					log.Printf("Error saving sample proposal: %v", err)
					continue
				}
			}

			// Walk some projects forward through the lifecycle.
			switch rand.Intn(4) {
			case 1:
				err = advance(store, project, grants.StatusSubmitted)
			case 2:
				err = advance(store, project, grants.StatusSubmitted, grants.StatusAwarded)
			case 3:
				err = advance(store, project, grants.StatusSubmitted, grants.StatusDeclined)
			}
			if err != nil {
				log.Printf("Error advancing sample project: %v", err)
				continue
			}

			created++
		}

		log.Printf("Generated %d sample projects", created)
		json.NewEncoder(w).Encode(map[string]int{"created": created})
	}
}

func advance(store *grants.Store, project grants.GrantProject, path ...grants.Status) error {
	for _, to := range path {
		if !grants.CanTransition(project.Status, to) {
			return fmt.Errorf("illegal sample transition %s -> %s", project.Status, to)
		}
		project.Status = to
		var err error
		if project, err = store.Save(project); err != nil {
			return err
		}
	}
	return nil
}
