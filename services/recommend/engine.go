// Package recommend turns a nonprofit profile into grant recommendations
// via the AI gateway, with find-more exclusion support.
package recommend

import (
	"context"
	"fmt"
	"log"
	"strings"

	"grantsassist/backend/services/ai"
	"grantsassist/backend/services/nonprofit"
	"grantsassist/backend/services/storage"
)

// Key identifies a recommendation for deduplication purposes.
type Key struct {
	GrantName  string `json:"grantName"`
	FunderName string `json:"funderName"`
}

// KeyOf returns the dedup key for a recommendation.
func KeyOf(rec ai.GrantRecommendation) Key {
	return Key{GrantName: rec.GrantName, FunderName: rec.FunderName}
}

// Recommender is the slice of the AI gateway the engine needs.
type Recommender interface {
	GenerateRecommendations(ctx context.Context, prompt string) ([]ai.GrantRecommendation, error)
}

// Engine is stateless with respect to searches: accumulation of results
// and maintenance of the exclude set belong to the caller. The engine
// only keeps an optional best-effort cache of the running list so the
// finder view can be restored.
type Engine struct {
	gateway  Recommender
	kv       storage.Store
	mockMode func() bool
	mock     *MockSource
}

func NewEngine(gateway Recommender, kv storage.Store, mockMode func() bool) *Engine {
	if mockMode == nil {
		mockMode = func() bool { return false }
	}
	return &Engine{
		gateway:  gateway,
		kv:       kv,
		mockMode: mockMode,
		mock:     NewMockSource(),
	}
}

// Search requests a new batch of recommendations for the profile,
// asking the AI service to avoid every (grantName, funderName) pair in
// exclude. Only the new batch is returned; folding it into a running
// list and passing the enlarged exclude set back is the caller's job.
//
// An incomplete profile fails before any gateway call. Gateway errors
// surface unchanged; there is no retry here.
func (e *Engine) Search(ctx context.Context, profile nonprofit.NonprofitProfile, exclude []Key) ([]ai.GrantRecommendation, error) {
	if !nonprofit.IsComplete(profile) {
		return nil, nonprofit.ErrProfileIncomplete
	}

	var recs []ai.GrantRecommendation
	var err error
	if e.mockMode() {
		recs = e.mock.Generate(exclude)
	} else {
		recs, err = e.gateway.GenerateRecommendations(ctx, buildPrompt(profile, exclude))
		if err != nil {
			return nil, err
		}
	}

	recs = dropExcluded(recs, exclude)
	e.updateCache(recs, len(exclude) == 0)
	return recs, nil
}

// Cached returns the last accumulated result list, or nil if none.
func (e *Engine) Cached() []ai.GrantRecommendation {
	var cached []ai.GrantRecommendation
	if ok, err := e.kv.Get(storage.KeyCachedRecommendations, &cached); err != nil || !ok {
		return nil
	}
	return cached
}

// updateCache folds a new batch into the cached running list. A fresh
// search (empty exclude set) replaces the cache. Failures only log:
// the cache is a convenience, not a source of truth.
func (e *Engine) updateCache(batch []ai.GrantRecommendation, fresh bool) {
	merged := batch
	if !fresh {
		merged = e.Cached()
		seen := make(map[Key]bool, len(merged))
		for _, rec := range merged {
			seen[KeyOf(rec)] = true
		}
		for _, rec := range batch {
			if !seen[KeyOf(rec)] {
				merged = append(merged, rec)
			}
		}
	}
	if err := e.kv.Put(storage.KeyCachedRecommendations, merged); err != nil {
		log.Printf("Error caching recommendations: %v", err)
	}
}

// dropExcluded removes any result the service resubmitted despite the
// exclusion instruction, and duplicates within the batch itself.
func dropExcluded(recs []ai.GrantRecommendation, exclude []Key) []ai.GrantRecommendation {
	seen := make(map[Key]bool, len(exclude)+len(recs))
	for _, k := range exclude {
		seen[k] = true
	}

	kept := recs[:0]
	for _, rec := range recs {
		k := KeyOf(rec)
		if seen[k] {
			continue
		}
		seen[k] = true
		kept = append(kept, rec)
	}
	return kept
}

// buildPrompt embeds the profile and the exclusion clause. The wording
// asks for 5-7 results but any count is tolerated on the way back.
func buildPrompt(profile nonprofit.NonprofitProfile, exclude []Key) string {
	var exclusion string
	if len(exclude) > 0 {
		lines := make([]string, 0, len(exclude))
		for _, k := range exclude {
			lines = append(lines, fmt.Sprintf("- %s by %s", k.GrantName, k.FunderName))
		}
		exclusion = "\n\nPlease provide a new list of different grants. Do NOT include any of the following previously recommended grants:\n" +
			strings.Join(lines, "\n")
	}

	return fmt.Sprintf(`Based on the following nonprofit profile, identify 5-7 potential grant opportunities.
For each, provide the funder name, grant name, a brief description, a website URL, and a reason why it's a good match.

Organization Name: %s
Mission: %s
Goals: %s
Needs: %s%s

Return the data in a valid JSON array format. Do not include any introductory text or markdown formatting.`,
		profile.OrgName, profile.Mission, profile.Goals, profile.Needs, exclusion)
}
