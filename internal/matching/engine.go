// internal/matching/engine.go
// Orchestrates one recommendation request: load the requester bundle,
// fetch an oversized candidate pool, bulk-load attributes, score every
// candidate, rank, paginate.

package matching

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

const (
	defaultPageSize  = 20
	maxPageSize      = 100
	minPoolSize      = 100
	poolSizeFactor   = 5
	maxScoreWorkers  = 8
)

// Engine computes ranked match recommendations. Each call is an
// independent, stateless computation; the engine itself holds no mutable
// state beyond its collaborators.
type Engine struct {
	repo  Repository
	cache *ResultCache // nil when Redis is not configured
	now   func() time.Time
}

// NewEngine creates a recommendation engine. cache may be nil.
func NewEngine(repo Repository, cache *ResultCache) *Engine {
	return &Engine{repo: repo, cache: cache, now: time.Now}
}

// GetRecommendations returns one page of ranked recommendations for the
// requester. An unknown requester or an empty candidate pool yields an
// empty list; a storage failure propagates as an error so callers can
// tell it apart from "no matches".
func (e *Engine) GetRecommendations(ctx context.Context, requesterID int64, page, pageSize int) ([]*RecommendationRecord, error) {
	if requesterID <= 0 {
		return []*RecommendationRecord{}, nil
	}

	page, pageSize = sanitizePaging(page, pageSize)

	if e.cache != nil {
		if records, ok := e.cache.Get(ctx, requesterID, page, pageSize); ok {
			recommendationCacheHits.Inc()
			return records, nil
		}
	}

	start := e.now()
	records, err := e.compute(ctx, requesterID, page, pageSize)
	if err != nil {
		recommendationRequests.WithLabelValues("error").Inc()
		return nil, err
	}
	recommendationRequests.WithLabelValues("ok").Inc()
	recommendationDuration.Observe(e.now().Sub(start).Seconds())

	if e.cache != nil {
		e.cache.Set(ctx, requesterID, page, pageSize, records)
	}
	return records, nil
}

func (e *Engine) compute(ctx context.Context, requesterID int64, page, pageSize int) ([]*RecommendationRecord, error) {
	requester, err := e.repo.GetUserProfile(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("load requester %d: %w", requesterID, err)
	}
	if requester == nil {
		return []*RecommendationRecord{}, nil
	}

	pref, err := e.repo.GetPreference(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("load requester preference: %w", err)
	}

	mustCodes, err := e.repo.GetMustDimensionCodes(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("load must dimensions: %w", err)
	}
	mustCodes = filterKnownCodes(requesterID, mustCodes)

	priorities, err := e.repo.GetPriorityDimensions(ctx, requesterID)
	if err != nil {
		return nil, fmt.Errorf("load priority dimensions: %w", err)
	}
	priorities = filterKnownPriorities(requesterID, priorities)

	poolSize := pageSize * poolSizeFactor
	if poolSize < minPoolSize {
		poolSize = minPoolSize
	}
	candidates, err := e.repo.GetCandidatePool(ctx, requesterID, poolSize)
	if err != nil {
		return nil, fmt.Errorf("load candidate pool: %w", err)
	}
	candidatePoolSize.Observe(float64(len(candidates)))
	if len(candidates) == 0 {
		return []*RecommendationRecord{}, nil
	}

	userIDs := make([]int64, 0, len(candidates)+1)
	userIDs = append(userIDs, requesterID)
	for _, c := range candidates {
		userIDs = append(userIDs, c.UserID)
	}

	snap, err := buildSnapshot(ctx, e.repo, userIDs)
	if err != nil {
		return nil, err
	}

	scored := e.scoreAll(requester, pref, mustCodes, priorities, snap, candidates)
	rank(scored)

	return pageOf(scored, page, pageSize), nil
}

// scoreAll scores every candidate against the immutable snapshot. Scoring
// is pure and per-candidate independent, so it runs across a bounded set
// of workers writing to disjoint slice slots.
func (e *Engine) scoreAll(requester *UserProfile, pref *Preference, mustCodes []DimensionCode,
	priorities []PriorityDimension, snap *attributeSnapshot, candidates []*UserProfile) []ScoredCandidate {

	s := newScorer(requester, pref, mustCodes, priorities, snap, e.now())
	scored := make([]ScoredCandidate, len(candidates))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxScoreWorkers)
	for i, candidate := range candidates {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, candidate *UserProfile) {
			defer wg.Done()
			defer func() { <-sem }()
			score := s.Score(candidate)
			matchScores.Observe(float64(score))
			scored[i] = ScoredCandidate{Profile: candidate, Score: score}
		}(i, candidate)
	}
	wg.Wait()

	return scored
}

// rank sorts by score descending with ascending user id as the
// deterministic tie-break.
func rank(scored []ScoredCandidate) {
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Profile.UserID < scored[j].Profile.UserID
	})
}

// pageOf slices the requested 1-based page; pages past the end are empty,
// never an error.
func pageOf(scored []ScoredCandidate, page, pageSize int) []*RecommendationRecord {
	offset := (page - 1) * pageSize
	if offset > len(scored) {
		offset = len(scored)
	}
	end := offset + pageSize
	if end > len(scored) {
		end = len(scored)
	}

	records := make([]*RecommendationRecord, 0, end-offset)
	for _, sc := range scored[offset:end] {
		records = append(records, toRecord(sc.Profile, sc.Score))
	}
	return records
}

func sanitizePaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// filterKnownCodes drops unrecognized dimension codes with a warning
// instead of failing the request. Logged once per request, not per
// candidate.
func filterKnownCodes(requesterID int64, codes []DimensionCode) []DimensionCode {
	known := codes[:0]
	for _, code := range codes {
		if !KnownDimension(code) {
			log.Printf("matching: ignoring unknown must dimension %q for user %d", code, requesterID)
			continue
		}
		known = append(known, code)
	}
	return known
}

func filterKnownPriorities(requesterID int64, dims []PriorityDimension) []PriorityDimension {
	known := dims[:0]
	for _, d := range dims {
		if !KnownDimension(d.Code) {
			log.Printf("matching: ignoring unknown priority dimension %q for user %d", d.Code, requesterID)
			continue
		}
		known = append(known, d)
	}
	return known
}
