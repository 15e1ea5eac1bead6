package service

import (
	"sort"

	"rotape-service/internal/ports/models"
)

// Pair scores by tier
const (
	ScoreMutualFirst  = 10
	ScoreSecondChoice = 7
	ScoreThirdChoice  = 5
)

// Tally weights per slot
const (
	weightFirst  = 3
	weightSecond = 2
	weightThird  = 1
)

// ResolveMatches pairs participants from their ranked preferences. It is a
// pure function: no I/O, deterministic for a given input order. Callers must
// supply records in a stable order (the repository orders by created_at then
// voter_id); the first qualifying pair found under that order wins and locks
// both members out of later tiers.
//
// Tiers, checked in order for each unprocessed record:
//  1. mutual first choice, score 10
//  2. voter's second choice names the voter first or second, score 7
//  3. voter's third choice names the voter anywhere, score 5
//
// A record whose choice references a voter absent from the input contributes
// nothing at that tier. Unmatched voters are skipped without error.
func ResolveMatches(prefs []models.Preference) []models.MatchPair {
	byVoter := make(map[uint]*models.Preference, len(prefs))
	for i := range prefs {
		byVoter[prefs[i].VoterID] = &prefs[i]
	}

	processed := make(map[uint]bool, len(prefs))
	var pairs []models.MatchPair

	for i := range prefs {
		p := &prefs[i]
		if processed[p.VoterID] {
			continue
		}

		type attempt struct {
			choice uint
			tier   int
			score  int
		}
		attempts := []attempt{
			{p.First, 1, ScoreMutualFirst},
			{p.Second, 2, ScoreSecondChoice},
			{p.Third, 3, ScoreThirdChoice},
		}

		for _, a := range attempts {
			if !reciprocates(byVoter, processed, p.VoterID, a.choice, a.tier) {
				continue
			}
			pairs = append(pairs, models.MatchPair{
				EventID: p.EventID,
				UserA:   p.VoterID,
				UserB:   a.choice,
				Score:   a.score,
			})
			processed[p.VoterID] = true
			processed[a.choice] = true
			break
		}
	}

	return pairs
}

// reciprocates reports whether the candidate's own record names the voter
// back within the slots allowed at the given tier.
func reciprocates(byVoter map[uint]*models.Preference, processed map[uint]bool, voterID, candidateID uint, tier int) bool {
	if candidateID == 0 || candidateID == voterID || processed[candidateID] {
		return false
	}
	c, ok := byVoter[candidateID]
	if !ok {
		return false
	}
	switch tier {
	case 1:
		return c.First == voterID
	case 2:
		return c.First == voterID || c.Second == voterID
	default:
		return c.First == voterID || c.Second == voterID || c.Third == voterID
	}
}

// ComputeVoteTally aggregates per-candidate vote counts over the full
// preference ledger of an event. Pure function; persisting or caching the
// result is the caller's concern. Candidates are ordered by total score
// descending, ties broken by candidate id.
func ComputeVoteTally(eventID uint, prefs []models.Preference) models.VoteTally {
	byCandidate := make(map[uint]*models.CandidateTally)

	for i := range prefs {
		p := &prefs[i]
		if p.First != 0 {
			t := tallyFor(byCandidate, p.First)
			t.First++
			t.TotalScore += weightFirst
		}
		if p.Second != 0 {
			t := tallyFor(byCandidate, p.Second)
			t.Second++
			t.TotalScore += weightSecond
		}
		if p.Third != 0 {
			t := tallyFor(byCandidate, p.Third)
			t.Third++
			t.TotalScore += weightThird
		}
	}

	candidates := make([]models.CandidateTally, 0, len(byCandidate))
	for _, t := range byCandidate {
		candidates = append(candidates, *t)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].TotalScore != candidates[j].TotalScore {
			return candidates[i].TotalScore > candidates[j].TotalScore
		}
		return candidates[i].CandidateID < candidates[j].CandidateID
	})

	return models.VoteTally{
		EventID:    eventID,
		TotalVotes: len(prefs),
		Candidates: candidates,
	}
}

func tallyFor(byCandidate map[uint]*models.CandidateTally, id uint) *models.CandidateTally {
	t, ok := byCandidate[id]
	if !ok {
		t = &models.CandidateTally{CandidateID: id}
		byCandidate[id] = t
	}
	return t
}
