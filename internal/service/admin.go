package service

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"healthscore/internal/analysis"
	"healthscore/internal/store"
)

// AdminAnalytics aggregates engagement and scores across all users
type AdminAnalytics struct {
	UserCount       int                `json:"userCount"`
	AssessmentCount int                `json:"assessmentCount"`
	AvgOverall      float64            `json:"avgOverallScore"`
	AvgPillars      map[string]float64 `json:"avgPillarScores"`
	BMICategories   map[string]int     `json:"bmiCategories"`
	AvgStreak       float64            `json:"avgStreak"`
	AvgCompletion   float64            `json:"avgCompletionRate"`
}

// userSummary is the per-user slice of the admin aggregate
type userSummary struct {
	streak     int
	completion int
	latest     store.Assessment
}

// GetAdminAnalytics computes cross-user analytics. Users are loaded concurrently.
func (s *AssessmentService) GetAdminAnalytics(ctx context.Context) (*AdminAnalytics, error) {
	userIDs, err := s.store.ListUserIDs()
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	total, err := s.store.CountAssessments()
	if err != nil {
		return nil, fmt.Errorf("counting assessments: %w", err)
	}

	// nil entries are users whose records vanished between the two queries
	summaries := make([]*userSummary, len(userIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(AdminUserConcurrency)
	for i, id := range userIDs {
		i, id := i, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records, err := s.store.ListAssessments(id)
			if err != nil {
				return fmt.Errorf("loading assessments for %s: %w", id, err)
			}
			if len(records) == 0 {
				return nil
			}
			summaries[i] = &userSummary{
				streak:     analysis.CalculateStreak(records),
				completion: analysis.CalculateCompletionRate(records),
				latest:     records[len(records)-1],
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := aggregate(summaries)
	out.AssessmentCount = total
	return out, nil
}

// aggregate averages the users that still have assessments. UserCount is
// the number of summaries that took part.
func aggregate(summaries []*userSummary) *AdminAnalytics {
	out := &AdminAnalytics{
		AvgPillars:    make(map[string]float64, len(analysis.Pillars)),
		BMICategories: make(map[string]int),
	}
	for _, p := range analysis.Pillars {
		out.AvgPillars[string(p)] = 0
	}

	// Scores are taken from each user's latest assessment
	var overall, streak, completion float64
	pillarSums := make(map[analysis.Pillar]float64, len(analysis.Pillars))
	for _, u := range summaries {
		if u == nil {
			continue
		}
		out.UserCount++
		overall += float64(u.latest.OverallScore)
		streak += float64(u.streak)
		completion += float64(u.completion)
		for _, p := range analysis.Pillars {
			pillarSums[p] += float64(p.Score(u.latest.Scores))
		}

		category := u.latest.Calculations.BMICategory
		if category == "" {
			category = "unknown"
		}
		out.BMICategories[category]++
	}
	if out.UserCount == 0 {
		return out
	}

	n := float64(out.UserCount)
	out.AvgOverall = round1(overall / n)
	out.AvgStreak = round1(streak / n)
	out.AvgCompletion = round1(completion / n)
	for _, p := range analysis.Pillars {
		out.AvgPillars[string(p)] = round1(pillarSums[p] / n)
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
