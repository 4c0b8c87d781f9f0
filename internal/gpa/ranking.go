package gpa

import (
	"sort"

	"gpa-tracker-api/internal/model"
	"gpa-tracker-api/pkg/errors"
)

// Standing is one user's position in the leaderboard computation.
type Standing struct {
	UserID        string
	CumulativeGPA float64
}

// Leaderboard groups records by owner, computes each user's cumulative
// GPA, and returns users sorted by GPA descending. Ties are broken by
// ascending user id so equal GPAs always rank deterministically.
func Leaderboard(records []model.SemesterRecord) []Standing {
	type totals struct {
		points  float64
		credits int
	}

	byUser := make(map[string]*totals)
	order := make([]string, 0)
	for _, rec := range records {
		t, ok := byUser[rec.UserID]
		if !ok {
			t = &totals{}
			byUser[rec.UserID] = t
			order = append(order, rec.UserID)
		}
		t.points, t.credits = accumulate(t.points, t.credits, rec)
	}

	standings := make([]Standing, 0, len(order))
	for _, userID := range order {
		t := byUser[userID]
		cum := 0.0
		if t.credits > 0 {
			cum = t.points / float64(t.credits)
		}
		standings = append(standings, Standing{UserID: userID, CumulativeGPA: cum})
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].CumulativeGPA != standings[j].CumulativeGPA {
			return standings[i].CumulativeGPA > standings[j].CumulativeGPA
		}
		return standings[i].UserID < standings[j].UserID
	})

	return standings
}

// Rank locates userID in the leaderboard built from records. The records
// span all users; this is a full scan on every call, acceptable at this
// population size. A user absent from the population gets ErrRankNotFound,
// never a zero or out-of-range rank.
func Rank(records []model.SemesterRecord, userID string) (model.Ranking, error) {
	standings := Leaderboard(records)
	for i, s := range standings {
		if s.UserID == userID {
			return model.Ranking{
				Rank:          i + 1,
				TotalUsers:    len(standings),
				CumulativeGPA: s.CumulativeGPA,
			}, nil
		}
	}
	return model.Ranking{}, errors.ErrRankNotFound
}

// ValidateOverride checks a manual rank override: both values must be
// positive and rank may not exceed the population size.
func ValidateOverride(rank, totalUsers int) error {
	if rank < 1 || totalUsers < 1 || rank > totalUsers {
		return errors.ErrInvalidRankData
	}
	return nil
}
