package gpa

import (
	"testing"

	"gpa-tracker-api/internal/model"
	"gpa-tracker-api/pkg/errors"
)

func TestRank(t *testing.T) {
	// alice and carol tie at 3.9; bob trails at 3.2.
	records := []model.SemesterRecord{
		record("carol", 3.9, 10),
		record("alice", 3.9, 12),
		record("bob", 3.2, 10),
	}

	tests := []struct {
		name     string
		userID   string
		wantRank int
		wantGPA  float64
		wantErr  error
	}{
		{name: "tie broken by user id, first", userID: "alice", wantRank: 1, wantGPA: 3.9},
		{name: "tie broken by user id, second", userID: "carol", wantRank: 2, wantGPA: 3.9},
		{name: "lowest gpa ranks last", userID: "bob", wantRank: 3, wantGPA: 3.2},
		{name: "absent user", userID: "dave", wantErr: errors.ErrRankNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Rank(records, tt.userID)
			if err != tt.wantErr {
				t.Fatalf("Rank() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Rank != tt.wantRank {
				t.Errorf("Rank() rank = %d, want %d", got.Rank, tt.wantRank)
			}
			if got.TotalUsers != 3 {
				t.Errorf("Rank() totalUsers = %d, want 3", got.TotalUsers)
			}
			if !almostEqual(got.CumulativeGPA, tt.wantGPA) {
				t.Errorf("Rank() cumulativeGPA = %v, want %v", got.CumulativeGPA, tt.wantGPA)
			}
		})
	}
}

func TestRankMultipleSemestersPerUser(t *testing.T) {
	records := []model.SemesterRecord{
		record("alice", 3.0, 10),
		record("alice", 4.0, 10),
		record("bob", 3.6, 10),
	}

	got, err := Rank(records, "alice")
	if err != nil {
		t.Fatalf("Rank() error = %v", err)
	}
	// alice: (3.0*10 + 4.0*10) / 20 = 3.5 < bob's 3.6
	if got.Rank != 2 {
		t.Errorf("Rank() rank = %d, want 2", got.Rank)
	}
	if !almostEqual(got.CumulativeGPA, 3.5) {
		t.Errorf("Rank() cumulativeGPA = %v, want 3.5", got.CumulativeGPA)
	}
}

func TestLeaderboardEmpty(t *testing.T) {
	if standings := Leaderboard(nil); len(standings) != 0 {
		t.Errorf("Leaderboard(nil) = %v, want empty", standings)
	}
}

func TestValidateOverride(t *testing.T) {
	tests := []struct {
		name       string
		rank       int
		totalUsers int
		wantErr    bool
	}{
		{name: "rank exceeds population", rank: 5, totalUsers: 3, wantErr: true},
		{name: "rank below one", rank: 0, totalUsers: 10, wantErr: true},
		{name: "total below one", rank: 1, totalUsers: 0, wantErr: true},
		{name: "negative rank", rank: -2, totalUsers: 5, wantErr: true},
		{name: "single user population", rank: 1, totalUsers: 1},
		{name: "mid-population", rank: 4, totalUsers: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOverride(tt.rank, tt.totalUsers)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOverride(%d, %d) error = %v, wantErr %v",
					tt.rank, tt.totalUsers, err, tt.wantErr)
			}
			if err != nil && err != errors.ErrInvalidRankData {
				t.Errorf("ValidateOverride() error = %v, want ErrInvalidRankData", err)
			}
		})
	}
}
