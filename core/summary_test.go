package core

import (
	"testing"

	"github.com/peterldowns/testy/check"
)

func TestBuildSummary_SpendAndUtilization(t *testing.T) {
	teams := []Team{
		{ID: "t1", BudgetTotal: 1000, BudgetRemaining: 900},
		{ID: "t2", BudgetTotal: 3000, BudgetRemaining: 1000},
	}
	soldPrice := int64(100)
	soldTo := "t1"
	players := []Player{
		{ID: "p1", Status: PlayerSold, SoldPrice: &soldPrice, SoldToTeamID: &soldTo},
		{ID: "p2", Status: PlayerUnsold},
		{ID: "p3", Status: PlayerUnsold},
	}

	summary := BuildSummary(teams, players)

	check.Equal(t, 2, len(summary.Teams))
	check.Equal(t, int64(100), summary.Teams[0].Spent)
	check.Equal(t, "10", summary.Teams[0].Utilization)
	check.Equal(t, int64(2000), summary.Teams[1].Spent)
	check.Equal(t, "66.67", summary.Teams[1].Utilization)
	check.Equal(t, int64(2100), summary.TotalSpent)
	check.Equal(t, 1, summary.PlayersSold)
	check.Equal(t, 2, summary.PlayersUnsold)
}

func TestBuildSummary_ZeroBudgetTeam(t *testing.T) {
	summary := BuildSummary([]Team{{ID: "t1"}}, nil)

	check.Equal(t, "0", summary.Teams[0].Utilization)
	check.Equal(t, int64(0), summary.TotalSpent)
	check.Equal(t, 0, summary.PlayersSold)
}
