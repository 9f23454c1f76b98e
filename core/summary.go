package core

import "github.com/shopspring/decimal"

// TeamSpend reports one team's position after the sales so far.
type TeamSpend struct {
	Team        Team   `json:"team"`
	Spent       int64  `json:"spent"`
	Utilization string `json:"utilizationPct"`
}

// AuctionSummary aggregates the sales of a tournament.
type AuctionSummary struct {
	Teams         []TeamSpend `json:"teams"`
	PlayersSold   int         `json:"playersSold"`
	PlayersUnsold int         `json:"playersUnsold"`
	TotalSpent    int64       `json:"totalSpent"`
}

// BuildSummary computes per-team spend and budget utilization from the
// tournament's teams and players. Utilization is spent/total as a
// percentage; decimal arithmetic keeps the division exact before the
// final rounding to two places.
func BuildSummary(teams []Team, players []Player) AuctionSummary {
	summary := AuctionSummary{Teams: make([]TeamSpend, 0, len(teams))}

	for _, team := range teams {
		spent := team.BudgetTotal - team.BudgetRemaining
		summary.TotalSpent += spent

		utilization := "0"
		if team.BudgetTotal > 0 {
			utilization = decimal.NewFromInt(spent).
				Div(decimal.NewFromInt(team.BudgetTotal)).
				Mul(decimal.NewFromInt(100)).
				Round(2).
				String()
		}

		summary.Teams = append(summary.Teams, TeamSpend{
			Team:        team,
			Spent:       spent,
			Utilization: utilization,
		})
	}

	for _, player := range players {
		if player.Status == PlayerSold {
			summary.PlayersSold++
		} else {
			summary.PlayersUnsold++
		}
	}

	return summary
}
