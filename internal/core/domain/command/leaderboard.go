package command

import (
	"context"
	"fmt"
	"strings"

	"clipbot/internal/core/domain"
	"clipbot/internal/core/port"
)

type Standing struct {
	Username string
	Points   int
}

// sampleStandings stands in until clip scoring exists.
var sampleStandings = []Standing{
	{Username: "PlayerOne", Points: 100},
	{Username: "GamerPro", Points: 80},
	{Username: "NinjaWarrior", Points: 75},
	{Username: "DragonSlayer", Points: 60},
	{Username: "SpeedRunner", Points: 50},
}

type Leaderboard struct {
	poster
	standings []Standing
}

func NewLeaderboard(store port.BindingStore, checker port.ResourceChecker, responder port.Responder,
	channels port.ChannelPoster) *Leaderboard {
	return &Leaderboard{
		poster:    poster{store: store, checker: checker, responder: responder, channels: channels},
		standings: sampleStandings,
	}
}

func (l *Leaderboard) Schema() domain.CommandSchema {
	return domain.CommandSchema{
		Name:        "leaderboard",
		Description: "Post a leaderboard to the configured leaderboard channel",
	}
}

func (l *Leaderboard) Respond(ctx context.Context, interaction *domain.Interaction) error {
	return l.post(ctx, interaction, domain.LeaderboardChannel, renderLeaderboard(l.standings), postReplies{
		unbound: "❌ No leaderboard channel has been configured! " +
			"Use `/bind leaderboard_channel #channel` to set one up.",
		sent:   "✅ Leaderboard posted to %s!",
		failed: "❌ Failed to post the leaderboard. Please check bot permissions.",
	})
}

var medals = []string{"🥇", "🥈", "🥉"}

func renderLeaderboard(standings []Standing) string {
	var sb strings.Builder

	sb.WriteString("**🏆 Weekly Leaderboard**\nTop players of the week!\n\n")

	if len(standings) == 0 {
		sb.WriteString("No data available\n")
	}

	for i, s := range standings {
		rank := fmt.Sprintf("**%d.**", i+1)
		if i < len(medals) {
			rank = medals[i]
		}
		fmt.Fprintf(&sb, "%s **%s** - %d pts\n", rank, s.Username, s.Points)
	}

	sb.WriteString("\n_Updates every Monday_")

	return sb.String()
}
