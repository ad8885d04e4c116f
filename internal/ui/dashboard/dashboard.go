// Package dashboard renders progression state and match results for the
// terminal.
package dashboard

import (
	"fmt"
	"strings"

	"github.com/abhisek/wayhome/internal/level"
	"github.com/abhisek/wayhome/internal/matching"
	"github.com/abhisek/wayhome/internal/progression"
	"github.com/abhisek/wayhome/internal/ui/components"
	"github.com/abhisek/wayhome/internal/ui/theme"
)

// recentTransactions is how many ledger lines the dashboard shows.
const recentTransactions = 5

// RenderLevel renders the level line and progress bar for an XP total.
func RenderLevel(xp int, info level.Info, width int) string {
	name := theme.LevelColor(info.Level).Render(info.Level.DisplayName())
	line := fmt.Sprintf("%s  %s", name, theme.Body.Render(fmt.Sprintf("%d XP", xp)))
	if info.NextLevelXP != nil {
		line += theme.Hint.Render(fmt.Sprintf("  (%d XP to next level)", *info.NextLevelXP-xp))
	} else {
		line += theme.Hint.Render("  (top level)")
	}
	bar := components.NewProgressBar("Progress", info.ProgressPercent, true, width).View()
	return line + "\n" + bar
}

// RenderState renders the full progression dashboard.
func RenderState(s progression.State, termWidth int) string {
	cw := components.ContentWidth(termWidth)

	sections := []string{
		theme.Title.Render("Your journey"),
		components.Card("Level", []string{RenderLevel(s.XP, s.LevelInfo(), cw)}),
		components.Card("Wallet", walletLines(s.Wallet)),
		components.Card("Pathway", pathwayLines(s.PathwayNodes)),
	}
	if len(s.Wallet.Tasks) > 0 {
		sections = append(sections, components.Card("Tasks", taskLines(s.Wallet.Tasks)))
	}
	if len(s.SkillEntries) > 0 {
		sections = append(sections, components.Card("Skills", skillLines(s.SkillEntries)))
	}
	if len(s.Reminders) > 0 {
		sections = append(sections, components.Card("Reminders", reminderLines(s.Reminders)))
	}
	if len(s.Wallet.Transactions) > 0 {
		sections = append(sections, components.Card("Recent activity", transactionLines(s.Wallet.Transactions)))
	}
	return strings.Join(sections, "\n")
}

func walletLines(w progression.Wallet) []string {
	return []string{
		theme.Body.Render(fmt.Sprintf("Impact points: %d   Hours: %.1f", w.Points, w.Hours)),
		components.Badges(w.Badges),
	}
}

func pathwayLines(nodes []progression.PathwayNode) []string {
	if len(nodes) == 0 {
		return []string{theme.Hint.Render("no milestones")}
	}
	lines := make([]string, len(nodes))
	for i, n := range nodes {
		lines[i] = fmt.Sprintf("%s %s %s", statusMark(n.Status), theme.Body.Render(n.Title), theme.Hint.Render(string(n.Area)))
	}
	return lines
}

func statusMark(s progression.NodeStatus) string {
	switch s {
	case progression.NodeDone:
		return theme.Done.Render("[done]")
	case progression.NodeInProgress:
		return theme.InProgress.Render("[in progress]")
	default:
		return theme.UpNext.Render("[up next]")
	}
}

func taskLines(tasks []progression.Task) []string {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		if t.Status == progression.TaskCompleted {
			lines[i] = theme.Done.Render("[x] ") + theme.Body.Render(t.Title)
			continue
		}
		lines[i] = theme.UpNext.Render("[ ] ") + theme.Body.Render(t.Title)
	}
	return lines
}

func skillLines(skills []progression.SkillEntry) []string {
	lines := make([]string, len(skills))
	for i, s := range skills {
		lines[i] = theme.Body.Render(s.Title) + theme.Hint.Render(fmt.Sprintf("  %s, %s", s.Source, s.EarnedAt.Format("2006-01-02")))
	}
	return lines
}

func reminderLines(reminders []progression.Reminder) []string {
	lines := make([]string, len(reminders))
	for i, r := range reminders {
		due := "no due date"
		if r.DueAt != nil {
			due = "due " + r.DueAt.Format("2006-01-02 15:04")
		}
		lines[i] = theme.Body.Render(r.Title) + theme.Hint.Render("  "+due)
	}
	return lines
}

func transactionLines(txs []progression.Transaction) []string {
	n := min(len(txs), recentTransactions)
	lines := make([]string, n)
	for i, tx := range txs[:n] {
		lines[i] = fmt.Sprintf("%s %s", theme.Body.Render(tx.Label), theme.Hint.Render(fmt.Sprintf("+%d XP  %s", tx.XP, tx.Type)))
	}
	return lines
}

// RenderMatches renders ranked jobs with their score breakdown.
func RenderMatches(ranked []matching.Ranked) string {
	if len(ranked) == 0 {
		return theme.Hint.Render("No matching jobs.")
	}

	sections := []string{theme.Title.Render("Job matches")}
	for _, r := range ranked {
		res := r.Result
		title := r.Job.Title
		if r.Job.Employer != "" {
			title += " at " + r.Job.Employer
		}
		lines := []string{
			theme.ScoreStyle(res.MatchScore).Render(fmt.Sprintf("%d/100", res.MatchScore)) +
				theme.Hint.Render(fmt.Sprintf("  skills %d  language %d  qualification %d",
					res.Breakdown.SkillsMatch, res.Breakdown.LanguageMatch, res.Breakdown.QualificationMatch)),
			theme.Body.Render(res.Breakdown.Explanation),
		}
		if len(res.MissingSkills) > 0 {
			lines = append(lines, theme.Missing.Render("missing: "+strings.Join(res.MissingSkills, ", ")))
		}
		sections = append(sections, components.Card(title, lines))
	}
	return strings.Join(sections, "\n")
}
