package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	service "github.com/okian/draftkit/internal/app"
	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/internal/domain/optimizer"
)

// printer renders command output. Colors follow the capabilities of the
// writer, so redirected output is plain text.
type printer struct {
	w      io.Writer
	header lipgloss.Style
	note   lipgloss.Style
	warn   lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		note:   r.NewStyle().Faint(true),
		warn:   r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (p *printer) headline(format string, args ...any) {
	fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf(format, args...)))
}

func (p *printer) say(format string, args ...any) {
	fmt.Fprintf(p.w, "> "+format+"\n", args...)
}

func (p *printer) fail(format string, args ...any) {
	fmt.Fprintln(p.w, p.warn.Render(fmt.Sprintf("> "+format, args...)))
}

func (p *printer) hint(s string) {
	fmt.Fprintln(p.w, p.note.Render(s))
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (p *printer) athletes(as []model.Athlete) {
	t := table.New().Headers("NAME", "POS", "TEAM", "COST", "POINTS")
	for _, a := range as {
		t.Row(a.Name, string(a.Category), a.Team, num(a.Cost), num(a.Points))
	}
	fmt.Fprintln(p.w, t.Render())
}

// choices lists candidates numbered from 1.
func (p *printer) choices(as []model.Athlete) {
	p.say("Multiple athletes found:")
	for i, a := range as {
		p.say(" %d %s %s %s", i+1, a.Name, a.Category, a.Team)
	}
}

func (p *printer) roster(v service.RosterView) {
	p.headline("Current team")
	t := table.New().Headers("NAME", "POS", "PRICE", "POINTS")
	for _, pk := range v.Picks {
		t.Row(pk.Athlete.Name, string(pk.Athlete.Category), num(pk.Price), num(pk.Athlete.Points))
	}
	fmt.Fprintln(p.w, t.Render())
	p.say("Points: %s  Spent: %s  Remaining: %s", num(v.Points), num(v.Spent), num(v.Remaining))
}

func (p *printer) solution(sol optimizer.Solution) {
	p.headline("Best team")
	p.say("Season points: %s", num(sol.Points))
	p.say("Team (name, position, cost, season points):")
	p.athletes(sol.Team)
	p.say("Added cost: %s of %d", num(sol.AddedCost), sol.Budget)
}
