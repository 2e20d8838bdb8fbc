package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	service "github.com/okian/draftkit/internal/app"
	"github.com/okian/draftkit/internal/domain/draft"
	"github.com/okian/draftkit/internal/domain/model"
	"github.com/okian/draftkit/internal/domain/optimizer"
)

// Drafter is the draft surface the REPL drives.
type Drafter interface {
	Roster(ctx context.Context) (service.RosterView, error)
	AddByName(ctx context.Context, name string, price float64) (draft.Outcome, error)
	Add(ctx context.Context, id uuid.UUID, price float64) (draft.Outcome, error)
	RemoveByName(ctx context.Context, name string) (draft.Outcome, error)
	Remove(ctx context.Context, id uuid.UUID) (draft.Outcome, error)
	BestTeam(ctx context.Context) (optimizer.Solution, error)
}

const prompt = `What to do? ("help" for help)`

// REPL reads draft commands line by line until quit or end of input.
type REPL struct {
	d   Drafter
	in  *bufio.Scanner
	out *printer
}

// NewREPL builds a REPL reading from in and writing to out.
func NewREPL(d Drafter, in io.Reader, out io.Writer) *REPL {
	return &REPL{d: d, in: bufio.NewScanner(in), out: newPrinter(out)}
}

// Run processes commands until quit, end of input or ctx is done.
// Only read failures and service errors that make the draft unusable end
// the loop with an error.
func (r *REPL) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.out.hint(prompt)
		line, ok := r.readLine()
		if !ok {
			return r.in.Err()
		}
		quit, err := r.exec(ctx, line)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

func (r *REPL) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(r.in.Text()), true
}

func (r *REPL) exec(ctx context.Context, line string) (bool, error) {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "quit", "exit":
		return true, nil
	case "":
		return false, nil
	case "best_team":
		sol, err := r.d.BestTeam(ctx)
		if err != nil {
			r.out.fail("best team failed: %v", err)
			return false, nil
		}
		r.out.solution(sol)
	case "team":
		v, err := r.d.Roster(ctx)
		if err != nil {
			return false, err
		}
		r.out.roster(v)
	case "budget":
		v, err := r.d.Roster(ctx)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(r.out.w, num(v.Remaining))
	case "add":
		r.add(ctx, rest)
	case "rm":
		r.remove(ctx, rest)
	default:
		r.help()
	}
	return false, nil
}

func (r *REPL) help() {
	for _, l := range []string{
		"add <athlete> <cost>",
		"rm <athlete>",
		"team",
		"best_team",
		"budget",
		"quit",
	} {
		r.out.say("%s", l)
	}
}

// add handles "add <name> <price>". The price is the last token so names
// may contain spaces.
func (r *REPL) add(ctx context.Context, args string) {
	i := strings.LastIndexAny(args, " \t")
	if i < 0 {
		r.out.fail("usage: add <athlete> <cost>")
		return
	}
	name, raw := strings.TrimSpace(args[:i]), args[i+1:]
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.out.fail("cost must be a number")
		return
	}

	out, err := r.d.AddByName(ctx, name, price)
	if err != nil {
		r.out.fail("could not add %s: %v", name, err)
		return
	}
	if out.Status == draft.StatusAmbiguous {
		a, ok := r.choose(out.Matches)
		if !ok {
			return
		}
		if out, err = r.d.Add(ctx, a.ID, price); err != nil {
			r.out.fail("could not add %s: %v", a.Name, err)
			return
		}
	}
	r.report(out, name, "add", "added")
}

// remove handles "rm <name>". Names resolve against the roster.
func (r *REPL) remove(ctx context.Context, name string) {
	if name == "" {
		r.out.fail("usage: rm <athlete>")
		return
	}
	out, err := r.d.RemoveByName(ctx, name)
	if err != nil {
		r.out.fail("could not remove %s: %v", name, err)
		return
	}
	if out.Status == draft.StatusAmbiguous {
		a, ok := r.choose(out.Matches)
		if !ok {
			return
		}
		if out, err = r.d.Remove(ctx, a.ID); err != nil {
			r.out.fail("could not remove %s: %v", a.Name, err)
			return
		}
	}
	r.report(out, name, "remove", "removed")
}

func (r *REPL) report(out draft.Outcome, name, verb, done string) {
	switch out.Status {
	case draft.StatusOK:
		r.out.say("Athlete %s %s", out.Athlete.Name, done)
	case draft.StatusNotFound:
		r.out.fail("Athlete %s not found", name)
	default:
		r.out.fail("Could not %s %s: %s", verb, name, out.Reason)
	}
}

// choose asks for a 1-based index until one is valid. End of input cancels.
func (r *REPL) choose(matches []model.Athlete) (model.Athlete, bool) {
	r.out.choices(matches)
	for {
		r.out.hint("Which one?")
		line, ok := r.readLine()
		if !ok {
			return model.Athlete{}, false
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(matches) {
			return matches[n-1], true
		}
	}
}
