package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// executeCommand runs a fresh command tree with args and returns captured
// stdout and stderr.
func executeCommand(stdin string, args ...string) (string, string, error) {
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatal(err)
		}
		return path
	}
	qb := write("qb.txt", "Aaron Rodgers GB 520 4381 39 8 53 259 2 0 0 385.2\nJoe Flacco BAL 554 3986 27 12 39 70 2 1 0 240.4\n")
	te := write("te.txt", "Rob Gronkowski NE 120 82 1124 12 190.4\n")
	return write("draftkit.yaml", "budget: 100\nlog_level: debug\ndata_files:\n  qb: "+qb+"\n  te: "+te+"\n")
}

func TestRootCommand(t *testing.T) {
	Convey("Given the command tree", t, func() {
		root := NewRootCommand()

		Convey("Then it exposes the draft subcommands", func() {
			names := map[string]bool{}
			for _, c := range root.Commands() {
				names[c.Name()] = true
			}
			So(names["repl"], ShouldBeTrue)
			So(names["best-team"], ShouldBeTrue)
			So(names["lookup"], ShouldBeTrue)
			So(root.PersistentFlags().Lookup("config"), ShouldNotBeNil)
		})
	})

	Convey("Given a config file with data files", t, func() {
		cfg := writeConfig(t)

		Convey("When looking up a unique name", func() {
			out, errOut, err := executeCommand("", "lookup", "--config", cfg, "rodgers")

			Convey("Then the athlete is printed and logs go to stderr", func() {
				So(err, ShouldBeNil)
				So(out, ShouldContainSubstring, "Aaron Rodgers")
				So(out, ShouldContainSubstring, "QB")
				So(errOut, ShouldContainSubstring, "draft service started")
			})
		})

		Convey("When looking up an ambiguous pattern", func() {
			out, _, err := executeCommand("", "lookup", "-c", cfg, "o")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "3 athletes match")
		})

		Convey("When looking up an unknown name", func() {
			out, _, err := executeCommand("", "lookup", "-c", cfg, "Brady")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Athlete Brady not found")
		})

		Convey("When asking for the best team", func() {
			out, _, err := executeCommand("", "best-team", "-c", cfg, "--log-level", "error")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Season points:")
			So(out, ShouldContainSubstring, "of 100")
		})

		Convey("When committing the best team", func() {
			out, _, err := executeCommand("", "best-team", "-c", cfg, "--commit")
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Current team")
			So(out, ShouldContainSubstring, "Rob Gronkowski")
		})

		Convey("When running the REPL from stdin", func() {
			out, _, err := executeCommand("add gronk 20\nbudget\nquit\n", "repl", "-c", cfg)
			So(err, ShouldBeNil)
			So(out, ShouldContainSubstring, "Athlete Rob Gronkowski added")
			So(out, ShouldContainSubstring, "\n80\n")
		})

		Convey("When the log level flag is invalid", func() {
			_, _, err := executeCommand("", "lookup", "-c", cfg, "--log-level", "loud", "x")
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a missing config file", t, func() {
		_, _, err := executeCommand("", "lookup", "-c", filepath.Join(t.TempDir(), "none.yaml"), "x")
		So(err, ShouldNotBeNil)
	})

	Convey("Given lookup without a pattern", t, func() {
		_, _, err := executeCommand("", "lookup")
		So(err, ShouldNotBeNil)
	})
}
