package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/FLFTraining/TLC-Dashboard/internal/report"
)

const shellPrompt = "tlcdash> "

var errQuit = errors.New("quit")

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Explore the report interactively",
	Long: `Start an interactive session over the loaded export. The full dataset is
read once; every apply recomputes all views from it.

Commands:
  apply [--start D] [--end D] [--department X] [--name Y]
                      replace the active filter and show the KPIs
  reset               clear the filter
  show <view>         print kpi, summary, courses, departments or individuals
  departments         list department names
  help                show this help
  quit                leave the shell`,
	RunE: runShell,
}

func runShell(cmd *cobra.Command, args []string) error {
	w, err := loadWorkspace(cmd)
	if err != nil {
		return err
	}

	s, err := w.newSession()
	if err != nil {
		return err
	}

	sh := &shell{session: s, display: w.display(), out: cmd.OutOrStdout()}
	return sh.run(cmd.InOrStdin())
}

// shell is one interactive session bound to a report session.
type shell struct {
	session *report.Session
	display display
	out     io.Writer
}

func (sh *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(sh.out, shellPrompt)
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}

		err := sh.exec(scanner.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
}

// exec runs a single command line.
func (sh *shell) exec(line string) error {
	words, err := shellwords.Parse(line)
	if err != nil {
		return fmt.Errorf("failed to parse command: %w", err)
	}
	if len(words) == 0 {
		return nil
	}

	switch name, args := words[0], words[1:]; name {
	case "apply":
		return sh.apply(args)
	case "reset":
		snap, err := sh.session.Reset()
		if err != nil {
			return err
		}
		renderKPI(sh.out, snap, sh.display)
		return nil
	case "show":
		return sh.show(args)
	case "departments":
		for _, d := range sh.session.Departments() {
			fmt.Fprintln(sh.out, d)
		}
		return nil
	case "help", "?":
		sh.help()
		return nil
	case "quit", "exit":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q (try help)", name)
	}
}

func (sh *shell) apply(args []string) error {
	var f filterFlags
	fs := pflag.NewFlagSet("apply", pflag.ContinueOnError)
	fs.SetOutput(sh.out)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	c, err := f.criteria()
	if err != nil {
		return err
	}

	snap, err := sh.session.ApplyFilter(c)
	if err != nil {
		return err
	}
	renderKPI(sh.out, snap, sh.display)
	return nil
}

func (sh *shell) show(args []string) error {
	name := "summary"
	if len(args) > 0 {
		name = strings.ToLower(args[0])
	}

	render, ok := views[name]
	if !ok {
		return fmt.Errorf("unknown view %q (one of %s)", name, strings.Join(viewNames(), ", "))
	}

	snap, err := sh.session.Snapshot()
	if err != nil {
		return err
	}
	render(sh.out, snap, sh.display)
	return nil
}

func (sh *shell) help() {
	fmt.Fprintln(sh.out, "Commands:")
	fmt.Fprintln(sh.out, "  apply [--start D] [--end D] [--department X] [--name Y]")
	fmt.Fprintln(sh.out, "  reset")
	fmt.Fprintf(sh.out, "  show <%s>\n", strings.Join(viewNames(), "|"))
	fmt.Fprintln(sh.out, "  departments")
	fmt.Fprintln(sh.out, "  help")
	fmt.Fprintln(sh.out, "  quit")
}

func viewNames() []string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
