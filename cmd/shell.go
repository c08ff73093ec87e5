package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/nba-rankings/internal/config"
	"github.com/pable/nba-rankings/internal/model"
	"github.com/pable/nba-rankings/internal/report"
	"github.com/pable/nba-rankings/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cHeader   = color.New(color.FgCyan, color.Bold)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Tune weights and re-rank repeatedly without reloading the data. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func init() {
	addRankFlags(shellCmd)
}

// shellSession holds the state one REPL carries between commands. Datasets
// are loaded lazily per mode and kept for the session.
type shellSession struct {
	out  io.Writer
	base config.Config
	cfg  config.Config
	data map[mode]model.Dataset
}

func runShell(c *cobra.Command, _ []string) error {
	base, err := buildConfig(c, c.InOrStdin(), c.ErrOrStderr())
	if err != nil {
		return err
	}
	s := &shellSession{out: c.OutOrStdout(), base: base, cfg: base, data: map[mode]model.Dataset{}}

	cGreeting.Fprintln(s.out, "nbarank shell")
	cMuted.Fprintln(s.out, "type 'help' or 'exit'")
	fmt.Fprintln(s.out)

	s.loop(c.InOrStdin())
	return nil
}

func (s *shellSession) loop(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		cPrompt.Fprint(s.out, "nbarank")
		cMuted.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !s.exec(line) {
			return
		}
	}
}

// exec runs one shell line and reports whether the session continues.
func (s *shellSession) exec(line string) bool {
	tokens := strings.Fields(line)
	cmd, args := tokens[0], tokens[1:]

	switch cmd {
	case "exit", "quit":
		return false
	case "help":
		s.help()
	case "show":
		s.show()
	case "set":
		if len(args) != 2 {
			cError.Fprintln(s.out, "usage: set <stat> <weight>")
			break
		}
		s.set(args[0], args[1])
	case "top":
		if len(args) != 1 {
			cError.Fprintln(s.out, "usage: top <n>")
			break
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			cError.Fprintf(s.out, "error: %q is not a number\n", args[0])
			break
		}
		s.cfg.Top = n
	case "stints":
		if len(args) != 1 {
			cError.Fprintln(s.out, "usage: stints keep-all|merge")
			break
		}
		p, err := config.ParseStintPolicy(args[0])
		if err != nil {
			cError.Fprintf(s.out, "error: %v\n", err)
			break
		}
		s.cfg.Stints = p
	case "reset":
		s.cfg = s.base
		cMuted.Fprintln(s.out, "configuration reset")
	case "season":
		s.rank(modeSeason, args)
	case "career":
		s.rank(modeCareer, args)
	case "sql":
		if len(args) == 0 {
			cError.Fprintln(s.out, "usage: sql <query>")
			break
		}
		s.sql(strings.Join(args, " "))
	default:
		cWarn.Fprintf(s.out, "unknown command %q, type 'help'\n", cmd)
	}
	return true
}

func (s *shellSession) help() {
	fmt.Fprintln(s.out)
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"season [json|csv]", "rank player-seasons with the current weights"},
		{"career [json|csv]", "rank careers with the current weights"},
		{"set <stat> <weight>", "override one stat weight"},
		{"top <n>", "rows to show (0 = all)"},
		{"stints keep-all|merge", "how multi-team seasons are handled"},
		{"show", "print the configuration in effect"},
		{"reset", "restore the configuration the shell started with"},
		{"sql <query>", "run a raw query against the database"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Fprint(s.out, "  ")
		cCmd.Fprintf(s.out, "%-26s", r.cmd)
		fmt.Fprintln(s.out, r.desc)
	}
	fmt.Fprintln(s.out)
}

func (s *shellSession) show() {
	cHeader.Fprintf(s.out, "%-16s %s\n", "SETTING", "VALUE")
	for _, st := range model.AllStats {
		fmt.Fprintf(s.out, "%-16s %s\n", st, strconv.FormatFloat(s.cfg.Weights[st], 'g', -1, 64))
	}
	fmt.Fprintf(s.out, "%-16s %s\n", "triple_doubles", strconv.FormatFloat(s.cfg.TripleDoubleWeight, 'g', -1, 64))
	fmt.Fprintf(s.out, "%-16s %d\n", "top", s.cfg.Top)
	fmt.Fprintf(s.out, "%-16s %s\n", "stints", s.cfg.Stints)
}

func (s *shellSession) set(stat, value string) {
	var errs []config.ConfigError
	s.cfg, errs = s.cfg.WithOverrides(map[string]string{stat: value})
	for _, e := range errs {
		cWarn.Fprintf(s.out, "ignored: %v\n", e)
	}
}

func (s *shellSession) rank(m mode, args []string) {
	format := report.FormatTable
	if len(args) > 0 {
		f, err := report.ParseFormat(args[0])
		if err != nil {
			cError.Fprintf(s.out, "error: %v\n", err)
			return
		}
		format = f
	}

	ds, ok := s.data[m]
	if !ok {
		var err error
		ds, err = loadDataset(m)
		if err != nil {
			cError.Fprintf(s.out, "error: %v\n", err)
			return
		}
		s.data[m] = ds
	}
	if err := rank(s.out, m, ds, s.cfg, format); err != nil {
		cError.Fprintf(s.out, "error: %v\n", err)
	}
}

func (s *shellSession) sql(query string) {
	db, err := storage.Open(dbPath)
	if err != nil {
		cError.Fprintf(s.out, "error: %v\n", err)
		return
	}
	defer db.Close()
	if err := printQuery(s.out, db, query); err != nil {
		cError.Fprintf(s.out, "error: %v\n", err)
	}
}
