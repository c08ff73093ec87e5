package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pable/nba-rankings/internal/config"
	"github.com/pable/nba-rankings/internal/model"
)

// promptWeights asks for each stat weight in display order. An empty answer
// keeps the current value; an invalid one is reported and also keeps it.
// Reading stops quietly at end of input.
func promptWeights(in io.Reader, out io.Writer, cfg config.Config) config.Config {
	scanner := bufio.NewScanner(in)
	for _, st := range model.AllStats {
		cPrompt.Fprintf(out, "Weight for %s ", st)
		cMuted.Fprintf(out, "(default = %s): ", strconv.FormatFloat(cfg.Weights[st], 'g', -1, 64))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			break
		}
		var errs []config.ConfigError
		cfg, errs = cfg.WithOverrides(map[string]string{st.String(): scanner.Text()})
		for _, e := range errs {
			cWarn.Fprintf(out, "Invalid input %q (%s). Using %s.\n",
				e.Value, e.Reason, strconv.FormatFloat(cfg.Weights[st], 'g', -1, 64))
		}
	}
	return cfg
}
