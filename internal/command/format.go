package command

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ryanuber/columnize"

	"github.com/teenjuna/lifo/internal/simulate"
	"github.com/teenjuna/lifo/internal/sqlite"
)

const resultHeader = "Policy|Pushes|Pops|Size|Capacity|Grows|Copied|Duration"

func formatResults(results []simulate.Result) string {
	rows := make([]string, 0, len(results)+1)
	rows = append(rows, resultHeader)
	for _, r := range results {
		rows = append(rows, formatResult(r))
	}
	return formatList(rows)
}

func formatRuns(runs []sqlite.Run) string {
	rows := make([]string, 0, len(runs)+1)
	rows = append(rows, "Run|Ran At|"+resultHeader)
	for _, run := range runs {
		for _, r := range run.Results {
			rows = append(rows, fmt.Sprintf(
				"%s|%s|%s",
				run.ID,
				run.RanAt.Format(time.RFC3339),
				formatResult(r),
			))
		}
	}
	return formatList(rows)
}

func formatResult(r simulate.Result) string {
	return fmt.Sprintf(
		"%s|%s|%s|%s|%s|%s|%s|%s",
		r.Policy,
		humanize.Comma(int64(r.Pushes)),
		humanize.Comma(int64(r.Pops)),
		humanize.Comma(int64(r.Size)),
		humanize.Comma(int64(r.Capacity)),
		humanize.Comma(int64(r.Grows)),
		humanize.Comma(int64(r.Copied)),
		r.Duration.Round(time.Microsecond),
	)
}

// formatList takes a set of strings and formats them into properly aligned output, replacing
// any blank fields with a placeholder.
func formatList(in []string) string {
	columnConf := columnize.DefaultConfig()
	columnConf.Empty = "<none>"
	return columnize.Format(in, columnConf)
}
