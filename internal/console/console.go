// Package console implements the line-oriented operator console.
package console

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/gobwas/glob"

	"github.com/Brownie44l1/simplehttp/internal/stats"
)

const help = `Commands:
  stop            stop the server
  help            show this help
  reqs            number of requests received
  paths [glob]    hits per request path
  errors [glob]   hits per missing file
`

// Console reads commands from in and writes the answers to out.
type Console struct {
	in      io.Reader
	out     io.Writer
	tracker *stats.Tracker
	stop    func() error
}

// New creates a console. stop is called for the "stop" command.
func New(in io.Reader, out io.Writer, tracker *stats.Tracker, stop func() error) *Console {
	return &Console{
		in:      in,
		out:     out,
		tracker: tracker,
		stop:    stop,
	}
}

// Run processes commands until "stop" succeeds or the input ends. It returns
// nil after a stop and io.EOF when the input ended first.
func (c *Console) Run() error {
	fmt.Fprint(c.out, "Server started. ", help)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		stopped, err := c.Exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
			continue
		}
		if stopped {
			return nil
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read console: %w", err)
	}

	return io.EOF
}

// Exec runs one command line. It reports whether the server was stopped.
func (c *Console) Exec(line string) (bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "stop":
		if err := c.stop(); err != nil {
			return false, err
		}
		fmt.Fprintln(c.out, "server stopped")
		return true, nil
	case "help":
		fmt.Fprint(c.out, help)
	case "reqs":
		fmt.Fprintf(c.out, "total requests: %d\n", c.tracker.TotalRequests())
	case "paths":
		return false, c.printCounts(c.tracker.PathHits(), args)
	case "errors":
		return false, c.printCounts(c.tracker.MissingPathHits(), args)
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}

	return false, nil
}

func (c *Console) printCounts(counts map[string]int64, args []string) error {
	var g glob.Glob
	if len(args) > 0 {
		var err error
		g, err = glob.Compile(args[0])
		if err != nil {
			return fmt.Errorf("invalid pattern %q: %w", args[0], err)
		}
	}

	tw := tabwriter.NewWriter(c.out, 0, 8, 2, ' ', 0)
	for _, key := range slices.Sorted(maps.Keys(counts)) {
		if g != nil && !g.Match(key) {
			continue
		}
		fmt.Fprintf(tw, "%s\t%d\n", key, counts[key])
	}

	return tw.Flush()
}
