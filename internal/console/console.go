// Package console is the line-oriented command surface of the terminal client.
// A line starting with "/" is a command; any other line is the new value of the
// amount field.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"VexlConverter/internal/converter"
	"VexlConverter/internal/currency"
	"VexlConverter/internal/eventloop"
	"VexlConverter/internal/history"
	"VexlConverter/internal/model"
	"VexlConverter/internal/view"
)

// Backend is the part of the rate client the console queries directly.
type Backend interface {
	Health(ctx context.Context) (*model.Health, error)
	Currencies(ctx context.Context) ([]string, error)
}

const helpText = `Commands:
  <amount>          type a new amount (empty line clears)
  /unit             switch between BTC and satoshis
  /add CODE         add a currency (see /currencies)
  /rm CODE          remove a currency
  /currencies       list currencies that can be added
  /history          show the rate history
  /refresh          refresh the rate history now
  /chart usd|eur [FILE]  render the history chart as SVG
  /focus, /blur     give or take focus from the amount field
  /select START END select part of the amount field
  /health           check the backend
  /help             show this help
  /quit             exit`

// Console dispatches terminal lines to the pipeline and the history poller.
type Console struct {
	Ctx      context.Context
	Pipeline *converter.Pipeline
	History  *history.Poller
	Backend  Backend
	Loop     *eventloop.Loop
	Field    *converter.Field

	mu      sync.Mutex
	out     io.Writer
	lastSeq uint64
	lastSt  converter.State
}

// New creates a console that writes its output to out.
func New(ctx context.Context, p *converter.Pipeline, h *history.Poller, b Backend, loop *eventloop.Loop, field *converter.Field, out io.Writer) *Console {
	return &Console{Ctx: ctx, Pipeline: p, History: h, Backend: b, Loop: loop, Field: field, out: out}
}

// Run reads lines from in until EOF, /quit or ctx cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
		close(lines)
	}()

	c.Print(helpText)
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("read input: %w", err)
				}
				return nil
			}
			reply, quit := c.HandleLine(line)
			if reply != "" {
				c.Print(reply)
			}
			if quit {
				return nil
			}
		}
	}
}

// Print writes one block of output.
func (c *Console) Print(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, strings.TrimRight(text, "\n"))
}

// OnConverterChange prints the converter panel once per completed round trip.
// It is registered as the pipeline's render hook.
func (c *Console) OnConverterChange(s converter.Snapshot) {
	if s.State != converter.StateApplied && s.State != converter.StateFailed {
		return
	}
	c.mu.Lock()
	if s.Seq == c.lastSeq && s.State == c.lastSt {
		c.mu.Unlock()
		return
	}
	c.lastSeq, c.lastSt = s.Seq, s.State
	c.mu.Unlock()
	c.Print(view.FormatConverter(s))
}

// OnHistoryChange prints the history panel after a timer-driven poll.
func (c *Console) OnHistoryChange(p history.Panel) {
	c.Print(view.FormatHistory(p))
}

// HandleLine processes one line and returns the reply and whether to exit.
func (c *Console) HandleLine(line string) (string, bool) {
	if !strings.HasPrefix(line, "/") {
		if !c.Pipeline.Type(strings.TrimSpace(line)) {
			return fmt.Sprintf("Rejected input %q for unit %s", line, c.Pipeline.Snapshot().Unit), false
		}
		return "", false
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "/unit":
		unit := c.Pipeline.ToggleUnit()
		log.Printf("[INFO] unit switched to %s", unit)
		return view.FormatConverter(c.Pipeline.Snapshot()), false
	case "/add":
		if len(args) != 1 {
			return "Usage: /add CODE", false
		}
		if err := c.Pipeline.AddCurrency(args[0]); err != nil {
			return addError(args[0], err), false
		}
		return view.FormatConverter(c.Pipeline.Snapshot()), false
	case "/rm":
		if len(args) != 1 {
			return "Usage: /rm CODE", false
		}
		if !c.Pipeline.RemoveCurrency(args[0]) {
			return fmt.Sprintf("%s is not selected", strings.ToUpper(args[0])), false
		}
		return view.FormatConverter(c.Pipeline.Snapshot()), false
	case "/currencies":
		return view.FormatPicker(c.Pipeline.Snapshot().Available), false
	case "/history":
		return view.FormatHistory(c.History.Panel()), false
	case "/refresh":
		return c.refreshHistory(), false
	case "/chart":
		return c.chart(args), false
	case "/focus", "/blur":
		c.Loop.Call(func() {
			if cmd == "/focus" {
				c.Field.Focus()
			} else {
				c.Field.Blur()
			}
		})
		return c.fieldState(), false
	case "/select":
		return c.selectRange(args), false
	case "/health":
		return c.health(), false
	case "/quit", "/exit":
		return "Bye.", true
	default:
		return helpText, false
	}
}

func addError(code string, err error) string {
	switch {
	case errors.Is(err, currency.ErrUnknownCurrency):
		return fmt.Sprintf("Unknown currency %s, see /currencies", strings.ToUpper(code))
	case errors.Is(err, currency.ErrAlreadySelected):
		return fmt.Sprintf("%s is already selected", strings.ToUpper(code))
	default:
		return fmt.Sprintf("Add %s failed: %v", strings.ToUpper(code), err)
	}
}

func (c *Console) refreshHistory() string {
	if c.History.Panel().Refreshing {
		return "History refresh already in progress"
	}
	go func() {
		if err := c.History.Refresh(c.Ctx); err != nil {
			if errors.Is(err, history.ErrRefreshInFlight) {
				c.Print("History refresh already in progress")
				return
			}
			log.Printf("[ERROR] refresh history: %v", err)
			return
		}
		c.Print(view.FormatHistory(c.History.Panel()))
	}()
	return "Refreshing history..."
}

func (c *Console) chart(args []string) string {
	if len(args) < 1 || len(args) > 2 {
		return "Usage: /chart usd|eur [FILE]"
	}
	var pair model.Pair
	var color string
	switch strings.ToLower(args[0]) {
	case "usd":
		pair, color = model.PairUSD, view.ColorUSD
	case "eur":
		pair, color = model.PairEUR, view.ColorEUR
	default:
		return "Usage: /chart usd|eur [FILE]"
	}

	svg := view.RenderChartSVG(c.History.Panel().Records, pair, string(pair), color)
	if len(args) == 1 {
		return svg
	}
	if err := os.WriteFile(args[1], []byte(svg), 0o644); err != nil {
		log.Printf("[ERROR] write chart: %v", err)
		return fmt.Sprintf("Could not write %s: %v", args[1], err)
	}
	return fmt.Sprintf("%s chart written to %s", pair, args[1])
}

func (c *Console) selectRange(args []string) string {
	if len(args) != 2 {
		return "Usage: /select START END"
	}
	start, err1 := strconv.Atoi(args[0])
	end, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return "Usage: /select START END"
	}
	c.Loop.Call(func() { c.Field.SetSelection(start, end) })
	return c.fieldState()
}

func (c *Console) fieldState() string {
	var focused bool
	var start, end int
	var value string
	c.Loop.Call(func() {
		focused = c.Field.Focused()
		start, end = c.Field.Selection()
		value = c.Field.Value()
	})
	state := "blurred"
	if focused {
		state = "focused"
	}
	return fmt.Sprintf("Field %s, value %q, selection %d..%d", state, value, start, end)
}

func (c *Console) health() string {
	h, err := c.Backend.Health(c.Ctx)
	if err != nil {
		log.Printf("[WARN] health check: %v", err)
		return "Backend unavailable"
	}
	if !h.Healthy() {
		return fmt.Sprintf("Backend reports status %q", h.Status)
	}
	reply := fmt.Sprintf("Backend healthy (version %s)", h.Version)
	codes, err := c.Backend.Currencies(c.Ctx)
	if err != nil {
		log.Printf("[WARN] fetch currencies: %v", err)
		return reply
	}
	return reply + "\nSupported currencies: " + strings.Join(codes, ", ")
}
