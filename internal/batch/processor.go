// Package batch handles batch number resolution from stdin.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/hightemp/intltel/internal/config"
	"github.com/hightemp/intltel/internal/countries"
	"github.com/hightemp/intltel/internal/logger"
	"github.com/hightemp/intltel/internal/output"
	"github.com/hightemp/intltel/internal/resolver"
	"github.com/hightemp/intltel/internal/telinput"
)

// Processor resolves numbers one per line. Every line starts from the
// configured default selection; lines do not influence each other.
type Processor struct {
	catalog     []countries.Country
	opts        config.Options
	engine      *resolver.Engine
	logger      *log.Logger
	concurrency int
}

// NewProcessor creates a new batch processor over catalog. Placeholders are
// expected to be derived on catalog already and are not recomputed per line.
func NewProcessor(catalog []countries.Country, opts config.Options, engine *resolver.Engine, l *log.Logger) (*Processor, error) {
	opts.EnablePlaceholder = false
	if engine == nil {
		engine = resolver.NewEngine(nil, l)
	}
	p := &Processor{
		catalog:     catalog,
		opts:        opts,
		engine:      engine,
		logger:      logger.OrDiscard(l),
		concurrency: config.DefaultConcurrency,
	}
	// Fail early on options or catalogs no line could be resolved against.
	if _, err := p.newInput(); err != nil {
		return nil, err
	}
	return p, nil
}

// SetConcurrency sets the worker limit of ProcessInputConcurrent.
func (p *Processor) SetConcurrency(n int) {
	p.concurrency = config.ClampConcurrency(n)
}

func (p *Processor) newInput() (*telinput.Input, error) {
	return telinput.New(p.catalog, p.opts, p.engine, p.logger)
}

// Resolve resolves a single number from the default selection.
func (p *Processor) Resolve(raw string) *output.ResolveResult {
	result := &output.ResolveResult{Input: raw}

	in, err := p.newInput()
	if err != nil {
		result.Error = err.Error()
		return result
	}
	in.Activate()
	change := in.ChangeNumber(raw)

	selected := in.Selected()
	result.CountryCode = strings.ToUpper(selected.ISO2)
	result.CountryName = selected.Name
	result.Payload = change.Payload
	result.Valid = in.IsValid()
	return result
}

// ProcessInput reads numbers from r and writes results to w. Text output is
// streamed line by line; JSON and YAML are written once as a list.
func (p *Processor) ProcessInput(ctx context.Context, r io.Reader, w io.Writer, format output.Format) error {
	scanner := bufio.NewScanner(r)

	if format == output.FormatText {
		for scanner.Scan() {
			if err := ctx.Err(); err != nil {
				return err
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if _, err := fmt.Fprintln(w, p.Resolve(line).FormatText()); err != nil {
				return err
			}
		}
		return scanner.Err()
	}

	results := []*output.ResolveResult{}
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		results = append(results, p.Resolve(line))
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return writeBatch(w, results, format)
}

// ProcessInputConcurrent resolves numbers concurrently. Results keep input
// order.
func (p *Processor) ProcessInputConcurrent(ctx context.Context, r io.Reader, w io.Writer, format output.Format) error {
	lines, err := readLines(r)
	if err != nil {
		return err
	}

	results := make([]*output.ResolveResult, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, line := range lines {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = p.Resolve(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	p.logger.Debug("batch resolved", "lines", len(lines), "concurrency", p.concurrency)
	return writeBatch(w, results, format)
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func writeBatch(w io.Writer, results []*output.ResolveResult, format output.Format) error {
	batch := &output.BatchResult{Results: results}
	if format == output.FormatText && len(results) == 0 {
		return nil
	}
	text, err := batch.Render(format)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, text)
	return err
}
