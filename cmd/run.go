package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sbpo/datapoints/internal/api"
	"github.com/sbpo/datapoints/internal/models"
	"github.com/sbpo/datapoints/internal/output"
	"github.com/sbpo/datapoints/internal/store"
	"github.com/sbpo/datapoints/internal/suggest"
	"github.com/sbpo/datapoints/internal/undo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Run a script of operations against one session",
	Long: `Run a YAML script of operations in order against a single API client.
Nothing is kept between dp invocations, so scripts are how changes are
made from the command line.

Operations: create, update, remove, restore (alias undo), list, show.
IDs can be literal, "$name" for a record created with "as: name", or
"@N" for the record currently at position N (1-based).

Example script:
  steps:
    - op: create
      title: Groceries
      description: milk, eggs
      as: groceries
    - op: remove
      id: "@1"
    - op: undo
    - op: update
      id: $groceries
      title: Shopping
    - op: list`,
	GroupID: "core",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		noDelay, _ := cmd.Flags().GetBool("no-delay")
		keepGoing, _ := cmd.Flags().GetBool("keep-going")
		stats, _ := cmd.Flags().GetBool("stats")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		s, err := parseScript(data)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		var opts []api.Option
		if noDelay {
			opts = append(opts, api.WithLatency(0))
		}
		client, closeStore, err := openClient(opts...)
		if err != nil {
			return err
		}
		defer closeStore()

		r := newScriptRunner(client, undo.New(appCfg.UndoTTL), appCfg.PerPage, os.Stdout)
		r.keepGoing = keepGoing
		err = r.run(commandContext(cmd), s)
		if err == nil {
			output.Success("Ran %d steps", len(s.Steps))
		}
		if stats {
			fmt.Print(formatMetrics(client.Metrics()))
		}
		return err
	},
}

// Script operations
const (
	opCreate  = "create"
	opUpdate  = "update"
	opRemove  = "remove"
	opRestore = "restore"
	opUndo    = "undo"
	opList    = "list"
	opShow    = "show"
)

var scriptOps = []string{opCreate, opUpdate, opRemove, opRestore, opUndo, opList, opShow}

var errNothingToRestore = errors.New("nothing to restore")

// script is a sequence of operations run against one client
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

type scriptStep struct {
	Op          string        `yaml:"op"`
	ID          string        `yaml:"id,omitempty"`
	Title       string        `yaml:"title,omitempty"`
	Description string        `yaml:"description,omitempty"`
	As          string        `yaml:"as,omitempty"`   // name for the created record
	Page        int           `yaml:"page,omitempty"` // list only
	Wait        time.Duration `yaml:"wait,omitempty"` // pause before the step
}

// parseScript decodes and checks a script. Unknown fields are rejected.
func parseScript(data []byte) (script, error) {
	var s script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, errors.New("empty script")
		}
		return s, fmt.Errorf("parse script: %w", err)
	}

	var errs []error
	for i, st := range s.Steps {
		switch st.Op {
		case opCreate, opList, opRestore, opUndo:
		case opUpdate, opRemove, opShow:
			if st.ID == "" {
				errs = append(errs, fmt.Errorf("step %d: %s needs an id", i+1, st.Op))
			}
		default:
			errs = append(errs, fmt.Errorf("step %d: unknown op %q%s", i+1, st.Op, suggest.Hint(st.Op, scriptOps)))
		}
	}
	return s, errors.Join(errs...)
}

// scriptRunner executes script steps, keeping removed records in an undo
// buffer the way the monitor does
type scriptRunner struct {
	client    *api.Client
	undo      *undo.Buffer
	perPage   int
	out       io.Writer
	names     map[string]string
	keepGoing bool
}

func newScriptRunner(client *api.Client, buf *undo.Buffer, perPage int, out io.Writer) *scriptRunner {
	return &scriptRunner{
		client:  client,
		undo:    buf,
		perPage: perPage,
		out:     out,
		names:   make(map[string]string),
	}
}

func (r *scriptRunner) run(ctx context.Context, s script) error {
	var failed []error
	for i, st := range s.Steps {
		if st.Wait > 0 {
			if err := sleep(ctx, st.Wait); err != nil {
				return err
			}
		}
		logger.Debug("script step", zap.Int("step", i+1), zap.String("op", st.Op), zap.String("id", st.ID))

		if err := r.step(ctx, st); err != nil {
			err = fmt.Errorf("step %d (%s): %w", i+1, st.Op, err)
			if !r.keepGoing {
				return err
			}
			fmt.Fprintln(r.out, output.ErrorText(err.Error()))
			failed = append(failed, err)
		}
	}
	return errors.Join(failed...)
}

func (r *scriptRunner) step(ctx context.Context, st scriptStep) error {
	switch st.Op {
	case opCreate:
		rec, err := r.client.Create(ctx, models.Draft{Title: st.Title, Description: st.Description})
		if err != nil {
			return err
		}
		if st.As != "" {
			r.names[st.As] = rec.ID
		}
		fmt.Fprintf(r.out, "Added item %s\n", output.FormatRecordShort(rec, 0))
		return nil

	case opUpdate:
		id, err := r.resolveID(ctx, st.ID)
		if err != nil {
			return err
		}
		d, err := r.mergeDraft(ctx, id, st)
		if err != nil {
			return err
		}
		rec, err := r.client.Update(ctx, id, d)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "Updated item %s\n", output.FormatRecordShort(rec, 0))
		return nil

	case opRemove:
		id, err := r.resolveID(ctx, st.ID)
		if err != nil {
			return err
		}
		deleted, err := r.client.Remove(ctx, id)
		if err != nil {
			return err
		}
		entry := r.undo.Push(deleted)
		fmt.Fprintln(r.out, output.FormatDeleted(entry))
		return nil

	case opRestore, opUndo:
		return r.restore(ctx, st.ID)

	case opList:
		records, err := r.client.List(ctx)
		if err != nil {
			return err
		}
		page := pageOf(records, st.Page, r.perPage)
		for _, rec := range page.Records {
			fmt.Fprintln(r.out, output.FormatRecordShort(rec, 0))
		}
		if controls := output.PageControls(page.Page, page.Pages); controls != "" {
			fmt.Fprintln(r.out, controls)
		}
		return nil

	case opShow:
		id, err := r.resolveID(ctx, st.ID)
		if err != nil {
			return err
		}
		rec, err := r.client.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("error finding data: %w", err)
		}
		fmt.Fprint(r.out, output.FormatRecordLong(rec, output.IndentString(rec.Description, 2)))
		return nil
	}
	return fmt.Errorf("unknown op %q", st.Op)
}

// restore puts back the newest removed record, or the one named by ref.
// Entries past the undo TTL are dropped first.
func (r *scriptRunner) restore(ctx context.Context, ref string) error {
	for _, e := range r.undo.Expire(time.Now()) {
		logger.Debug("undo expired", zap.String("id", e.Record.ID))
	}

	var (
		entry models.DeletedRecord
		ok    bool
	)
	if ref == "" {
		if entry, ok = r.undo.Newest(); ok {
			r.undo.Take(entry.Record.ID)
		}
	} else {
		id, err := r.resolveName(ref)
		if err != nil {
			return err
		}
		entry, ok = r.undo.Take(id)
	}
	if !ok {
		return errNothingToRestore
	}

	rec, err := r.client.Restore(ctx, entry)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "Restored %s at position %d\n", output.FormatRecordShort(rec, 0), entry.Index)
	return nil
}

// resolveID turns a step reference into a record ID
func (r *scriptRunner) resolveID(ctx context.Context, ref string) (string, error) {
	if strings.HasPrefix(ref, "@") {
		n, err := strconv.Atoi(ref[1:])
		if err != nil {
			return "", fmt.Errorf("bad position %q", ref)
		}
		records, err := r.client.Snapshot(ctx)
		if err != nil {
			return "", err
		}
		if n < 1 || n > len(records) {
			return "", fmt.Errorf("position %d out of range (%d records)", n, len(records))
		}
		return records[n-1].ID, nil
	}
	return r.resolveName(ref)
}

// resolveName expands "$name" references; other strings are literal IDs
func (r *scriptRunner) resolveName(ref string) (string, error) {
	name, ok := strings.CutPrefix(ref, "$")
	if !ok {
		return ref, nil
	}
	id, found := r.names[name]
	if !found {
		return "", fmt.Errorf("unknown name %q", name)
	}
	return id, nil
}

// mergeDraft fills fields the step leaves empty from the current record.
// A partial update of a missing record fails with store.ErrNotFound.
func (r *scriptRunner) mergeDraft(ctx context.Context, id string, st scriptStep) (models.Draft, error) {
	d := models.Draft{Title: st.Title, Description: st.Description}
	if d.Title != "" && d.Description != "" {
		return d, nil
	}
	records, err := r.client.Snapshot(ctx)
	if err != nil {
		return d, err
	}
	i := slices.IndexFunc(records, func(rec models.Record) bool { return rec.ID == id })
	if i < 0 {
		return d, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if d.Title == "" {
		d.Title = records[i].Title
	}
	if d.Description == "" {
		d.Description = records[i].Description
	}
	return d, nil
}

// formatMetrics renders per-operation call counts
func formatMetrics(m api.MetricsSnapshot) string {
	var sb strings.Builder
	sb.WriteString(output.SectionHeader("API calls"))
	for _, op := range models.AllOps {
		c, ok := m.Ops[op.String()]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "  %-8s %3d calls  %d failed  %d cancelled\n", op, c.Calls, c.Failures, c.Cancelled)
	}
	if m.SharedLists > 0 {
		fmt.Fprintf(&sb, "  %d list calls shared a round trip\n", m.SharedLists)
	}
	return sb.String()
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("no-delay", false, "Skip the simulated latency")
	runCmd.Flags().Bool("keep-going", false, "Continue after a failed step")
	runCmd.Flags().Bool("stats", false, "Print API call counts when done")
}
