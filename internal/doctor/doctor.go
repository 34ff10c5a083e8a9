// Package doctor runs health checks over midori's deck and stored files.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/deeklead/midori/internal/style"
)

// ErrCannotFix is returned by checks that have no automatic fix.
var ErrCannotFix = errors.New("check cannot be fixed automatically")

// Status is the outcome of a check.
type Status int

const (
	StatusOK Status = iota
	StatusWarning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusWarning:
		return "warning"
	default:
		return "error"
	}
}

// Category groups checks in the report.
type Category string

const (
	CategoryCore   Category = "Core"
	CategoryConfig Category = "Configuration"
	CategoryData   Category = "Data"
)

// CheckContext carries what checks need to locate midori's files.
type CheckContext struct {
	Context   context.Context
	ConfigDir string
	StateDir  string
	Verbose   bool
}

func (c *CheckContext) ctx() context.Context {
	if c.Context == nil {
		return context.Background()
	}
	return c.Context
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	Name     string
	Category Category
	Status   Status
	Message  string
	Details  []string
	FixHint  string
	Fixed    bool
}

// Check is a single health check.
type Check interface {
	Name() string
	Description() string
	Category() Category
	Run(ctx *CheckContext) *CheckResult
	CanFix() bool
	Fix(ctx *CheckContext) error
}

// BaseCheck provides the metadata half of Check.
type BaseCheck struct {
	CheckName        string
	CheckDescription string
	CheckCategory    Category
}

func (b *BaseCheck) Name() string        { return b.CheckName }
func (b *BaseCheck) Description() string { return b.CheckDescription }
func (b *BaseCheck) Category() Category  { return b.CheckCategory }
func (b *BaseCheck) CanFix() bool        { return false }

// Fix reports that the check has no fix.
func (b *BaseCheck) Fix(*CheckContext) error { return ErrCannotFix }

// FixableCheck is embedded by checks that implement Fix.
type FixableCheck struct {
	BaseCheck
}

func (f *FixableCheck) CanFix() bool { return true }

// Summary counts results by status.
type Summary struct {
	OK       int
	Warnings int
	Errors   int
	Fixed    int
}

// Report is the outcome of a doctor run.
type Report struct {
	Checks  []*CheckResult
	Summary Summary
}

func (r *Report) add(res *CheckResult) {
	r.Checks = append(r.Checks, res)
	switch res.Status {
	case StatusOK:
		r.Summary.OK++
	case StatusWarning:
		r.Summary.Warnings++
	default:
		r.Summary.Errors++
	}
	if res.Fixed {
		r.Summary.Fixed++
	}
}

// HasErrors reports whether any check failed.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// Print writes the report. Details are shown for failing checks, or for
// every check when verbose is set.
func (r *Report) Print(w io.Writer, verbose bool) {
	var current Category
	for _, res := range r.Checks {
		if res.Category != current {
			if current != "" {
				fmt.Fprintln(w)
			}
			current = res.Category
			fmt.Fprintf(w, "%s\n", style.Bold.Render(string(current)))
		}

		prefix := style.SuccessPrefix
		switch res.Status {
		case StatusWarning:
			prefix = style.WarningPrefix
		case StatusError:
			prefix = style.ErrorPrefix
		}
		line := fmt.Sprintf("  %s %-12s %s", prefix, res.Name, res.Message)
		if res.Fixed {
			line += style.Success.Render(" (fixed)")
		}
		fmt.Fprintln(w, line)

		if verbose || res.Status != StatusOK {
			for _, d := range res.Details {
				fmt.Fprintf(w, "      %s\n", style.Dim.Render(d))
			}
		}
		if res.Status != StatusOK && res.FixHint != "" {
			fmt.Fprintf(w, "      %s %s\n", style.ArrowPrefix, res.FixHint)
		}
	}

	fmt.Fprintf(w, "\n%d ok, %d warnings, %d errors", r.Summary.OK, r.Summary.Warnings, r.Summary.Errors)
	if r.Summary.Fixed > 0 {
		fmt.Fprintf(w, ", %d fixed", r.Summary.Fixed)
	}
	fmt.Fprintln(w)
}

// Doctor runs registered checks in order.
type Doctor struct {
	checks []Check
}

// NewDoctor returns a doctor with no checks.
func NewDoctor() *Doctor {
	return &Doctor{}
}

// Register adds a check.
func (d *Doctor) Register(c Check) {
	d.checks = append(d.checks, c)
}

// RegisterAll adds several checks.
func (d *Doctor) RegisterAll(checks ...Check) {
	for _, c := range checks {
		d.Register(c)
	}
}

// Checks returns the registered checks.
func (d *Doctor) Checks() []Check {
	return d.checks
}

// Run executes every check.
func (d *Doctor) Run(ctx *CheckContext) *Report {
	report := &Report{}
	for _, c := range d.checks {
		report.add(d.run(c, ctx))
	}
	return report
}

// Fix executes every check and applies the fix of each fixable check that
// did not pass, then runs that check again.
func (d *Doctor) Fix(ctx *CheckContext) *Report {
	report := &Report{}
	for _, c := range d.checks {
		res := d.run(c, ctx)
		if res.Status != StatusOK && c.CanFix() {
			if err := c.Fix(ctx); err != nil {
				res.Details = append(res.Details, "fix failed: "+err.Error())
			} else {
				res = d.run(c, ctx)
				res.Fixed = res.Status == StatusOK
			}
		}
		report.add(res)
	}
	return report
}

func (d *Doctor) run(c Check, ctx *CheckContext) *CheckResult {
	res := c.Run(ctx)
	if res.Name == "" {
		res.Name = c.Name()
	}
	res.Category = c.Category()
	return res
}
