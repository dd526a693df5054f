// Package audit runs the carrier billing checks over one export and assembles
// the findings, summary and advisory views.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/freight-audit/internal/classification"
	"github.com/Veraticus/freight-audit/internal/duplicates"
	"github.com/Veraticus/freight-audit/internal/latedelivery"
	"github.com/Veraticus/freight-audit/internal/misccharges"
	"github.com/Veraticus/freight-audit/internal/model"
	"github.com/Veraticus/freight-audit/internal/residential"
	"github.com/Veraticus/freight-audit/internal/surcharges"
)

// FindingDetector is a main-audit check over the main-audit pool.
type FindingDetector interface {
	Detect(ctx context.Context, table *model.Table) ([]model.Finding, error)
}

// MiscDetector produces the advisory misc-charge views.
type MiscDetector interface {
	Detect(ctx context.Context, table *model.Table) (misccharges.Views, error)
}

// Result is the output of one audit run.
type Result struct {
	AuditDate        time.Time
	MiscErr          error
	ID               string
	Findings         []model.Finding
	Actionable       []model.Finding
	Residential      []residential.Shipment
	MainAudit        []model.Record
	Misc             misccharges.Views
	Summary          Summary
	TotalShipments   int
	ResidentialCount int
	MainAuditCount   int
}

// Engine holds the detectors compiled for one configuration. It is safe for
// concurrent use; Run never mutates the engine or its input.
type Engine struct {
	residential *residential.Classifier
	misc        MiscDetector
	now         func() time.Time
	detectors   []namedDetector
	priority    PriorityThresholds
}

type namedDetector struct {
	detector FindingDetector
	name     string
}

// New builds an engine from cfg.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rules := cfg.SurchargeRules
	if len(rules) == 0 {
		rules = classification.DefaultSurchargeRules()
	}
	canon, err := classification.NewCanonicalizer(rules)
	if err != nil {
		return nil, fmt.Errorf("failed to build surcharge canonicalizer: %w", err)
	}

	indicators := append(classification.DefaultBusinessIndicators(), cfg.BusinessIndicators...)
	abbreviations := append(classification.DefaultBusinessAbbreviations(), cfg.BusinessAbbreviations...)
	matcher, err := classification.NewBusinessMatcher(indicators, abbreviations)
	if err != nil {
		return nil, fmt.Errorf("failed to build business matcher: %w", err)
	}

	return &Engine{
		residential: residential.New(cfg.ResidentialPatterns, matcher),
		detectors: []namedDetector{
			{name: "late delivery", detector: latedelivery.New()},
			{name: "duplicate tracking", detector: duplicates.New()},
			{name: "disputable surcharge", detector: surcharges.New(canon, matcher, cfg.Thresholds)},
		},
		misc:     misccharges.New(),
		priority: cfg.Priority,
		now:      time.Now,
	}, nil
}

// Run audits one table.
func (e *Engine) Run(ctx context.Context, table *model.Table) (*Result, error) {
	if table == nil {
		table = &model.Table{}
	}

	split := e.residential.Split(table)
	main := table.WithRows(split.Main)

	perDetector := make([][]model.Finding, len(e.detectors))
	g, gctx := errgroup.WithContext(ctx)
	for i, nd := range e.detectors {
		g.Go(func() error {
			findings, err := nd.detector.Detect(gctx, main)
			if err != nil {
				return fmt.Errorf("%s check failed: %w", nd.name, err)
			}
			perDetector[i] = findings
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var findings []model.Finding
	for _, f := range perDetector {
		findings = append(findings, f...)
	}

	views, miscErr := e.runMisc(ctx, table)

	result := &Result{
		ID:               uuid.NewString(),
		AuditDate:        e.now(),
		Findings:         findings,
		Residential:      split.Residential,
		MainAudit:        split.Main,
		TotalShipments:   table.Len(),
		ResidentialCount: len(split.Residential),
		MainAuditCount:   len(split.Main),
		Misc:             views,
		MiscErr:          miscErr,
		Summary:          Summarize(split.Main, findings),
		Actionable:       Actionable(findings, e.priority),
	}

	slog.Info("Audit complete",
		"id", result.ID,
		"shipments", result.TotalShipments,
		"residential", result.ResidentialCount,
		"findings", len(findings),
		"savings", result.Summary.TotalSavings)

	return result, nil
}

// runMisc runs the misc detector on a private copy of the input. Any failure,
// panics included, degrades to empty views.
func (e *Engine) runMisc(ctx context.Context, table *model.Table) (views misccharges.Views, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("misc charge detector panicked: %v", r)
		}
		if err != nil {
			slog.Warn("Misc charge detection failed", "error", err)
			views = misccharges.Views{}
		}
	}()
	return e.misc.Detect(ctx, table.Clone())
}

// Actionable returns the findings eligible for claim submission, tagged with
// status and priority. The input is left untouched.
func Actionable(findings []model.Finding, thresholds PriorityThresholds) []model.Finding {
	var out []model.Finding
	for _, f := range findings {
		if !f.ErrorType.IsActionable() {
			continue
		}
		f.ClaimStatus = model.ClaimReadyToSubmit
		f.ClaimPriority = Priority(f.RefundEstimate, thresholds)
		out = append(out, f)
	}
	return out
}

// Priority ranks a refund estimate.
func Priority(refund float64, thresholds PriorityThresholds) model.ClaimPriority {
	switch {
	case refund >= thresholds.High:
		return model.PriorityHigh
	case refund < thresholds.Low:
		return model.PriorityLow
	default:
		return model.PriorityMedium
	}
}
