package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/openclause/gavel/internal/classify"
	"github.com/openclause/gavel/internal/embedding"
	"github.com/openclause/gavel/internal/llm"
	"github.com/openclause/gavel/internal/risk"
	"github.com/openclause/gavel/internal/vectorindex"
)

const degradedExplanation = "assessment unavailable"

const tipsUnavailable = "Negotiation tips unavailable."

// IndexSource provides the precedent retrieval index for the current
// process. The index is built once at startup and read-only thereafter, so
// concurrent runs share it without locking. A nil index means no precedent
// corpus is loaded; retrieval then yields no grounding and assessments
// proceed without precedent context.
type IndexSource interface {
	Index() *vectorindex.Index
}

// Orchestrator runs the full analysis pipeline for contracts and single
// clauses. Segmentation, classification, and aggregation are pure local
// computations; the embedding and LLM gateways are the only suspension
// points.
type Orchestrator struct {
	cfg        Config
	embedder   embedding.Gateway
	assessor   llm.Gateway
	precedents IndexSource
	policy     risk.Policy
	logger     *slog.Logger
}

// New creates a pipeline orchestrator.
func New(
	cfg Config,
	embedder embedding.Gateway,
	assessor llm.Gateway,
	precedents IndexSource,
	policy risk.Policy,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		embedder:   embedder,
		assessor:   assessor,
		precedents: precedents,
		policy:     policy,
		logger:     logger.With("system", "pipeline"),
	}
}

// Extract segments and classifies contract text using the orchestrator's
// segmentation settings.
func (o *Orchestrator) Extract(text string) ([]Clause, error) {
	return ExtractClauses(text, o.cfg.SegmentConfig())
}

// AnalyzeContract runs the full pipeline over contract text and assembles
// the final report. A document that yields zero clauses produces a flagged
// report with an empty clause list; in strict mode any clause failure fails
// the run with ErrRunFailed.
func (o *Orchestrator) AnalyzeContract(
	ctx context.Context,
	contractType string,
	text string,
) (*risk.ContractReport, error) {
	r := newRun(o.logger.With("contract_type", contractType))

	clauses, err := o.Extract(text)
	if err != nil {
		r.to(ctx, StateFailed)
		return nil, fmt.Errorf("%w: %w", ErrRunFailed, err)
	}

	r.to(ctx, StateClassifying)

	if len(clauses) == 0 {
		o.logger.WarnContext(ctx, "no clauses detected", "contract_type", contractType)
		r.to(ctx, StateAggregating)
		report := risk.Assemble(o.policy, contractType, nil)
		r.to(ctx, StateDone)
		return report, nil
	}

	if timeout := o.cfg.RunTimeoutDuration(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	r.to(ctx, StateRetrieving)
	r.to(ctx, StateAssessing)

	assessments, err := o.assessAll(ctx, contractType, clauses)
	if err != nil {
		r.to(ctx, StateFailed)
		return nil, fmt.Errorf("%w: %w", ErrRunFailed, err)
	}

	r.to(ctx, StateAggregating)

	assessed := make([]risk.AssessedClause, len(clauses))
	for i, c := range clauses {
		assessed[i] = risk.AssessedClause{
			Title:      c.Title,
			ClauseType: c.ClauseType,
			Assessment: assessments[i],
		}
	}

	report := risk.Assemble(o.policy, contractType, assessed)
	report.NegotiationTips = o.negotiationTips(ctx, report)

	r.to(ctx, StateDone)
	return report, nil
}

// AnalyzeClause classifies and assesses a single clause outside a contract
// run. Gateway failures degrade the assessment unless strict mode is set.
func (o *Orchestrator) AnalyzeClause(
	ctx context.Context,
	contractType string,
	title string,
	text string,
) (risk.Assessment, error) {
	result := classify.Classify(text)
	if title == "" {
		title = result.Type.Title()
	}

	assessment, err := o.assessOne(ctx, contractType, title, text, 0)
	if err != nil {
		if o.cfg.Strict || errors.Is(err, vectorindex.ErrDimensionMismatch) {
			return risk.Assessment{}, err
		}
		o.logger.WarnContext(ctx, "clause assessment degraded", "error", err)
		return degraded(0, err), nil
	}
	return assessment, nil
}

// assessAll runs retrieval and assessment for every clause on a bounded
// worker pool. Result order follows clause ordinal order regardless of
// completion order.
func (o *Orchestrator) assessAll(
	ctx context.Context,
	contractType string,
	clauses []Clause,
) ([]risk.Assessment, error) {
	assessments := make([]risk.Assessment, len(clauses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(o.cfg.Concurrency, len(clauses)))

	for i, c := range clauses {
		g.Go(func() error {
			assessment, err := o.assessOne(gctx, contractType, c.Title, c.Text, i)
			if err != nil {
				// index misuse is a programming error, never degraded
				if errors.Is(err, vectorindex.ErrDimensionMismatch) {
					return fmt.Errorf("clause %d: %w", c.Number, err)
				}
				if o.cfg.Strict {
					return fmt.Errorf("clause %d: %w", c.Number, err)
				}

				o.logger.WarnContext(
					gctx, "clause assessment degraded",
					"clause", c.Number,
					"error", err,
				)
				assessments[i] = degraded(i, err)
				return nil
			}

			assessments[i] = assessment
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assessments, nil
}

// assessOne embeds a clause, retrieves its precedent context, and obtains a
// validated risk verdict from the LLM gateway.
func (o *Orchestrator) assessOne(
	ctx context.Context,
	contractType string,
	title string,
	text string,
	clauseIndex int,
) (risk.Assessment, error) {
	matches, err := o.retrieve(ctx, text)
	if err != nil {
		return risk.Assessment{}, err
	}

	verdict, err := o.assessor.Assess(ctx, llm.AssessRequest{
		ContractType: contractType,
		Title:        title,
		ClauseText:   text,
		Precedents:   matches,
	})
	if err != nil {
		return risk.Assessment{}, fmt.Errorf("assess: %w", err)
	}

	assessment, err := risk.NewAssessment(clauseIndex, verdict.RiskLevel, verdict.Explanation)
	if err != nil {
		return risk.Assessment{}, err
	}
	return assessment, nil
}

// retrieve embeds the clause and queries the precedent index, dropping
// matches below the similarity threshold. An absent or empty index yields no
// grounding rather than an error.
func (o *Orchestrator) retrieve(ctx context.Context, text string) ([]vectorindex.Match, error) {
	index := o.index()
	if index == nil || index.Len() == 0 || o.cfg.TopK == 0 {
		return nil, nil
	}

	vector, err := o.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed: %w", err)
	}

	matches, err := index.Search(vector, o.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	kept := matches[:0]
	for _, m := range matches {
		if m.Score >= o.cfg.SimilarityThreshold {
			kept = append(kept, m)
		}
	}
	return kept, nil
}

// negotiationTips asks the LLM gateway for guidance over the finished
// report; failures degrade to a fixed message rather than failing the run.
func (o *Orchestrator) negotiationTips(ctx context.Context, report *risk.ContractReport) string {
	summary := make([]llm.ClauseLine, len(report.Clauses))
	for i, c := range report.Clauses {
		summary[i] = llm.ClauseLine{Title: c.Title, RiskLevel: string(c.RiskLevel)}
	}

	missing := make([]string, len(report.MissingClauses))
	for i, m := range report.MissingClauses {
		missing[i] = m.Title()
	}

	tips, err := o.assessor.Tips(ctx, llm.TipsRequest{
		ContractType:   report.ContractType,
		ClauseSummary:  summary,
		MissingClauses: missing,
	})
	if err != nil {
		o.logger.WarnContext(ctx, "negotiation tips degraded", "error", err)
		return tipsUnavailable
	}
	return tips
}

func (o *Orchestrator) index() *vectorindex.Index {
	if o.precedents == nil {
		return nil
	}
	return o.precedents.Index()
}

func degraded(clauseIndex int, err error) risk.Assessment {
	score, _ := risk.Medium.Score()
	return risk.Assessment{
		ClauseIndex: clauseIndex,
		Level:       risk.Medium,
		Score:       score,
		Explanation: fmt.Sprintf("%s: %v", degradedExplanation, err),
	}
}

func workerCount(limit, clauses int) int {
	return max(min(limit, clauses), 1)
}
