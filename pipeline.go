package tabular

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/lublak/tabular"

// Pipeline applies an ordered list of steps, each consuming the previous
// step's output.
type Pipeline struct {
	steps  []Step
	logger zerolog.Logger
	tracer trace.Tracer
}

// PipelineOption configures a [Pipeline].
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used for per-step events.
func WithLogger(l zerolog.Logger) PipelineOption {
	return func(p *Pipeline) { p.logger = l }
}

// WithTracer sets the tracer used for run and step spans.
func WithTracer(t trace.Tracer) PipelineOption {
	return func(p *Pipeline) { p.tracer = t }
}

// NewPipeline returns a pipeline running steps in order.
func NewPipeline(steps []Step, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		steps:  append([]Step(nil), steps...),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tracer == nil {
		p.tracer = otel.Tracer(tracerName)
	}
	return p
}

// Steps returns a copy of the configured steps.
func (p *Pipeline) Steps() []Step { return append([]Step(nil), p.steps...) }

// Run validates every step, then applies them to t in order. The first
// failing step aborts the run; its error is returned as a *StepError.
func (p *Pipeline) Run(ctx context.Context, t Table) (Table, error) {
	runID := uuid.NewString()
	log := p.logger.With().Str("run_id", runID).Logger()

	ctx, span := p.tracer.Start(ctx, "tabular.run", trace.WithAttributes(
		attribute.String("tabular.run_id", runID),
		attribute.Int("tabular.steps", len(p.steps)),
	))
	defer span.End()

	for i, s := range p.steps {
		if err := s.Validate(); err != nil {
			return nil, p.fail(span, log, &StepError{Index: i, Action: s.Action, Err: err})
		}
	}

	for i, s := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, p.fail(span, log, &StepError{Index: i, Action: s.Action, Err: err})
		}
		out, err := p.runStep(ctx, i, s, t)
		if err != nil {
			return nil, p.fail(span, log, &StepError{Index: i, Action: s.Action, Err: err})
		}
		log.Debug().
			Int("step", i).
			Str("action", string(s.Action)).
			Int("rows_in", len(t)).
			Int("rows_out", len(out)).
			Msg("step applied")
		t = out
	}
	return t, nil
}

func (p *Pipeline) runStep(ctx context.Context, i int, s Step, t Table) (Table, error) {
	_, span := p.tracer.Start(ctx, "tabular."+string(s.Action), trace.WithAttributes(
		attribute.Int("tabular.step", i),
		attribute.Int("tabular.rows_in", len(t)),
	))
	defer span.End()
	out, err := s.Apply(t)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("tabular.rows_out", len(out)))
	return out, nil
}

func (p *Pipeline) fail(span trace.Span, log zerolog.Logger, err *StepError) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	log.Error().Err(err).Int("step", err.Index).Str("action", string(err.Action)).Msg("pipeline step failed")
	return err
}
