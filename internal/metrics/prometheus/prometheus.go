package prometheus

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/slok/swemas/internal/metrics"
)

const namespace = "swemas"

// Recorder is a metrics.Recorder backed by Prometheus collectors.
type Recorder struct {
	modelCalls    *prometheus.HistogramVec
	modelTokens   *prometheus.CounterVec
	toolCalls     *prometheus.HistogramVec
	agentRunSteps *prometheus.HistogramVec
	taskRuns      *prometheus.CounterVec
}

var _ metrics.Recorder = &Recorder{}

// NewRecorder returns a new Prometheus recorder registered on reg.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	r := &Recorder{
		modelCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "call_duration_seconds",
			Help:      "Duration of the language model invocations.",
			Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 80},
		}, []string{"role", "model", "success"}),

		modelTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "model",
			Name:      "tokens_total",
			Help:      "Tokens consumed by the language model invocations.",
		}, []string{"role", "model", "kind"}),

		toolCalls: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "tool",
			Name:      "call_duration_seconds",
			Help:      "Duration of the tool executions.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool", "success"}),

		agentRunSteps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "agent",
			Name:      "run_steps",
			Help:      "Number of steps executed by the multi agent runs.",
			Buckets:   []float64{2, 5, 10, 20, 40, 60, 80, 100},
		}, []string{"success"}),

		taskRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "task",
			Name:      "runs_total",
			Help:      "Processed benchmark tasks by final status.",
		}, []string{"status"}),
	}

	collectors := []prometheus.Collector{r.modelCalls, r.modelTokens, r.toolCalls, r.agentRunSteps, r.taskRuns}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("could not register metric: %w", err)
		}
	}

	return r, nil
}

func (r *Recorder) ObserveModelCall(_ context.Context, role, model string, duration time.Duration, success bool) {
	r.modelCalls.WithLabelValues(role, model, strconv.FormatBool(success)).Observe(duration.Seconds())
}

func (r *Recorder) AddModelTokens(_ context.Context, role, model string, promptTokens, completionTokens int) {
	r.modelTokens.WithLabelValues(role, model, "prompt").Add(float64(promptTokens))
	r.modelTokens.WithLabelValues(role, model, "completion").Add(float64(completionTokens))
}

func (r *Recorder) ObserveToolCall(_ context.Context, tool string, duration time.Duration, success bool) {
	r.toolCalls.WithLabelValues(tool, strconv.FormatBool(success)).Observe(duration.Seconds())
}

func (r *Recorder) ObserveAgentRun(_ context.Context, steps int, success bool) {
	r.agentRunSteps.WithLabelValues(strconv.FormatBool(success)).Observe(float64(steps))
}

func (r *Recorder) IncTaskRun(_ context.Context, status string) {
	r.taskRuns.WithLabelValues(status).Inc()
}
