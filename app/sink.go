package app

import (
	"github.com/iov-one/bazaar"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/tendermint/tendermint/libs/log"
)

// EventSink receives every event emitted by a successfully delivered
// transaction, after the transaction state was accepted.
type EventSink interface {
	Emit(ctx bazaar.Context, path string, events []bazaar.Event)
}

// LogSink writes each event to the logger, one line per event.
type LogSink struct {
	logger log.Logger
}

var _ EventSink = (*LogSink)(nil)

// NewLogSink returns a sink that logs at info level. A nil logger means the
// context logger is used.
func NewLogSink(logger log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Emit(ctx bazaar.Context, path string, events []bazaar.Event) {
	logger := s.logger
	if logger == nil {
		logger = bazaar.GetLogger(ctx)
	}
	for _, e := range events {
		kv := make([]interface{}, 0, 2*len(e.Attributes)+2)
		kv = append(kv, "path", path)
		for _, a := range e.Attributes {
			kv = append(kv, string(a.Key), string(a.Value))
		}
		logger.Info(e.Type, kv...)
	}
}

// MetricsSink counts emitted events by their type and the message path that
// produced them.
type MetricsSink struct {
	events *prometheus.CounterVec
}

var _ EventSink = (*MetricsSink)(nil)

// NewMetricsSink creates the counter and registers it with given registerer.
func NewMetricsSink(reg prometheus.Registerer) (*MetricsSink, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bazaar",
		Name:      "events_total",
		Help:      "Total number of events emitted by delivered transactions.",
	}, []string{"type", "path"})
	if err := reg.Register(events); err != nil {
		return nil, err
	}
	return &MetricsSink{events: events}, nil
}

func (s *MetricsSink) Emit(ctx bazaar.Context, path string, events []bazaar.Event) {
	for _, e := range events {
		s.events.WithLabelValues(e.Type, path).Inc()
	}
}

// Sinks fans out events to all contained sinks, in order.
type Sinks []EventSink

var _ EventSink = Sinks(nil)

func (s Sinks) Emit(ctx bazaar.Context, path string, events []bazaar.Event) {
	for _, sink := range s {
		sink.Emit(ctx, path, events)
	}
}
