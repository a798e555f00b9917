package metrics

import "errors"

// MultiSink fans events out to several sinks, collecting every error.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

// RecordForecast forwards the event to every sink.
func (m *MultiSink) RecordForecast(ev ForecastEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordForecast(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordRecommendation forwards the event to every sink.
func (m *MultiSink) RecordRecommendation(ev RecommendationEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRecommendation(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
