package common

import (
	"time"

	"github.com/armon/go-metrics"
)

type Timer interface {
	Now() time.Time
}

type RealTimerImpl struct{}

var _ Timer = new(RealTimerImpl)

func (t *RealTimerImpl) Now() time.Time {
	return time.Now()
}

type TestTimerImpl struct {
	NowTime time.Time
}

var _ Timer = new(TestTimerImpl)

func (t *TestTimerImpl) Now() time.Time {
	return t.NowTime
}

func (t *TestTimerImpl) Advance(d time.Duration) {
	t.NowTime = t.NowTime.Add(d)
}

var realTimer = RealTimerImpl{}

func NewTimer() *RealTimerImpl {
	return &realTimer
}

func NewTestTimer(nowTime time.Time) *TestTimerImpl {
	return &TestTimerImpl{NowTime: nowTime}
}

type Lap struct {
	Stage    string
	Duration time.Duration
}

// Stopwatch splits one run into consecutive stages.
// Every lap is also reported to the metrics sink as a sample in milliseconds.
type Stopwatch struct {
	timer  Timer
	sink   metrics.MetricSink
	prefix []string
	start  time.Time
	last   time.Time
	laps   []Lap
}

func NewStopwatch(timer Timer, sink metrics.MetricSink, prefix ...string) *Stopwatch {
	if sink == nil {
		sink = &metrics.BlackholeSink{}
	}
	now := timer.Now()
	return &Stopwatch{
		timer:  timer,
		sink:   sink,
		prefix: prefix,
		start:  now,
		last:   now,
	}
}

// Lap closes the current stage and returns its duration.
func (s *Stopwatch) Lap(stage string) time.Duration {
	now := s.timer.Now()
	d := now.Sub(s.last)
	s.last = now
	s.laps = append(s.laps, Lap{Stage: stage, Duration: d})

	key := make([]string, 0, len(s.prefix)+1)
	key = append(key, s.prefix...)
	key = append(key, stage)
	s.sink.AddSample(key, float32(d.Seconds()*1000))
	return d
}

func (s *Stopwatch) Laps() []Lap {
	return append([]Lap(nil), s.laps...)
}

func (s *Stopwatch) Total() time.Duration {
	return s.last.Sub(s.start)
}
