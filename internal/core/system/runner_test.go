package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recorder struct {
	name  string
	phase Phase
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }
func (r recorder) Update(time.Duration) {
	*r.log = append(*r.log, r.name)
}

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner(nil, 0)
	r.Register(recorder{"persist", PhasePersist, &log})
	r.Register(recorder{"input", PhaseInput, &log})
	r.Register(recorder{"logic-a", PhaseUpdate, &log})
	r.Register(recorder{"logic-b", PhaseUpdate, &log})
	r.Register(recorder{"events", PhasePreUpdate, &log})

	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"input", "events", "logic-a", "logic-b", "persist"}, log)

	log = nil
	r.TickPhase(PhaseUpdate, time.Millisecond)
	assert.Equal(t, []string{"logic-a", "logic-b"}, log)
}

type sleeper struct{ d time.Duration }

func (s sleeper) Phase() Phase         { return PhaseUpdate }
func (s sleeper) Update(time.Duration) { time.Sleep(s.d) }

func TestRunnerCountsOverruns(t *testing.T) {
	r := NewRunner(zap.NewNop(), time.Millisecond)
	r.Register(sleeper{5 * time.Millisecond})
	r.Tick(time.Millisecond)
	assert.Equal(t, 1, r.Overruns())

	quiet := NewRunner(zap.NewNop(), time.Hour)
	quiet.Register(sleeper{0})
	quiet.Tick(time.Millisecond)
	assert.Zero(t, quiet.Overruns())
}
