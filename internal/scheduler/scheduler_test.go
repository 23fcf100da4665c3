package scheduler

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJob struct {
	name string
	err  error
	runs int
}

func (f *fakeJob) Name() string { return f.name }

func (f *fakeJob) Run() error {
	f.runs++
	return f.err
}

func TestRegister_ValidSpec(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.Register("*/15 * * * *", &fakeJob{name: "refresh"})
	require.NoError(t, err)
}

func TestRegister_InvalidSpec(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.Register("not a cron spec", &fakeJob{name: "refresh"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh")
}

func TestStartStop(t *testing.T) {
	s := New(zerolog.Nop())
	require.NoError(t, s.Register("0 4 * * *", &fakeJob{name: "cleanup", err: errors.New("boom")}))

	s.Start()
	s.Stop()
}
