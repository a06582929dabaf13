// Package trainer runs the training loop around the batch scheduler: a
// bounded number of epochs split into ticks, learning-rate controls, a
// cost history and periodic progress logging.
package trainer

import (
	"context"
	"log"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/born-ml/nero/internal/autodiff"
	"github.com/born-ml/nero/internal/batch"
	"github.com/born-ml/nero/internal/matrix"
	"github.com/born-ml/nero/internal/nn"
	"github.com/born-ml/nero/internal/optim"
)

// Options captures the knobs of a training session.
type Options struct {
	Epochs       int
	LearnPerTick int
	BatchCount   int
	SGD          optim.SGDConfig
	HistorySize  int
	// LogEvery logs progress each time the epoch counter crosses a
	// multiple of it. Zero disables logging.
	LogEvery int
	Logger   *log.Logger
}

// Session owns a network, its gradient twin and everything needed to keep
// training it. A Session is not safe for concurrent use.
type Session struct {
	net     *nn.Network
	grad    *nn.Network
	tIn     *matrix.Matrix
	tOut    *matrix.Matrix
	batches *batch.Config
	sgd     *optim.SGD
	rng     *rand.Rand
	history *History
	logger  *log.Logger

	epochs       int
	learnPerTick int
	logEvery     int

	epoch     int
	unbounded bool
	cost      float32
}

// NewSession prepares net for training on (tIn, tOut). The network is
// trained as given; call Reset to start from fresh random parameters.
func NewSession(net *nn.Network, tIn, tOut *matrix.Matrix, rng *rand.Rand, opts Options) (*Session, error) {
	if net == nil {
		return nil, errors.New("trainer: nil network")
	}
	if rng == nil {
		return nil, errors.New("trainer: nil random source")
	}
	if opts.Epochs <= 0 {
		return nil, errors.Errorf("trainer: epochs must be > 0 (got %d)", opts.Epochs)
	}
	if opts.LearnPerTick <= 0 {
		return nil, errors.Errorf("trainer: learn per tick must be > 0 (got %d)", opts.LearnPerTick)
	}
	if opts.BatchCount <= 0 {
		opts.BatchCount = 1
	}
	if opts.HistorySize <= 0 {
		opts.HistorySize = 400
	}
	if opts.LogEvery < 0 {
		opts.LogEvery = 0
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if tIn.Rows() != tOut.Rows() {
		return nil, errors.Errorf("trainer: %d input rows vs %d output rows", tIn.Rows(), tOut.Rows())
	}
	layout := net.Layout()
	if tIn.Cols() != layout[0] || tOut.Cols() != layout[len(layout)-1] {
		return nil, errors.Errorf("trainer: dataset is %d -> %d but network layout is %v", tIn.Cols(), tOut.Cols(), layout)
	}

	s := &Session{
		net:          net,
		grad:         nn.NewLike(net),
		tIn:          tIn,
		tOut:         tOut,
		batches:      batch.New(opts.BatchCount, tIn, tOut, rng),
		sgd:          optim.NewSGD(opts.SGD),
		rng:          rng,
		history:      NewHistory(opts.HistorySize),
		logger:       opts.Logger,
		epochs:       opts.Epochs,
		learnPerTick: opts.LearnPerTick,
		logEvery:     opts.LogEvery,
	}
	s.cost = autodiff.Cost(net, tIn, tOut)
	return s, nil
}

// Tick runs LearnPerTick epochs, then records the full-dataset cost.
// Tick ignores the epoch bound; Run is the bounded loop.
func (s *Session) Tick() (float32, error) {
	lr := s.sgd.LR()
	for i := 0; i < s.learnPerTick; i++ {
		if _, err := s.batches.Run(s.net, s.grad, lr); err != nil {
			return s.cost, errors.Wrapf(err, "trainer: epoch %d", s.epoch+1)
		}
		s.epoch++
	}
	s.cost = autodiff.Cost(s.net, s.tIn, s.tOut)
	s.history.Push(s.cost)
	return s.cost, nil
}

// Done reports whether the epoch bound has been reached and not lifted by
// Continue.
func (s *Session) Done() bool {
	return !s.unbounded && s.epoch >= s.epochs
}

// Run ticks until Done or until ctx is cancelled. Cancellation is checked
// between ticks and returned as ctx.Err().
func (s *Session) Run(ctx context.Context) error {
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		before := s.epoch
		if _, err := s.Tick(); err != nil {
			return err
		}
		if s.logEvery > 0 && s.epoch/s.logEvery > before/s.logEvery {
			s.logProgress()
		}
	}
	return nil
}

func (s *Session) logProgress() {
	s.logger.Printf("epoch=%d/%d cost=%.6f lr=%.4f batches=%d", s.epoch, s.epochs, s.cost, s.sgd.LR(), s.batches.BatchCount())
}

// Continue lifts the epoch bound once it has been reached, after which Run
// only stops on cancellation. It reports whether the bound was lifted.
func (s *Session) Continue() bool {
	if s.epoch < s.epochs {
		return false
	}
	s.unbounded = true
	return true
}

// Reset draws fresh parameters from [0, 1), rewinds the epoch counter and
// clears the history. The learning rate is left alone.
func (s *Session) Reset() {
	s.net.Randomize(s.rng, 0, 1)
	s.epoch = 0
	s.unbounded = false
	s.history.Reset()
	s.cost = autodiff.Cost(s.net, s.tIn, s.tOut)
}

// IncreaseRate multiplies the learning rate by the configured factor.
func (s *Session) IncreaseRate() float32 {
	s.sgd.Increase()
	return s.sgd.LR()
}

// DecreaseRate divides the learning rate, never going below the floor.
func (s *Session) DecreaseRate() float32 {
	s.sgd.Decrease()
	return s.sgd.LR()
}

// ResetRate restores the initial learning rate.
func (s *Session) ResetRate() float32 {
	s.sgd.Reset()
	return s.sgd.LR()
}

// LR returns the current learning rate.
func (s *Session) LR() float32 { return s.sgd.LR() }

// Epoch returns the number of epochs run since the last Reset.
func (s *Session) Epoch() int { return s.epoch }

// Cost returns the full-dataset cost after the last tick.
func (s *Session) Cost() float32 { return s.cost }

// History returns the cost history.
func (s *Session) History() *History { return s.history }

// Net returns the network being trained.
func (s *Session) Net() *nn.Network { return s.net }
