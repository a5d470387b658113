package cd

import (
	"github.com/pkg/errors"

	"github.com/10183308/dll/rbm"
)

// PersistentTrainer is a PCD-k trainer. One Markov chain per batch slot is
// carried across calls: the negative phase resumes from wherever the
// previous batch left the chain instead of restarting from the data.
//
// The slot-to-sample mapping must stay stable across calls for the chains
// to remain meaningful. The caller owns batch construction and ordering.
type PersistentTrainer struct {
	base
	k int

	// end-of-chain hidden activations and samples, one per batch slot
	pHA, pHS [][]float32
}

// NewPersistent returns a PCD-k trainer for m. k must be at least 1.
func NewPersistent(k int, m *rbm.RBM) (*PersistentTrainer, error) {
	if k < 1 {
		return nil, errors.Errorf("PCD-%d is not a valid training method", k)
	}
	return &PersistentTrainer{base: newBase(m), k: k}, nil
}

// TrainBatch runs one minibatch exactly as the CD-k trainer does, except
// that each slot's first visible reconstruction starts from the persisted
// chain. The very first batch bootstraps the chains from the positive
// phase.
func (t *PersistentTrainer) TrainBatch(batch [][]float32, m *rbm.RBM) (float32, error) {
	init := t.pHA == nil
	seed := func(slot int) ([]float32, []float32) {
		if init {
			if t.pHA == nil {
				// lazily sized to the capacity, not the batch, and only
				// once the preconditions have passed
				t.pHA = make([][]float32, m.BatchSize)
				t.pHS = make([][]float32, m.BatchSize)
				for i := range t.pHA {
					t.pHA[i] = make([]float32, m.Hidden)
					t.pHS[i] = make([]float32, m.Hidden)
				}
			}
			copy(t.pHA[slot], m.H1a)
			copy(t.pHS[slot], m.H1s)
		}
		// the chain is re-entered through its activation probabilities
		return t.pHA[slot], t.pHA[slot]
	}
	commit := func(slot int) {
		copy(t.pHA[slot], m.H2a)
		copy(t.pHS[slot], m.H2s)
	}
	return t.run(batch, m, t.k, seed, commit)
}
