// Package cd trains restricted boltzmann machines by contrastive
// divergence, in the plain (CD-k) and persistent (PCD-k) flavors.
package cd

import (
	"github.com/pkg/errors"

	"github.com/10183308/dll/rbm"
)

// Trainer is a CD-k trainer: every batch restarts the negative chain from
// the data-driven positive phase.
type Trainer struct {
	base
	k int
}

// New returns a CD-k trainer for m. k must be at least 1.
func New(k int, m *rbm.RBM) (*Trainer, error) {
	if k < 1 {
		return nil, errors.Errorf("CD-%d is not a valid training method", k)
	}
	return &Trainer{base: newBase(m), k: k}, nil
}

// TrainBatch runs one minibatch through k steps of Gibbs sampling, updates
// the parameters of m in place and returns the reconstruction error.
func (t *Trainer) TrainBatch(batch [][]float32, m *rbm.RBM) (float32, error) {
	return t.run(batch, m, t.k, func(int) ([]float32, []float32) { return m.H1a, m.H1s }, nil)
}
