package rbm

// UnitType describes the distribution of a layer's units.
type UnitType byte

const (
	// Binary units are sigmoid activated and Bernoulli sampled.
	Binary UnitType = iota
	// Gaussian units are linear with unit-variance gaussian noise. Only
	// supported for the visible layer.
	Gaussian
)

// DecayType selects the weight decay penalty applied during training.
//
// The plain variants decay the weight matrix only. The full variants also
// decay the bias vectors, which per Hinton's practical guide is rarely
// worth it given how few biases there are.
type DecayType byte

const (
	NoDecay DecayType = iota
	L1
	L1Full
	L2
	L2Full

	maxdecay
)

func (d DecayType) String() string {
	switch d {
	case NoDecay:
		return "none"
	case L1:
		return "L1"
	case L1Full:
		return "L1-full"
	case L2:
		return "L2"
	case L2Full:
		return "L2-full"
	}
	return "unknown"
}

// Full reports whether the decay also applies to the bias vectors.
func (d DecayType) Full() bool { return d == L1Full || d == L2Full }

// Config configures a RBM.
type Config struct {
	Visible   int // number of visible units
	Hidden    int // number of hidden units
	BatchSize int // batch capacity a trainer may present in one call

	VisibleUnit UnitType
	Decay       DecayType
	Momentum    bool // keep an exponential moving average of the gradients
	Sparsity    bool // penalize the mean hidden activation probability
	MeanField   bool // samples are forced to the activation probabilities

	LearningRate   float32
	MomentumCoef   float32 // used if Momentum
	DecayRate      float32 // used if Sparsity
	SparsityTarget float32 // used if Sparsity
	SparsityCost   float32 // used if Sparsity
	WeightCost     float32 // used if Decay != NoDecay

	Seed int64
}

func DefaultConf(visible, hidden int) Config {
	return Config{
		Visible:   visible,
		Hidden:    hidden,
		BatchSize: 64,

		LearningRate:   0.1,
		MomentumCoef:   0.5,
		DecayRate:      0.99,
		SparsityTarget: 0.01,
		SparsityCost:   1.0,
		WeightCost:     0.0002,

		Seed: 1337,
	}
}

func (conf Config) IsValid() bool {
	return conf.Visible >= 1 &&
		conf.Hidden >= 1 &&
		conf.BatchSize >= 1 &&
		conf.Decay < maxdecay &&
		conf.LearningRate > 0 &&
		(!conf.Momentum || (conf.MomentumCoef >= 0 && conf.MomentumCoef < 1)) &&
		(!conf.Sparsity || (conf.DecayRate >= 0 && conf.DecayRate <= 1))
}
