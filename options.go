package tpool

import "go.uber.org/zap"

// Options configure a Pool.
//
// All zero values are replaced with sensible defaults in FillDefaults.
type Options struct {
	// Policy receives worker-fatal failures. Defaults to Rethrow.
	Policy ExceptionPolicy

	// Logger reports worker lifecycle and structural operations at
	// Debug level. Defaults to a nop logger.
	Logger *zap.Logger

	// Metrics, when set, is updated at every counter transition.
	Metrics *Metrics
}

func (o *Options) FillDefaults() {
	if o.Policy == nil {
		o.Policy = Rethrow{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}
