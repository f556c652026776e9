package syncx

// Guard holds a release action and runs it on Run unless Discard or
// Perform came first. It backs rollback paths that must fire on every
// exit: restoring state after a failed operation, reacquiring a
// temporarily released mutex, unregistering a worker.
//
// Typical use:
//
//	g := syncx.NewGuard(func() { restore() })
//	defer g.Run()
type Guard struct {
	fn   func()
	done bool
}

func NewGuard(fn func()) *Guard { return &Guard{fn: fn} }

// Perform runs the action now and disarms the guard. A panic out of the
// action propagates and leaves the guard armed.
func (g *Guard) Perform() {
	if g.done {
		return
	}
	g.fn()
	g.done = true
}

// Discard disarms the guard without running the action.
func (g *Guard) Discard() { g.done = true }

// Run executes the action if the guard is still armed. If the action
// panics, one more attempt is made; Run itself never panics.
func (g *Guard) Run() {
	if g.done {
		return
	}
	g.done = true
	defer func() {
		if recover() != nil {
			func() {
				defer func() { _ = recover() }()
				g.fn()
			}()
		}
	}()
	g.fn()
}
