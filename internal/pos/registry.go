package pos

import "sync"

// Register is one terminal's engine instance: its cart plus the coordinator
// that submits it.
type Register struct {
	Cart     *Cart
	Checkout *Coordinator
}

// Registry hands out one Register per operator session, created lazily. Carts
// live only in memory for the duration of the session.
type Registry struct {
	mu        sync.Mutex
	regs      map[string]*Register
	submitter SaleSubmitter
	branchID  string
}

func NewRegistry(submitter SaleSubmitter, branchID string) *Registry {
	return &Registry{
		regs:      make(map[string]*Register),
		submitter: submitter,
		branchID:  branchID,
	}
}

func (r *Registry) Get(sessionID string) *Register {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reg, ok := r.regs[sessionID]; ok {
		return reg
	}
	cart := NewCart()
	reg := &Register{
		Cart:     cart,
		Checkout: NewCoordinator(cart, r.submitter, r.branchID),
	}
	r.regs[sessionID] = reg
	return reg
}

// Drop discards a session's register, e.g. on logout.
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.regs, sessionID)
}
