package mutator

import "fmt"

// Priority orders competing mutations.
type Priority int

const (
	Default Priority = iota
	UserInput
	PreventUserInput
)

func (p Priority) String() string {
	switch p {
	case Default:
		return "default"
	case UserInput:
		return "user-input"
	case PreventUserInput:
		return "prevent-user-input"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// Mutex grants exclusive ownership to one mutation at a time. The zero value
// is ready to use.
type Mutex struct {
	owner *Lease
}

// Lease is the ownership token of the active mutation.
type Lease struct {
	m        *Mutex
	priority Priority
	cancel   func()
}

// TryLock requests ownership at priority p. When granted, the previous
// owner's cancel func runs before TryLock returns. cancel may be nil.
func (m *Mutex) TryLock(p Priority, cancel func()) (*Lease, bool) {
	if prev := m.owner; prev != nil {
		if p < prev.priority {
			return nil, false
		}
		m.owner = nil
		if prev.cancel != nil {
			prev.cancel()
		}
	}
	l := &Lease{m: m, priority: p, cancel: cancel}
	m.owner = l
	return l, true
}

// Mutate runs fn synchronously as a mutation at priority p. It returns false
// without calling fn when a higher priority mutation is active.
func (m *Mutex) Mutate(p Priority, fn func()) bool {
	l, ok := m.TryLock(p, nil)
	if !ok {
		return false
	}
	defer l.Unlock()
	fn()
	return true
}

// Active returns the priority of the current owner, if any.
func (m *Mutex) Active() (Priority, bool) {
	if m.owner == nil {
		return 0, false
	}
	return m.owner.priority, true
}

// Unlock releases ownership. It is a no-op once the lease was preempted.
func (l *Lease) Unlock() {
	if l == nil || l.m.owner != l {
		return
	}
	l.m.owner = nil
}

// Held reports whether the lease still owns its mutex.
func (l *Lease) Held() bool {
	return l != nil && l.m.owner == l
}

// Priority returns the priority the lease was granted at.
func (l *Lease) Priority() Priority {
	return l.priority
}
