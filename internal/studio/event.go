package studio

// Event is a multi-cast callback list. Observers are invoked synchronously,
// in subscription order, after the state mutation that fired them completes.
// Observers must not re-enter studio mutation methods: there is no
// reentrancy guard, by documented contract.
type Event[T any] struct {
	listeners []func(T)
}

// Subscribe adds a callback. Nil callbacks are ignored.
func (e *Event[T]) Subscribe(callback func(T)) {
	if callback == nil {
		return
	}
	e.listeners = append(e.listeners, callback)
}

// Clear removes all listeners.
func (e *Event[T]) Clear() {
	e.listeners = nil
}

func (e *Event[T]) emit(arg T) {
	for _, listener := range e.listeners {
		listener(arg)
	}
}
