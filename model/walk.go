package model

// Walk is an ordered sequence traversed one item at a time by a cursor.
// The cursor lives in the Session; Walk only answers questions about it.
type Walk[T any] struct {
	Items []T
}

func NewWalk[T any](items []T) Walk[T] {
	return Walk[T]{Items: items}
}

func (w Walk[T]) Len() int {
	return len(w.Items)
}

// Current returns the item under the cursor, false once the walk is exhausted.
func (w Walk[T]) Current(cursor int) (item T, ok bool) {
	if cursor < 0 || cursor >= len(w.Items) {
		return
	}
	return w.Items[cursor], true
}

func (w Walk[T]) Exhausted(cursor int) bool {
	return cursor >= len(w.Items)
}

// Last reports whether the cursor sits on the final item.
func (w Walk[T]) Last(cursor int) bool {
	return len(w.Items) > 0 && cursor == len(w.Items)-1
}

// Advance moves the cursor one step, never past Len.
func (w Walk[T]) Advance(cursor *int) bool {
	if *cursor >= len(w.Items) {
		return false
	}
	*cursor++
	return true
}
