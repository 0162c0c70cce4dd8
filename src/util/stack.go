// stack.go provides a linked list type stack that holds arbitrary data.
// Every element links to the element below it, so pushing and popping never walks the list. The stack does not
// store <nil> values.

package util

// StackElement holds data in the Stack linked list.
type StackElement struct {
	E     interface{}   // Data held by stack entry.
	below *StackElement // Entry pushed before this one.
}

// Stack is a linked list stack.
type Stack struct {
	size int           // Number of entries in the stack.
	top  *StackElement // The last element to be added to the stack.
}

// Push adds a new element to the top of the stack.
func (s *Stack) Push(e interface{}) {
	if e == nil {
		return
	}
	s.top = &StackElement{E: e, below: s.top}
	s.size++
}

// Pop removes and returns the last inserted element on the stack.
// If no element has been added <nil> is returned.
func (s *Stack) Pop() interface{} {
	if s.size == 0 {
		return nil
	}
	e := s.top
	s.top = e.below
	s.size--
	return e.E
}

// Peek works just like Pop, but it does not remove the element from the stack.
func (s *Stack) Peek() interface{} {
	if s.size == 0 {
		return nil
	}
	return s.top.E
}

// Size returns the number of elements in the stack.
func (s *Stack) Size() int {
	return s.size
}

// Get returns the nth element from the stack, top down, not zero indexed.
// Get(1) returns the first element on stack, and is similar to Peek.
// Get(Stack.Size()) returns the bottom element. If the index n is out of range <nil> is returned.
// Get does not remove elements from the stack.
func (s *Stack) Get(n int) interface{} {
	if n < 1 || n > s.size {
		return nil
	}
	e1 := s.top
	for i1 := 1; i1 < n; i1++ {
		e1 = e1.below
	}
	return e1.E
}
