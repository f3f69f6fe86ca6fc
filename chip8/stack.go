package chip8

// DefaultStackLimit is the traditional 16 level call stack.
const DefaultStackLimit = 16

// Stack holds subroutine return addresses. A limit of zero means the stack
// is unbounded.
type Stack struct {
	addrs []uint16
	limit int
}

func newStack(limit int) *Stack {
	s := &Stack{limit: limit}
	if limit > 0 {
		s.addrs = make([]uint16, 0, limit)
	}
	return s
}

func (s *Stack) Push(addr uint16) error {
	if s.limit > 0 && len(s.addrs) >= s.limit {
		return ErrStackOverflow
	}
	s.addrs = append(s.addrs, addr)
	return nil
}

func (s *Stack) Pop() (uint16, error) {
	if len(s.addrs) == 0 {
		return 0, ErrStackUnderflow
	}
	addr := s.addrs[len(s.addrs)-1]
	s.addrs = s.addrs[:len(s.addrs)-1]
	return addr, nil
}

func (s *Stack) Depth() int {
	return len(s.addrs)
}
