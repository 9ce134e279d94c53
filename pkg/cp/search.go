package cp

import "errors"

// ErrStopped is returned by SolveAll when the callback asks to stop the
// enumeration early.
var ErrStopped = errors.New("cp: search stopped by callback")

// SolveFirst runs a depth-first search labeling vars in order, trying
// values from the smallest up, and returns the first solution found as a
// value per variable. It returns ErrFailed when the model has no solution.
func (s *Solver) SolveFirst(vars []IntVar) ([]int64, error) {
	var solution []int64
	err := s.SolveAll(vars, func(values []int64) bool {
		solution = append([]int64(nil), values...)
		return false
	})
	if err != nil && !errors.Is(err, ErrStopped) {
		return nil, err
	}
	if solution == nil {
		return nil, ErrFailed
	}
	return solution, nil
}

// SolveAll enumerates every solution over vars in depth-first order and
// invokes callback with the values of each one. The callback returns false
// to stop the search. The slice passed to the callback is reused between
// solutions.
func (s *Solver) SolveAll(vars []IntVar, callback func(values []int64) bool) error {
	values := make([]int64, len(vars))
	return s.label(vars, values, 0, callback)
}

func (s *Solver) label(vars []IntVar, values []int64, depth int, callback func([]int64) bool) error {
	if depth == len(vars) {
		for i, v := range vars {
			values[i] = v.Value()
		}
		if !callback(values) {
			return ErrStopped
		}
		return nil
	}
	v := vars[depth]
	if v.Bound() {
		return s.label(vars, values, depth+1, callback)
	}
	it := v.MakeDomainIterator()
	var candidates []int64
	for it.Init(); it.Ok(); it.Next() {
		candidates = append(candidates, it.Value())
	}
	for _, val := range candidates {
		s.PushState()
		err := s.Apply(func() { v.SetValue(val) })
		if err == nil {
			err = s.label(vars, values, depth+1, callback)
		}
		s.PopState()
		if err != nil && !errors.Is(err, ErrFailed) {
			return err
		}
	}
	return nil
}
