package larch

import (
	"fmt"
	"reflect"
)

var errType = reflect.TypeOf((*error)(nil)).Elem()

// plan is the construction plan selected for a registration: the winning
// constructor and its parameter contracts in declaration order.
type plan struct {
	ctor    reflect.Value
	params  []reflect.Type
	returns int // 1 for func(...) T, 2 for func(...) (T, error)
}

// checkConstructor validates a single candidate and reports its contract
// type (the first return) and its return count.
func checkConstructor(v reflect.Value) (reflect.Type, int, error) {
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, 0, fmt.Errorf("%w: constructor must be a function, got %s", ErrNoConstructor, kindOf(v))
	}

	t := v.Type()
	if t.IsVariadic() {
		return nil, 0, fmt.Errorf("%w: variadic constructors are not supported", ErrNoConstructor)
	}

	if t.NumOut() == 0 || t.NumOut() > 2 {
		return nil, 0, fmt.Errorf("%w: constructor must return (T) or (T, error)", ErrNoConstructor)
	}

	if t.NumOut() == 2 && !t.Out(1).Implements(errType) {
		return nil, 0, fmt.Errorf("%w: second return value must implement error", ErrNoConstructor)
	}

	return t.Out(0), t.NumOut(), nil
}

// selectPlan validates every candidate constructor and picks the one with
// the most parameters ("richest wins"). Ties keep the earliest candidate.
// All candidates must agree on the contract type. Returns the plan and the
// natural contract.
func selectPlan(candidates []reflect.Value) (*plan, reflect.Type, error) {
	if len(candidates) == 0 {
		return nil, nil, fmt.Errorf("%w: no constructor supplied", ErrNoConstructor)
	}

	var (
		contract reflect.Type
		best     reflect.Value
		bestOuts int
	)

	for i, cand := range candidates {
		out, outs, err := checkConstructor(cand)
		if err != nil {
			return nil, nil, err
		}

		if i == 0 {
			contract = out
			best, bestOuts = cand, outs
			continue
		}

		if out != contract {
			return nil, nil, fmt.Errorf("%w: candidate returns %s, want %s", ErrNoConstructor, out, contract)
		}
		if cand.Type().NumIn() > best.Type().NumIn() {
			best, bestOuts = cand, outs
		}
	}

	fnType := best.Type()
	params := make([]reflect.Type, fnType.NumIn())
	for i := range params {
		params[i] = fnType.In(i)
	}

	return &plan{ctor: best, params: params, returns: bestOuts}, contract, nil
}

func kindOf(v reflect.Value) string {
	if !v.IsValid() {
		return "nil"
	}
	return v.Type().String()
}
