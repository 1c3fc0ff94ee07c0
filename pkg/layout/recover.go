package layout

import "github.com/matzehuels/reflow/pkg/errors"

// violation aborts the current generation. The engine's caches may be left
// partially updated; the engine must not be reused afterwards.
func violation(code errors.Code, format string, args ...any) {
	panic(errors.New(code, format, args...))
}

// Recover converts a contract-violation panic raised by [Engine.Recompute]
// into an error stored in *errp. Other panics are re-raised. It must be
// deferred directly:
//
//	func run() (err error) {
//	    defer layout.Recover(&err)
//	    eng.Recompute(topo, policy, offset)
//	    return nil
//	}
func Recover(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	if err, ok := r.(*errors.Error); ok && errors.IsContractViolation(err) {
		*errp = err
		return
	}
	panic(r)
}
