package repokit

// Binder makes a repo over a Queryer, either the store itself or an open transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind binds q, panicking on a nil Queryer
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}
