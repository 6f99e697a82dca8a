package property

import "github.com/hupe1980/edgeprop/device"

// NoValue is the value type of the dummy property. It is distinct from every
// real value type.
type NoValue struct{}

// Accessor reads the values of one partition.
type Accessor[T any] interface {
	Value(e int64) T
}

// EdgeView is the capability shared by real and dummy views: producing a
// per-partition value accessor.
type EdgeView[T any, A Accessor[T]] interface {
	Partition(i int) A
}

// Dummy is the zero-storage property of a graph without this kind of edge data.
type Dummy struct{}

// View returns the dummy view. It never allocates.
func (Dummy) View() DummyView { return DummyView{} }

// DummyView is the view of a Dummy property.
type DummyView struct{}

// Partition returns an accessor that never touches memory.
func (DummyView) Partition(int) DummyValues { return DummyValues{} }

// DummyValues is the accessor of a DummyView partition.
type DummyValues struct{}

// Value returns NoValue{}.
func (DummyValues) Value(int64) NoValue { return NoValue{} }

// IsDummy reports whether V is the dummy view type. The result depends only on
// the type argument, so each instantiation folds to a constant branch.
func IsDummy[V any]() bool {
	var v V
	_, ok := any(v).(DummyView)
	return ok
}

// HasValue reports whether T is a real value type.
func HasValue[T any]() bool {
	var v T
	_, ok := any(v).(NoValue)
	return !ok
}

var (
	_ EdgeView[NoValue, DummyValues]                                = DummyView{}
	_ EdgeView[float32, Values[float32, device.ConstIter[float32]]] = ConstView[float32]{}
	_ EdgeView[float32, Values[float32, device.Iter[float32]]]      = MutView[float32]{}
)
