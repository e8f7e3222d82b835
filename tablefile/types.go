package tablefile

import (
	"reflect"
	"strings"

	"github.com/nanahuse/constmapper"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// columnType is a cell type that can be declared in a table document
type columnType struct {
	name   string       // as written in documents
	typ    reflect.Type // cell type
	scalar reflect.Type // key type
}

var (
	byName = map[string]columnType{}
	byType = map[reflect.Type]columnType{}
)

func register(name string, typ, scalar reflect.Type) {
	ct := columnType{name: name, typ: typ, scalar: scalar}
	byName[name] = ct
	byType[typ] = ct
}

func registerComparable[T comparable](name string) {
	scalar := reflect.TypeOf((*T)(nil)).Elem()
	register(name, scalar, scalar)
	register("anyable:"+name, reflect.TypeOf(constmapper.Anyable[T]{}), scalar)
}

func registerOrdered[T constraints.Ordered](name string) {
	registerComparable[T](name)
	register("range:"+name, reflect.TypeOf(constmapper.Range[T]{}), reflect.TypeOf((*T)(nil)).Elem())
}

func init() {
	registerComparable[bool]("bool")
	registerOrdered[string]("string")
	registerOrdered[int]("int")
	registerOrdered[int8]("int8")
	registerOrdered[int16]("int16")
	registerOrdered[int32]("int32")
	registerOrdered[int64]("int64")
	registerOrdered[uint]("uint")
	registerOrdered[uint8]("uint8")
	registerOrdered[uint16]("uint16")
	registerOrdered[uint32]("uint32")
	registerOrdered[uint64]("uint64")
	registerOrdered[float32]("float32")
	registerOrdered[float64]("float64")
}

// TypeNames returns the names of all column types a document can declare,
// sorted
func TypeNames() []string {
	names := maps.Keys(byName)
	slices.Sort(names)
	return names
}

// TypeName returns the document name of a cell type
func TypeName(t reflect.Type) (string, bool) {
	ct, ok := byType[t]
	return ct.name, ok
}

// predicate checks whether cells of the type are matchers rather than values
func (ct columnType) predicate() bool {
	return strings.Contains(ct.name, ":")
}
