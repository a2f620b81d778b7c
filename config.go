package lifo

import (
	"reflect"

	"github.com/teenjuna/lifo/growth"
)

// Config is a config of the stack.
//
// An instance is created by [New] and [From] and passed to every [ConfigFunc]. Setters panic on
// invalid values.
type Config[Item any] struct {
	capacity   int
	growth     growth.Policy
	equal      func(a, b Item) bool
	prometheus *PrometheusConfig
}

type ConfigFunc[Item any] = func(c *Config[Item])

// Capacity sets the initial length of the storage buffer. It only reserves room, the stack is
// still created empty.
func (c *Config[Item]) Capacity(capacity int) {
	if capacity < 0 {
		panic("capacity can't be < 0")
	}
	c.capacity = capacity
}

// Growth sets the policy used to size the storage buffer when a push doesn't fit.
func (c *Config[Item]) Growth(policy growth.Policy) {
	if policy == nil {
		panic("growth policy can't be nil")
	}
	c.growth = policy
}

// Equal sets the equivalence used by [Stack.Contains].
func (c *Config[Item]) Equal(equal func(a, b Item) bool) {
	if equal == nil {
		panic("equal can't be nil")
	}
	c.equal = equal
}

// Prometheus enables the metrics of the stack. See [Prometheus].
func (c *Config[Item]) Prometheus(prometheus *PrometheusConfig) {
	if prometheus == nil {
		panic("prometheus config can't be nil")
	}
	c.prometheus = prometheus
}

func newConfig[Item any](configFuncs ...ConfigFunc[Item]) *Config[Item] {
	c := Config[Item]{}
	c.Capacity(0)
	c.Growth(growth.Default())
	c.Equal(defaultEqual[Item]())
	for _, cf := range configFuncs {
		if cf != nil {
			cf(&c)
		}
	}
	return &c
}

// defaultEqual uses == for comparable types and reflect.DeepEqual for the rest. Types that reach
// an interface go through reflect.DeepEqual too because == panics on incomparable dynamic values.
func defaultEqual[Item any]() func(a, b Item) bool {
	typ := reflect.TypeFor[Item]()
	if typ.Comparable() && !holdsInterface(typ) {
		return func(a, b Item) bool {
			return any(a) == any(b)
		}
	}
	return func(a, b Item) bool {
		return reflect.DeepEqual(a, b)
	}
}

// holdsInterface reports whether a value of typ can contain an interface value compared by ==.
// Pointers and channels compare by address, so their element types don't matter.
func holdsInterface(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Interface:
		return true
	case reflect.Array:
		return holdsInterface(typ.Elem())
	case reflect.Struct:
		for i := range typ.NumField() {
			if holdsInterface(typ.Field(i).Type) {
				return true
			}
		}
	}
	return false
}
