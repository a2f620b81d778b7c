package lifo_test

import (
	"math/rand/v2"
	"runtime"
	"slices"
	"strconv"
	"testing"
	"weak"

	"github.com/teenjuna/lifo"
	"github.com/teenjuna/lifo/growth"
	"github.com/teenjuna/lifo/internal/testing/require"
)

type Item struct {
	ID string
	N1 int
	N2 int
}

var Data = func() []Item {
	items := make([]Item, 0)
	for i := range 1000 {
		items = append(items, Item{
			ID: strconv.Itoa(i),
			N1: rand.IntN(1000),
			N2: rand.IntN(1000),
		})
	}
	return items
}()

func TestNew(t *testing.T) {
	run(t, "Empty", func(t *testing.T) {
		stack := lifo.New[Item]()
		require.Equal(t, stack.Size(), 0)
		require.Equal(t, stack.Capacity(), 0)
		require.Equal(t, stack.ToSlice(), []Item{})
	})

	run(t, "With capacity", func(t *testing.T) {
		stack := lifo.New(func(c *lifo.Config[Item]) {
			c.Capacity(16)
		})
		require.Equal(t, stack.Size(), 0)
		require.Equal(t, stack.Capacity(), 16)

		_, err := stack.Pop()
		require.ErrorIs(t, err, lifo.ErrEmpty)

		for i := range 16 {
			stack.Push(Data[i])
		}
		require.Equal(t, stack.Size(), 16)
		require.Equal(t, stack.Capacity(), 16)
	})

	run(t, "With zero capacity", func(t *testing.T) {
		stack := lifo.New(func(c *lifo.Config[int]) {
			c.Capacity(0)
		})
		stack.Push(1)
		require.Equal(t, stack.Size(), 1)
		require.Equal(t, stack.Capacity(), 2)
	})

	run(t, "With nil config func", func(t *testing.T) {
		stack := lifo.New[int](nil)
		require.Equal(t, stack.Size(), 0)
	})
}

func TestFrom(t *testing.T) {
	run(t, "Preserves source order", func(t *testing.T) {
		stack, err := lifo.From(slices.Values(Data))
		require.Nil(t, err)
		require.Equal(t, stack.Size(), len(Data))

		for i := len(Data) - 1; i >= 0; i-- {
			item, err := stack.Pop()
			require.Nil(t, err)
			require.Equal(t, item, Data[i])
		}
	})

	run(t, "Uses growth policy", func(t *testing.T) {
		stack, err := lifo.From(slices.Values([]int{1, 2, 3, 4, 5}), func(c *lifo.Config[int]) {
			c.Growth(growth.Exact())
		})
		require.Nil(t, err)
		require.Equal(t, stack.Capacity(), 5)
		require.Equal(t, stack.ToSlice(), []int{5, 4, 3, 2, 1})
	})

	run(t, "Empty source", func(t *testing.T) {
		stack, err := lifo.From(slices.Values([]int{}))
		require.Nil(t, err)
		require.Equal(t, stack.Size(), 0)
	})

	run(t, "Nil source", func(t *testing.T) {
		stack, err := lifo.From[int](nil, func(c *lifo.Config[int]) {
			t.Fatal("config must not be applied")
		})
		require.ErrorIs(t, err, lifo.ErrNilSource)
		require.Nil(t, stack)
	})
}

func TestPushPop(t *testing.T) {
	run(t, "LIFO order", func(t *testing.T) {
		stack := lifo.New[Item]()
		for i, item := range Data {
			stack.Push(item)
			require.Equal(t, stack.Size(), i+1)
		}

		for i := len(Data) - 1; i >= 0; i-- {
			item, err := stack.Pop()
			require.Nil(t, err)
			require.Equal(t, item, Data[i])
			require.Equal(t, stack.Size(), i)
		}

		_, err := stack.Pop()
		require.ErrorIs(t, err, lifo.ErrEmpty)
	})

	run(t, "Doubling growth", func(t *testing.T) {
		stack := lifo.New[int]()
		var capacities []int
		for i := range 20 {
			stack.Push(i)
			if len(capacities) == 0 || capacities[len(capacities)-1] != stack.Capacity() {
				capacities = append(capacities, stack.Capacity())
			}
		}
		require.Equal(t, capacities, []int{2, 6, 14, 30})
	})

	run(t, "Capacity doesn't shrink", func(t *testing.T) {
		stack := lifo.New[int]()
		for i := range 100 {
			stack.Push(i)
		}
		capacity := stack.Capacity()
		for range 100 {
			_, err := stack.Pop()
			require.Nil(t, err)
			require.Equal(t, stack.Capacity(), capacity)
		}
	})

	run(t, "Pop after push and pop", func(t *testing.T) {
		stack := lifo.New[int]()
		stack.Push(1)

		item, err := stack.Pop()
		require.Nil(t, err)
		require.Equal(t, item, 1)
		require.True(t, stack.Capacity() > 0)

		item, err = stack.Pop()
		require.ErrorIs(t, err, lifo.ErrEmpty)
		require.Equal(t, item, 0)
		require.Equal(t, stack.Size(), 0)
	})

	run(t, "Random operations keep size in bounds", func(t *testing.T) {
		stack := lifo.New[int]()
		var model []int
		for i := range 10_000 {
			switch rand.IntN(3) {
			case 0, 1:
				stack.Push(i)
				model = append(model, i)
			case 2:
				item, err := stack.Pop()
				if len(model) == 0 {
					require.ErrorIs(t, err, lifo.ErrEmpty)
					break
				}
				require.Nil(t, err)
				require.Equal(t, item, model[len(model)-1])
				model = model[:len(model)-1]
			}
			require.Equal(t, stack.Size(), len(model))
			require.True(t, stack.Size() <= stack.Capacity())
		}
	})

	run(t, "Zero values", func(t *testing.T) {
		stack := lifo.New[*Item]()
		stack.Push(nil)
		require.Equal(t, stack.Size(), 1)
		require.True(t, stack.Contains(nil))

		item, err := stack.Pop()
		require.Nil(t, err)
		require.Nil(t, item)
	})

	run(t, "Misbehaving growth policy", func(t *testing.T) {
		stack := lifo.New(func(c *lifo.Config[int]) {
			c.Growth(growth.PolicyFunc(func(capacity, required int) int {
				return 0
			}))
		})
		for i := range 10 {
			stack.Push(i)
			require.Equal(t, stack.Capacity(), i+1)
		}
		require.Equal(t, stack.ToSlice(), []int{9, 8, 7, 6, 5, 4, 3, 2, 1, 0})
	})
}

func TestPeek(t *testing.T) {
	stack := lifo.New[string]()

	_, err := stack.Peek()
	require.ErrorIs(t, err, lifo.ErrEmpty)

	stack.Push("a")
	stack.Push("b")

	item, err := stack.Peek()
	require.Nil(t, err)
	require.Equal(t, item, "b")
	require.Equal(t, stack.Size(), 2)

	_, _ = stack.Pop()
	_, _ = stack.Pop()

	item, err = stack.Peek()
	require.ErrorIs(t, err, lifo.ErrEmpty)
	require.Equal(t, item, "")
}

func TestToSlice(t *testing.T) {
	run(t, "Top first", func(t *testing.T) {
		stack := lifo.New[string]()
		stack.Push("a")
		stack.Push("b")
		stack.Push("c")
		require.Equal(t, stack.ToSlice(), []string{"c", "b", "a"})
	})

	run(t, "Independent copy", func(t *testing.T) {
		stack, _ := lifo.From(slices.Values([]int{1, 2, 3}))
		items := stack.ToSlice()
		items[0] = 100

		item, err := stack.Peek()
		require.Nil(t, err)
		require.Equal(t, item, 3)
		require.Equal(t, stack.ToSlice(), []int{3, 2, 1})
	})

	run(t, "Doesn't invalidate iterators", func(t *testing.T) {
		stack, _ := lifo.From(slices.Values([]int{1, 2, 3}))
		it := stack.Iterator()
		require.True(t, it.Next())
		_ = stack.ToSlice()
		require.True(t, it.Next())
		require.Nil(t, it.Err())
	})
}

func TestContains(t *testing.T) {
	run(t, "Live items", func(t *testing.T) {
		stack, _ := lifo.From(slices.Values(Data))
		for _, item := range Data {
			require.True(t, stack.Contains(item))
		}
		require.False(t, stack.Contains(Item{ID: "missing"}))
	})

	run(t, "Popped item", func(t *testing.T) {
		stack := lifo.New[int]()
		stack.Push(7)
		_, _ = stack.Pop()
		require.False(t, stack.Contains(7))
	})

	run(t, "Zero value in stale slots", func(t *testing.T) {
		stack := lifo.New(func(c *lifo.Config[int]) {
			c.Capacity(8)
		})
		require.False(t, stack.Contains(0))
		stack.Push(1)
		require.False(t, stack.Contains(0))
	})

	run(t, "Incomparable items", func(t *testing.T) {
		stack := lifo.New[[]int]()
		stack.Push([]int{1, 2})
		require.True(t, stack.Contains([]int{1, 2}))
		require.False(t, stack.Contains([]int{2, 1}))
	})

	run(t, "Interface items", func(t *testing.T) {
		stack := lifo.New[any]()
		stack.Push([]int{1})
		stack.Push("a")
		require.True(t, stack.Contains([]int{1}))
		require.True(t, stack.Contains("a"))
		require.False(t, stack.Contains(1))
	})

	run(t, "Struct with interface field", func(t *testing.T) {
		type boxed struct{ V any }
		stack := lifo.New[boxed]()
		stack.Push(boxed{V: []int{1}})
		stack.Push(boxed{V: "a"})
		require.True(t, stack.Contains(boxed{V: []int{1}}))
		require.True(t, stack.Contains(boxed{V: "a"}))
		require.False(t, stack.Contains(boxed{V: []int{2}}))
		require.False(t, stack.Contains(boxed{V: map[string]int{}}))
	})

	run(t, "Array of interfaces", func(t *testing.T) {
		stack := lifo.New[[2]any]()
		stack.Push([2]any{[]int{1}, 2})
		require.True(t, stack.Contains([2]any{[]int{1}, 2}))
		require.False(t, stack.Contains([2]any{[]int{1}, 3}))
	})

	run(t, "Pointers compare by identity", func(t *testing.T) {
		a, b := &Item{ID: "1"}, &Item{ID: "1"}
		stack := lifo.New[*Item]()
		stack.Push(a)
		require.True(t, stack.Contains(a))
		require.False(t, stack.Contains(b))
	})

	run(t, "With equal", func(t *testing.T) {
		stack := lifo.New(func(c *lifo.Config[Item]) {
			c.Equal(func(a, b Item) bool { return a.ID == b.ID })
		})
		stack.Push(Item{ID: "1", N1: 1})
		require.True(t, stack.Contains(Item{ID: "1", N1: 2}))
		require.False(t, stack.Contains(Item{ID: "2", N1: 1}))
	})
}

func TestClear(t *testing.T) {
	stack, _ := lifo.From(slices.Values(Data))
	require.True(t, stack.Capacity() > 0)

	stack.Clear()

	require.Equal(t, stack.Size(), 0)
	require.Equal(t, stack.Capacity(), 0)
	require.Equal(t, stack.ToSlice(), []Item{})
	require.False(t, stack.Contains(Data[0]))

	_, err := stack.Pop()
	require.ErrorIs(t, err, lifo.ErrEmpty)
	_, err = stack.Peek()
	require.ErrorIs(t, err, lifo.ErrEmpty)

	stack.Push(Data[0])
	require.Equal(t, stack.Size(), 1)
	require.Equal(t, stack.Capacity(), 2)
}

func TestReleasesItems(t *testing.T) {
	run(t, "After pop", func(t *testing.T) {
		stack := lifo.New[*[64]byte]()
		stack.Push(new([64]byte))
		item := new([64]byte)
		released := weak.Make(item)
		stack.Push(item)
		item = nil

		_, err := stack.Pop()
		require.Nil(t, err)
		runtime.GC()

		require.True(t, released.Value() == nil)
		require.Equal(t, stack.Size(), 1)
		runtime.KeepAlive(stack)
	})

	run(t, "After clear", func(t *testing.T) {
		stack := lifo.New[*[64]byte]()
		item := new([64]byte)
		released := weak.Make(item)
		stack.Push(item)
		item = nil

		stack.Clear()
		runtime.GC()

		require.True(t, released.Value() == nil)
		runtime.KeepAlive(stack)
	})
}

func run(t *testing.T, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		t.Parallel()
		fn(t)
	})
}
