package ranked

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestList_Insert(t *testing.T) {
	l := New[string]()
	assert.Equal(t, 0, l.Len())
	assert.Nil(t, l.Values())

	l.Insert("five", 5)
	l.Insert("one", 1)
	l.Insert("ten", 10)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"ten", "five", "one"}, l.Values())
}

func TestList_Insert_Stable(t *testing.T) {
	l := New[string](4)
	l.Insert("a", 0)
	l.Insert("b", 3)
	l.Insert("c", 0)
	l.Insert("d", 3)
	l.Insert("e", -2)
	assert.Equal(t, []string{"b", "d", "a", "c", "e"}, l.Values(), "Equal priorities should keep insertion order")
}

func TestList_RemoveFunc(t *testing.T) {
	l := New[int]()
	l.Insert(1, 1)
	l.Insert(2, 1)
	l.Insert(3, 1)

	val, ok := l.RemoveFunc(func(v int) bool { return v >= 2 })
	assert.True(t, ok)
	assert.Equal(t, 2, val, "Only the first match should be removed")
	assert.Equal(t, []int{1, 3}, l.Values())

	val, ok = l.RemoveFunc(func(v int) bool { return v == 99 })
	assert.False(t, ok)
	assert.Equal(t, 0, val)
	assert.Equal(t, 2, l.Len())
}

func TestList_All(t *testing.T) {
	l := New[string]()
	l.Insert("low", -1)
	l.Insert("high", 7)

	var (
		priorities []int
		values     []string
	)
	for priority, val := range l.All() {
		priorities = append(priorities, priority)
		values = append(values, val)
	}
	assert.Equal(t, []int{7, -1}, priorities)
	assert.Equal(t, []string{"high", "low"}, values)

	count := 0
	for range l.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestList_Values_Copy(t *testing.T) {
	l := New[int]()
	l.Insert(1, 0)
	vals := l.Values()
	l.Insert(2, 0)
	assert.Equal(t, []int{1}, vals)
	l.Clear()
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, []int{1}, vals)
}
