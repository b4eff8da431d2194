package list

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListPushBackPreservesOrder(t *testing.T) {
	l := New[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.PushBack(3)

	require.Equal(t, 3, l.Len())
	var got []int
	for e := l.Front(); e != nil; e = e.Next() {
		got = append(got, e.Value)
	}
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestListRemoveUnlinksElement(t *testing.T) {
	l := New[string]()
	a := l.PushBack("a")
	l.PushBack("b")
	c := l.PushBack("c")

	v, err := l.Remove(a)
	require.NoError(t, err)
	require.Equal(t, "a", v)
	require.Equal(t, 2, l.Len())
	require.Equal(t, "b", l.Front().Value)

	_, err = l.Remove(c)
	require.NoError(t, err)
	require.Equal(t, 1, l.Len())
	require.Equal(t, "b", l.Back().Value)
}

func TestListRemoveNotInListErrors(t *testing.T) {
	l1 := New[int]()
	l2 := New[int]()
	e := l2.PushBack(1)

	_, err := l1.Remove(e)
	require.ErrorIs(t, err, ErrorListElementIsNotInTheList)
}

func TestListMoveToFrontAndBack(t *testing.T) {
	l := New[int]()
	a := l.PushBack(1)
	l.PushBack(2)
	c := l.PushBack(3)

	l.MoveToFront(c)
	require.Equal(t, 3, l.Front().Value)

	l.MoveToBack(a)
	require.Equal(t, 1, l.Back().Value)
}

func TestListCleanEmptiesList(t *testing.T) {
	l := New[int]()
	l.PushBack(1)
	l.PushBack(2)
	l.Clean()
	require.Equal(t, 0, l.Len())
	require.Nil(t, l.Front())
}
