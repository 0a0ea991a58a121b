package dom

import (
	"testing"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_LayoutCollapsesMargins(t *testing.T) {
	doc := NewDocument(320, 600)
	l := doc.NewList(100, 0)
	a := l.AppendWithMargins("a", 40, 10, 6)
	l.AppendText()
	b := l.AppendWithMargins("b", 40, 4, 8)
	c := l.Append("c", 20)

	assert.Equal(t, 10.0, a.Layout().Top)
	assert.Equal(t, 56.0, b.Layout().Top, "gap is max(6, 4)")
	assert.Equal(t, 104.0, c.Layout().Top, "gap is max(8, 0)")
	assert.Equal(t, 124.0, l.ContentHeight())
	assert.Equal(t, 48.0, b.Layout().OuterHeight())
}

func TestList_ChildrenIncludeText(t *testing.T) {
	doc := NewDocument(320, 600)
	l := doc.NewList(0, 0)
	l.Append("a", 10)
	l.AppendText()
	l.Append("b", 10)

	kids := l.Children()
	require.Len(t, kids, 3)
	assert.False(t, kids[1].IsElement())
	assert.Equal(t, []string{"a", "b"}, l.Order())
}

func TestItem_ClientRect(t *testing.T) {
	doc := NewDocument(320, 300)
	l := doc.NewList(50, 100)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		l.Append(id, 40)
	}
	c := l.Item("c")

	assert.Equal(t, 130.0, c.ClientRect().Top)

	l.SetScrollTop(30)
	assert.Equal(t, 100.0, c.ClientRect().Top)

	c.SetTransform(domain.Transform{Y: 15})
	assert.Equal(t, 115.0, c.ClientRect().Top)

	l.SetScrollTop(1000)
	assert.Equal(t, 100.0, l.ScrollTop(), "clamped to content minus client height")
}

func TestBody_ScrollMovesLists(t *testing.T) {
	doc := NewDocument(320, 200)
	l := doc.NewList(0, 0)
	for i := 0; i < 10; i++ {
		l.Append(string(rune('a'+i)), 50)
	}
	body := doc.Body()
	assert.Equal(t, 500.0, body.ScrollHeight())
	assert.False(t, l.Scrollable())

	body.SetScrollTop(120)
	assert.Equal(t, -120.0, l.ClientRect().Top)
	assert.Equal(t, -20.0, l.Item("c").ClientRect().Top)

	body.SetScrollTop(900)
	assert.Equal(t, 300.0, body.ScrollTop())
}

func TestList_MoveBefore(t *testing.T) {
	doc := NewDocument(320, 600)
	l := doc.NewList(0, 0)
	for _, id := range []string{"a", "b", "c", "d"} {
		l.Append(id, 10)
	}

	require.NoError(t, l.MoveBefore(l.Item("c"), l.Item("a")))
	assert.Equal(t, []string{"c", "a", "b", "d"}, l.Order())

	require.NoError(t, l.MoveBefore(l.Item("c"), nil))
	assert.Equal(t, []string{"a", "b", "d", "c"}, l.Order())

	require.NoError(t, l.MoveBefore(l.Item("b"), l.Item("b")))
	assert.Equal(t, []string{"a", "b", "d", "c"}, l.Order())

	other := doc.NewList(0, 0).Append("x", 10)
	assert.Error(t, l.MoveBefore(other, nil))
	assert.Error(t, l.MoveBefore(l.Item("a"), other))
}

func TestList_ElementAt(t *testing.T) {
	doc := NewDocument(320, 600)
	l := doc.NewList(20, 0)
	l.Append("a", 30)
	l.Append("b", 30)

	assert.Equal(t, "b", l.ElementAt(domain.Point{X: 5, Y: 55}).ID())
	assert.Nil(t, l.ElementAt(domain.Point{X: 5, Y: 5}))
}

func TestDocument_Focus(t *testing.T) {
	doc := NewDocument(320, 600)
	l := doc.NewList(0, 0)
	a := l.Append("a", 30)

	var seen []domain.Element
	doc.OnFocusChange(func(el domain.Element) { seen = append(seen, el) })

	a.Focus()
	a.Focus()
	l.Focus()
	doc.Blur()

	assert.Equal(t, []domain.Element{a, l, nil}, seen)
	assert.True(t, domain.Contains(l, a))
	assert.False(t, domain.Contains(a, l))
}

func TestStyle(t *testing.T) {
	doc := NewDocument(320, 600)
	a := doc.NewList(0, 0).Append("a", 30)

	a.SetProperty(domain.PropZIndex, "99999")
	a.AddClass("x")
	a.AddClass("")
	assert.Equal(t, "99999", a.Property(domain.PropZIndex))
	assert.Equal(t, []string{"x"}, a.Classes())

	a.SetProperty(domain.PropZIndex, "")
	a.RemoveClass("x")
	assert.Equal(t, "", a.Property(domain.PropZIndex))
	assert.False(t, a.HasClass("x"))
}
