package filterlist

import (
	"cmp"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	name   string
	status string
}

func sample() []record {
	return []record{
		{name: "alpha", status: "active"},
		{name: "beta", status: "dormant"},
		{name: "gamma", status: "active"},
	}
}

func isActive(r record) bool { return r.status == "active" }

func TestNew(t *testing.T) {
	l := New(sample())
	assert.Equal(t, []int{0, 1, 2}, l.indices)
	assert.Equal(t, 0, l.SelectedIndex())
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.VisibleLen())
}

func TestApplyFilter(t *testing.T) {
	preds := map[string]func(record) bool{
		"active":  isActive,
		"none":    func(record) bool { return false },
		"all":     func(record) bool { return true },
		"b-names": func(r record) bool { return r.name[0] == 'b' },
	}

	for name, pred := range preds {
		t.Run(name, func(t *testing.T) {
			items := sample()
			l := New(items)
			l.ApplyFilter(pred)

			var want []int
			for i, r := range items {
				if pred(r) {
					want = append(want, i)
				}
			}
			assert.Equal(t, len(want), l.VisibleLen())
			if len(want) > 0 {
				assert.Equal(t, want, l.indices)
				assert.Equal(t, 0, l.SelectedIndex())
			} else {
				assert.Empty(t, l.indices)
				assert.Equal(t, -1, l.SelectedIndex())
			}
		})
	}
}

func TestApplyFilterIdempotent(t *testing.T) {
	l := New(sample())
	l.ApplyFilter(isActive)
	first, sel := slices.Clone(l.indices), l.SelectedIndex()

	l.ApplyFilter(isActive)
	assert.Equal(t, first, l.indices)
	assert.Equal(t, sel, l.SelectedIndex())
}

func TestScenarioActiveFilter(t *testing.T) {
	l := New(sample())
	l.ApplyFilter(isActive)
	require.Equal(t, []int{0, 2}, l.indices)
	require.Equal(t, 0, l.SelectedIndex())

	l.Next()
	assert.Equal(t, 1, l.SelectedIndex())
	got, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "gamma", got.name)
}

func TestWraparound(t *testing.T) {
	l := New(sample())

	l.Select(2)
	l.Next()
	assert.Equal(t, 0, l.SelectedIndex(), "next from the last row wraps to the first")

	l.Previous()
	assert.Equal(t, 2, l.SelectedIndex(), "previous from the first row wraps to the last")
}

func TestEmptySafety(t *testing.T) {
	lists := map[string]*List[record]{
		"no items":     New[record](nil),
		"filtered out": New(sample()),
	}
	lists["filtered out"].ApplyFilter(func(record) bool { return false })

	for name, l := range lists {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				l.Next()
				l.Previous()
			})
			_, ok := l.Selected()
			assert.False(t, ok)
			assert.Equal(t, -1, l.SelectedIndex())
			assert.False(t, l.Select(0))
		})
	}
}

func TestSortStable(t *testing.T) {
	items := []record{
		{name: "d", status: "active"},
		{name: "a", status: "dormant"},
		{name: "c", status: "active"},
		{name: "b", status: "dormant"},
	}
	l := New(items)
	l.Sort(func(a, b record) int { return cmp.Compare(a.status, b.status) })

	var names []string
	for _, r := range l.Items() {
		names = append(names, r.name)
	}
	assert.Equal(t, []string{"d", "c", "a", "b"}, names, "equal keys keep their prior order")
}

func TestSortReappliesFilter(t *testing.T) {
	l := New(sample())
	l.ApplyFilter(isActive)
	l.Sort(func(a, b record) int { return cmp.Compare(b.name, a.name) })

	visible := l.Visible()
	require.Len(t, visible, 2)
	assert.Equal(t, "gamma", visible[0].name)
	assert.Equal(t, "alpha", visible[1].name)
	assert.Equal(t, 0, l.SelectedIndex())
}

func TestSetItemsDropsPredicate(t *testing.T) {
	l := New(sample())
	l.ApplyFilter(isActive)
	l.SetItems(append(sample(), record{name: "delta", status: "dormant"}))
	assert.Equal(t, 4, l.VisibleLen())

	l.Refilter()
	assert.Equal(t, 4, l.VisibleLen(), "refilter without a predicate shows everything")
}

func TestSelectItem(t *testing.T) {
	l := New(sample())
	l.ApplyFilter(isActive)

	assert.True(t, l.SelectItem(2))
	assert.Equal(t, 1, l.SelectedIndex())
	assert.False(t, l.SelectItem(1), "filtered out items cannot be selected")
	assert.Equal(t, 1, l.SelectedIndex())

	assert.True(t, l.SelectFunc(func(r record) bool { return r.name == "alpha" }))
	assert.Equal(t, 0, l.SelectedIndex())
}
