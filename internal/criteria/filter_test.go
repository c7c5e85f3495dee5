package criteria

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

func TestEquals_RendersPredicateAndParameters(t *testing.T) {
	tests := []struct {
		column string
		value  any
	}{
		{"foo", "bar"},
		{"foofoo", "barbar"},
		{"example", 12345},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			f := Equals(tt.column, tt.value)
			key := md5hex(tt.column + fmt.Sprint(tt.value))

			assert.Equal(t, fmt.Sprintf(`"%s" = :%s`, tt.column, key), f.Predicate())
			assert.Equal(t, map[string]any{key: tt.value}, f.Parameters())
			assert.Equal(t, key, f.Key())
			assert.Equal(t, tt.column, f.Column())
			assert.Equal(t, tt.value, f.Value())
		})
	}
}

func TestEquals_SameInputSameNames(t *testing.T) {
	a := Equals("user_id", 42)
	b := Equals("user_id", 42)

	assert.Equal(t, a.Predicate(), b.Predicate())
	assert.Equal(t, a.Parameters(), b.Parameters())

	c := Equals("user_id", 43)
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestLessThan_DoesNotCollideWithEquals(t *testing.T) {
	eq := Equals("created_at", "2020")
	lt := LessThan("created_at", "2020")

	assert.NotEqual(t, eq.Key(), lt.Key())
	assert.Equal(t, fmt.Sprintf(`"created_at" < :%s`, lt.Key()), lt.Predicate())
	assert.Equal(t, map[string]any{lt.Key(): "2020"}, lt.Parameters())
}

func TestAnd_RendersChildrenInOrder(t *testing.T) {
	one := Equals("foobar", "barfoo")
	two := Equals("foofoo", "barbar")

	f := And(one, two)

	assert.Equal(t, fmt.Sprintf("(%s) AND (%s)", one.Predicate(), two.Predicate()), f.Predicate())
	assert.Equal(t, map[string]any{one.Key(): "barfoo", two.Key(): "barbar"}, f.Parameters())

	reversed := And(two, one)
	assert.NotEqual(t, f.Predicate(), reversed.Predicate())
	assert.Equal(t, f.Parameters(), reversed.Parameters())
}

func TestOr_RendersChildrenInOrder(t *testing.T) {
	one := Equals("foobar", "barfoo")
	two := Equals("foofoo", "barbar")
	three := Equals("bar", 1)

	f := Or(one, two, three)

	assert.Equal(t,
		fmt.Sprintf("(%s) OR (%s) OR (%s)", one.Predicate(), two.Predicate(), three.Predicate()),
		f.Predicate(),
	)
	assert.Len(t, f.Parameters(), 3)
	assert.Len(t, f.Filters(), 3)
}

func TestNestedComposition_ParametersMatchPredicate(t *testing.T) {
	inner := Or(Equals("group", "a"), Equals("group", "b"))
	f := And(Equals("user_id", 7), inner)

	pred := f.Predicate()
	params := f.Parameters()
	require.Len(t, params, 3)

	for name := range params {
		assert.Contains(t, pred, ":"+name)
	}
	assert.Equal(t,
		fmt.Sprintf("(%s) AND ((%s) OR (%s))",
			Equals("user_id", 7).Predicate(),
			Equals("group", "a").Predicate(),
			Equals("group", "b").Predicate()),
		pred,
	)
}

func TestFilters_ReturnsCopy(t *testing.T) {
	f := And(Equals("a", 1), Equals("b", 2))
	got := f.Filters()
	got[0] = Equals("c", 3)

	assert.Equal(t, Equals("a", 1), f.Filters()[0])
}
