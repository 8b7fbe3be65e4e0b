package jsontree_test

import (
	"encoding/json"
	"testing"

	"github.com/Amund211/dotaprofile/internal/jsontree"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("nested objects and lists", func(t *testing.T) {
		t.Parallel()

		doc := []byte(`{
			"matchCount": 100,
			"steamAccount": {"name": "someone", "isAnonymous": false, "battlepass": {"level": 312}},
			"names": [{"name": "first"}, {"name": "second"}, "bare", 7],
			"empty": {},
			"nothing": null
		}`)

		tree, err := jsontree.Parse(doc)
		require.NoError(t, err)
		require.Equal(t, jsontree.KindObject, tree.Kind())

		level, ok := tree.Path("steamAccount", "battlepass", "level")
		require.True(t, ok)
		levelInt, ok := level.Int()
		require.True(t, ok)
		require.Equal(t, int64(312), levelInt)

		name, ok := tree.Path("steamAccount", "name")
		require.True(t, ok)
		nameStr, ok := name.Str()
		require.True(t, ok)
		require.Equal(t, "someone", nameStr)

		names, ok := tree.Field("names")
		require.True(t, ok)
		require.Equal(t, jsontree.KindList, names.Kind())
		require.Equal(t, 4, names.Len())

		first, ok := names.Index(0)
		require.True(t, ok)
		firstName, ok := first.Path("name")
		require.True(t, ok)
		firstNameStr, _ := firstName.Str()
		require.Equal(t, "first", firstNameStr)

		second, ok := names.Index(1)
		require.True(t, ok)
		secondName, _ := second.Path("name")
		secondNameStr, _ := secondName.Str()
		require.Equal(t, "second", secondNameStr)

		bare, ok := names.Index(2)
		require.True(t, ok)
		bareStr, ok := bare.Str()
		require.True(t, ok)
		require.Equal(t, "bare", bareStr)

		seven, ok := names.Index(3)
		require.True(t, ok)
		sevenInt, ok := seven.Int()
		require.True(t, ok)
		require.Equal(t, int64(7), sevenInt)

		_, ok = names.Index(4)
		require.False(t, ok)

		empty, ok := tree.Field("empty")
		require.True(t, ok)
		require.Equal(t, jsontree.KindObject, empty.Kind())
		require.True(t, empty.IsEmpty())
		require.Empty(t, empty.Keys())

		nothing, ok := tree.Field("nothing")
		require.True(t, ok)
		require.True(t, nothing.IsNull())

		_, ok = tree.Field("missing")
		require.False(t, ok)
	})

	t.Run("64 bit numbers are exact", func(t *testing.T) {
		t.Parallel()

		tree, err := jsontree.Parse([]byte(`{"steamid": 76561198055517293}`))
		require.NoError(t, err)

		steamID, ok := tree.Field("steamid")
		require.True(t, ok)
		value, ok := steamID.Int()
		require.True(t, ok)
		require.Equal(t, int64(76561198055517293), value)
	})

	t.Run("floats", func(t *testing.T) {
		t.Parallel()

		tree, err := jsontree.Parse([]byte(`[0.55, 3]`))
		require.NoError(t, err)

		first, _ := tree.Index(0)
		f, ok := first.Float()
		require.True(t, ok)
		require.InDelta(t, 0.55, f, 1e-9)

		_, ok = first.Int()
		require.False(t, ok)

		second, _ := tree.Index(1)
		f, ok = second.Float()
		require.True(t, ok)
		require.Equal(t, 3.0, f)
	})

	t.Run("scalar documents", func(t *testing.T) {
		t.Parallel()

		tree, err := jsontree.Parse([]byte(`true`))
		require.NoError(t, err)
		b, ok := tree.Bool()
		require.True(t, ok)
		require.True(t, b)

		tree, err = jsontree.Parse([]byte(`null`))
		require.NoError(t, err)
		require.True(t, tree.IsNull())
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Parallel()

		_, err := jsontree.Parse([]byte(`{"a": 1,`))
		require.Error(t, err)

		_, err = jsontree.Parse([]byte(`<html></html>`))
		require.Error(t, err)

		_, err = jsontree.Parse([]byte(`{"a": 1} {"b": 2}`))
		require.Error(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		t.Parallel()

		for _, doc := range []string{"", " ", "\n\t"} {
			_, err := jsontree.Parse([]byte(doc))
			require.ErrorIs(t, err, jsontree.ErrEmptyDocument)
		}
	})
}

func TestAccessorsOnWrongKind(t *testing.T) {
	t.Parallel()

	str := jsontree.String("3")

	_, ok := str.Int()
	require.False(t, ok)
	_, ok = str.Bool()
	require.False(t, ok)
	_, ok = str.Field("a")
	require.False(t, ok)
	_, ok = str.Index(0)
	require.False(t, ok)
	require.Nil(t, str.Items())
	require.Nil(t, str.Keys())
	require.Equal(t, 0, str.Len())
	require.False(t, str.IsEmpty())

	var zero jsontree.Value
	require.True(t, zero.IsNull())
}

func TestItemsIsACopy(t *testing.T) {
	t.Parallel()

	list := jsontree.List(jsontree.Int(1), jsontree.Int(2))
	items := list.Items()
	items[0] = jsontree.String("changed")

	first, ok := list.Index(0)
	require.True(t, ok)
	value, ok := first.Int()
	require.True(t, ok)
	require.Equal(t, int64(1), value)
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	doc := `{"a":[{"b":{}},1,"x",null,true],"steamid":76561198055517293}`

	var tree jsontree.Value
	require.NoError(t, json.Unmarshal([]byte(doc), &tree))

	out, err := json.Marshal(tree)
	require.NoError(t, err)
	require.JSONEq(t, doc, string(out))
}
