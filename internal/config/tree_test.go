package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const readerYAML = `
username: root
password: secret
connection:
  - jdbcUrl: ["jdbc:mysql://src:3306/shop", "jdbc:mysql://replica:3306/shop"]
    table: ["orders", "order_items"]
  - jdbcUrl: ["jdbc:mysql://other:3306/shop"]
    querySql: ["SELECT a,b FROM orders"]
`

func TestTree_Paths(t *testing.T) {
	tree, err := ParseTree([]byte(readerYAML))
	require.NoError(t, err)

	tests := []struct {
		name   string
		path   string
		want   string
		wantOK bool
	}{
		{name: "top level scalar", path: "username", want: "root", wantOK: true},
		{name: "indexed list item", path: "connection[0].table[1]", want: "order_items", wantOK: true},
		{name: "second block", path: "connection[1].querySql[0]", want: "SELECT a,b FROM orders", wantOK: true},
		{name: "index out of range", path: "connection[2].table[0]", wantOK: false},
		{name: "missing key", path: "connection[0].querySql[0]", wantOK: false},
		{name: "list is not scalar", path: "connection[0].table", wantOK: false},
		{name: "malformed index", path: "connection[x].table[0]", wantOK: false},
		{name: "unterminated index", path: "connection[0.table", wantOK: false},
		{name: "empty element", path: "connection..table", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tree.String(tt.path)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTree_FirstString(t *testing.T) {
	tree, err := ParseTree([]byte(`
connection:
  - jdbcUrl: jdbc:mysql://dst:3306/shop
  - jdbcUrl: ["jdbc:mysql://src:3306/shop"]
  - jdbcUrl: []
`))
	require.NoError(t, err)

	got, ok := tree.FirstString("connection[0].jdbcUrl")
	assert.True(t, ok)
	assert.Equal(t, "jdbc:mysql://dst:3306/shop", got)

	got, ok = tree.FirstString("connection[1].jdbcUrl")
	assert.True(t, ok)
	assert.Equal(t, "jdbc:mysql://src:3306/shop", got)

	_, ok = tree.FirstString("connection[2].jdbcUrl")
	assert.False(t, ok)
}

func TestTree_StringsAndList(t *testing.T) {
	tree, err := ParseTree([]byte(readerYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"orders", "order_items"}, tree.Strings("connection[0].table"))
	assert.Equal(t, []string{"root"}, tree.Strings("username"))
	assert.Nil(t, tree.Strings("connection[1].table"))

	blocks := tree.List("connection")
	require.Len(t, blocks, 2)
	first, ok := blocks[1].FirstString("jdbcUrl")
	assert.True(t, ok)
	assert.Equal(t, "jdbc:mysql://other:3306/shop", first)

	assert.Nil(t, tree.List("username"))
}

func TestTree_Bool(t *testing.T) {
	tree, err := ParseTree([]byte(`
enabled: true
disabled: false
quoted: "TRUE"
garbage: "maybe"
number: 1
`))
	require.NoError(t, err)

	assert.True(t, tree.Bool("enabled", false))
	assert.False(t, tree.Bool("disabled", true))
	assert.True(t, tree.Bool("quoted", false))
	assert.False(t, tree.Bool("garbage", false))
	assert.True(t, tree.Bool("number", true))
	assert.False(t, tree.Bool("absent", false))
}

func TestTree_NilSafe(t *testing.T) {
	var tree *Tree
	_, ok := tree.Get("anything")
	assert.False(t, ok)
	assert.Nil(t, tree.Sub("anything"))
	assert.False(t, tree.Bool("anything", false))
	assert.Nil(t, tree.Raw())

	empty := NewTree(nil)
	assert.False(t, empty.Exists(""))
}

func TestTree_Sub(t *testing.T) {
	tree, err := ParseTree([]byte(`writer: {parameter: {autoCreateTable: true}}`))
	require.NoError(t, err)

	param := tree.Sub("writer.parameter")
	require.NotNil(t, param)
	assert.True(t, param.Bool(KeyAutoCreateTable, false))
	assert.Nil(t, tree.Sub("reader.parameter"))
}

func TestParseTree_Invalid(t *testing.T) {
	_, err := ParseTree([]byte("a: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error decoding YAML")
}

func TestTree_Lookup(t *testing.T) {
	tree, err := ParseTree([]byte(readerYAML))
	require.NoError(t, err)

	v, ok := tree.Lookup("connection[0].username", "username")
	assert.True(t, ok)
	assert.Equal(t, "root", v)

	_, ok = tree.Lookup("connection[0].username", "user")
	assert.False(t, ok)
}
