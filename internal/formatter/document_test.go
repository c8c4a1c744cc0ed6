package formatter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/nmosnav/internal/jsondoc"
)

func mustDecode(t *testing.T, s string) *jsondoc.Node {
	t.Helper()
	node, err := jsondoc.Decode([]byte(s))
	require.NoError(t, err)
	return node
}

func plainLines(lines []DocLine) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.Plain())
	}
	return out
}

func TestDocumentLinesSingleMember(t *testing.T) {
	lines := DocumentLines(mustDecode(t, `{"label":"node1"}`))
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"{", `  "label": "node1"`, "}"}, plainLines(lines))
	assert.Equal(t, LineBrace, lines[0].Kind)
	assert.Equal(t, LineKeyValue, lines[1].Kind)
	assert.Equal(t, `"label"`, lines[1].Key)
	assert.Equal(t, `"node1"`, lines[1].Text)
	assert.Equal(t, LineBrace, lines[2].Kind)
}

func TestDocumentLinesMatchesIndentedJSON(t *testing.T) {
	input := `{"id":"3b8be755","version":"1441704616:587121295","caps":{},"tags":[],` +
		`"interfaces":[{"name":"eth0","chassis_id":null,"port_id":"74-26-96-db-87-31"}],` +
		`"clocks":[{"name":"clk0","ref_type":"internal"},"x",1.5,true],"nested":{"deep":{"v":[1,2]}}}`

	// json.Indent works on the raw text, so it keeps member order.
	var want bytes.Buffer
	require.NoError(t, json.Indent(&want, []byte(input), "", "  "))

	got := strings.Join(plainLines(DocumentLines(mustDecode(t, input))), "\n")
	assert.Equal(t, want.String(), got)
}

func TestDocumentLinesPreservesKeyOrder(t *testing.T) {
	lines := DocumentLines(mustDecode(t, `{"z":1,"a":2,"m":3}`))
	require.Len(t, lines, 5)
	assert.Equal(t, `"z"`, lines[1].Key)
	assert.Equal(t, `"a"`, lines[2].Key)
	assert.Equal(t, `"m"`, lines[3].Key)
	assert.Equal(t, "1,", lines[1].Text)
	assert.Equal(t, "3", lines[3].Text)
}

func TestDocumentLinesClassification(t *testing.T) {
	lines := DocumentLines(mustDecode(t, `{"list":["a",{"k":1}],"obj":{"x":null}}`))
	want := []struct {
		kind  LineKind
		depth int
		plain string
	}{
		{LineBrace, 0, "{"},
		{LineKeyValue, 1, `  "list": [`},
		{LinePlain, 2, `    "a",`},
		{LineBrace, 2, "    {"},
		{LineKeyValue, 3, `      "k": 1`},
		{LineBrace, 2, "    }"},
		{LineBracket, 1, "  ],"},
		{LineKeyValue, 1, `  "obj": {`},
		{LineKeyValue, 2, `    "x": null`},
		{LineBrace, 1, "  }"},
		{LineBrace, 0, "}"},
	}
	require.Len(t, lines, len(want))
	for i, w := range want {
		assert.Equal(t, w.kind, lines[i].Kind, "line %d kind", i)
		assert.Equal(t, w.depth, lines[i].Depth, "line %d depth", i)
		assert.Equal(t, w.plain, lines[i].Plain(), "line %d text", i)
	}
}

func TestDocumentLinesTrickyStrings(t *testing.T) {
	// Values that would confuse a line-oriented pattern match.
	lines := DocumentLines(mustDecode(t, `{"a":"{","b":"\"x\": [","c":"}"}`))
	require.Len(t, lines, 5)
	for _, l := range lines[1:4] {
		assert.Equal(t, LineKeyValue, l.Kind)
	}
	assert.Equal(t, `"\"x\": [",`, lines[2].Text)
}

func TestDocumentLinesTopLevelArray(t *testing.T) {
	lines := DocumentLines(mustDecode(t, `["a/",2]`))
	assert.Equal(t, []string{"[", `  "a/",`, "  2", "]"}, plainLines(lines))
	assert.Equal(t, LineBracket, lines[0].Kind)
	assert.Equal(t, LinePlain, lines[1].Kind)
	assert.Equal(t, LineBracket, lines[3].Kind)
}

func TestDocumentLinesNil(t *testing.T) {
	assert.Nil(t, DocumentLines(nil))
}

func TestRenderDocumentColorless(t *testing.T) {
	s := NewStyler(Palette{}, true)
	got := RenderDocument(mustDecode(t, `{"label":"node1"}`), s)
	assert.Equal(t, []string{"{", `  "label": "node1"`, "}"}, got)
}

func TestRenderDocumentColored(t *testing.T) {
	s := NewStyler(Palette{}, false)
	node := mustDecode(t, `{"label":"node1","tags":["a"]}`)
	colored := RenderDocument(node, s)
	plain := plainLines(DocumentLines(node))
	require.Len(t, colored, len(plain))

	for i := range colored {
		assert.Equal(t, plain[i], ansi.Strip(colored[i]), "line %d", i)
	}
	assert.NotEqual(t, plain[1], colored[1], "key/value line should carry color")
	assert.True(t, strings.HasPrefix(colored[1], "  \x1b["), "indentation stays uncolored: %q", colored[1])
	assert.Equal(t, `    "a"`, colored[3], "array scalars render in the default color")
}

func TestLineKindString(t *testing.T) {
	assert.Equal(t, "plain", LinePlain.String())
	assert.Equal(t, "key-value", LineKeyValue.String())
	assert.Equal(t, "brace", LineBrace.String())
	assert.Equal(t, "bracket", LineBracket.String())
}
