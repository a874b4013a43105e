package xmlentry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/textsasset/internal/core/domain"
	"github.com/custodia-labs/textsasset/internal/linecodec"
)

const scenarioPayload = `<entry name="greet">Hello<br></entry><entry name="//note">skip me</entry>`

func TestNew(t *testing.T) {
	codec := New(nil)
	require.NotNil(t, codec)
	assert.Equal(t, domain.MethodXMLEntry, codec.Method())
}

func TestIsComment(t *testing.T) {
	assert.True(t, IsComment("//note"))
	assert.True(t, IsComment("  // spaced"))
	assert.False(t, IsComment("greet"))
	assert.False(t, IsComment("a//b"))
}

func TestExtract_Scenario(t *testing.T) {
	codec := New(nil)

	entries, err := codec.Extract(scenarioPayload)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, domain.Entry{Identity: "greet", Value: "Hello<br>"}, entries[0])
	assert.True(t, entries[1].Comment)
	assert.Equal(t, []string{"Hello<br>"}, domain.Values(entries))

	lines := linecodec.New("")
	assert.Equal(t, `"Hello<br>"`, lines.Encode(entries[0].Value))
}

func TestRewrite_Scenario(t *testing.T) {
	codec := New(nil)

	out, err := codec.Rewrite(scenarioPayload, []string{"Hi"})
	require.NoError(t, err)
	assert.Equal(t, `<entry name="greet">Hi</entry><entry name="//note">skip me</entry>`, out)
}

func TestExtract_UnescapesEntities(t *testing.T) {
	codec := New(nil)

	entries, err := codec.Extract(`<entry name="a">Fish &amp; Chips &lt;3 &quot;ok&quot; &#x27;s</entry>`)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, `Fish & Chips <3 "ok" 's`, entries[0].Value)
}

func TestExtract_MultilineBody(t *testing.T) {
	codec := New(nil)

	payload := "<root>\n  <entry name=\"a\">line1\r\nline2</entry>\n  <entry name=\"b\"></entry>\n</root>"
	entries, err := codec.Extract(payload)
	require.NoError(t, err)
	assert.Equal(t, []string{"line1\r\nline2", ""}, domain.Values(entries))
}

func TestExtract_NoEntries(t *testing.T) {
	codec := New(nil)

	entries, err := codec.Extract("plain text without tags")
	require.NoError(t, err)
	assert.Empty(t, entries)

	count, err := codec.Count("plain text without tags")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCount_MatchesExtract(t *testing.T) {
	codec := New(nil)

	payloads := []string{
		scenarioPayload,
		`<entry name="//a">x</entry><entry name=" //b">y</entry>`,
		`<entry name="a">1</entry><entry name="b">2</entry><entry name="c">3</entry>`,
	}
	for _, p := range payloads {
		entries, err := codec.Extract(p)
		require.NoError(t, err)
		count, err := codec.Count(p)
		require.NoError(t, err)
		assert.Equal(t, len(domain.Values(entries)), count, p)
	}
}

func TestRewrite_EscapesAndPreservesStructure(t *testing.T) {
	codec := New(nil)

	payload := "<list>\n\t<entry name=\"a\">old</entry>\n\t<entry name=\"//c\">keep &amp; me</entry>\n\t<entry name=\"b\">old2</entry>\n</list>"
	out, err := codec.Rewrite(payload, []string{`Tom & "Jerry" <3 'x'`, "two\\nlines"})
	require.NoError(t, err)

	want := "<list>\n\t<entry name=\"a\">Tom &amp; &quot;Jerry&quot; &lt;3 &#x27;x&#x27;</entry>\n" +
		"\t<entry name=\"//c\">keep &amp; me</entry>\n\t<entry name=\"b\">two\nlines</entry>\n</list>"
	assert.Equal(t, want, out)
}

func TestRewrite_PlaceholderAndEmpty(t *testing.T) {
	codec := New(nil)

	out, err := codec.Rewrite(`<entry name="a">x</entry><entry name="b">y</entry>`, []string{"---", ""})
	require.NoError(t, err)
	assert.Equal(t, `<entry name="a"></entry><entry name="b"></entry>`, out)
}

func TestRewrite_RoundTrip(t *testing.T) {
	codec := New(nil)

	payload := `<entry name="a">Fish &amp; Chips</entry><entry name="//n">c</entry><entry name="b">plain</entry>`
	entries, err := codec.Extract(payload)
	require.NoError(t, err)

	out, err := codec.Rewrite(payload, domain.Values(entries))
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestRewrite_CountMismatch(t *testing.T) {
	codec := New(nil)

	_, err := codec.Rewrite(scenarioPayload, []string{"a", "b"})
	assert.ErrorIs(t, err, domain.ErrCountMismatch)

	_, err = codec.Rewrite(scenarioPayload, nil)
	assert.ErrorIs(t, err, domain.ErrCountMismatch)

	var mismatch *domain.CountMismatchError
	_, err = codec.Rewrite(scenarioPayload, []string{"a", "b", "c"})
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, 3, mismatch.Lines)
	assert.Equal(t, 1, mismatch.Entries)
}

func TestRewrite_CustomPlaceholder(t *testing.T) {
	codec := New(linecodec.New("<none>"))

	out, err := codec.Rewrite(`<entry name="a">x</entry>`, []string{"<none>"})
	require.NoError(t, err)
	assert.Equal(t, `<entry name="a"></entry>`, out)
}
