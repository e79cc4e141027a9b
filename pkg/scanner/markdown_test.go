package scanner_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdscan/pkg/token"
)

// findToken returns the first token whose verbatim text is text.
func findToken(t *testing.T, src, text string) token.Token {
	t.Helper()
	for _, tk := range scanTokens(t, src) {
		if tk.Text(src) == text {
			return tk
		}
	}
	t.Fatalf("no token %q in %q", text, src)
	return token.Token{}
}

func TestScan_Headings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		want    []tok
		wantRun int
	}{
		{
			name:    "level two",
			src:     "## x",
			want:    []tok{{token.Hash, "##"}, {token.Whitespace, " "}, {token.Text, "x"}, {token.EndOfFile, ""}},
			wantRun: 2,
		},
		{
			name:    "level six",
			src:     "###### x",
			want:    []tok{{token.Hash, "######"}, {token.Whitespace, " "}, {token.Text, "x"}, {token.EndOfFile, ""}},
			wantRun: 6,
		},
		{
			name:    "empty heading",
			src:     "#",
			want:    []tok{{token.Hash, "#"}, {token.EndOfFile, ""}},
			wantRun: 1,
		},
		{
			name:    "hashtag",
			src:     "#tag",
			want:    []tok{{token.Hash, "#"}, {token.Text, "tag"}, {token.EndOfFile, ""}},
			wantRun: 0,
		},
		{
			name: "seven hashes",
			src:  "####### x",
			want: []tok{
				{token.Hash, "#"}, {token.Hash, "#"}, {token.Hash, "#"}, {token.Hash, "#"},
				{token.Hash, "#"}, {token.Hash, "#"}, {token.Hash, "#"},
				{token.Whitespace, " "}, {token.Text, "x"}, {token.EndOfFile, ""},
			},
			wantRun: 0,
		},
		{
			name:    "indented three",
			src:     "   # x",
			want:    []tok{{token.Whitespace, "   "}, {token.Hash, "#"}, {token.Whitespace, " "}, {token.Text, "x"}, {token.EndOfFile, ""}},
			wantRun: 1,
		},
		{
			name:    "indented four is not a heading",
			src:     "    # x",
			want:    []tok{{token.Whitespace, "    "}, {token.Hash, "#"}, {token.Whitespace, " "}, {token.Text, "x"}, {token.EndOfFile, ""}},
			wantRun: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := scanTokens(t, tt.src)
			require.Equal(t, tt.want, shapes(tt.src, tokens))
			for _, tk := range tokens {
				if tk.Kind == token.Hash {
					assert.Equal(t, tt.wantRun, tk.Flags.RunLength())
					break
				}
			}
		})
	}
}

func TestScan_EmphasisFlanking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		text      string
		offset    int
		wantKind  token.Kind
		wantOpen  bool
		wantClose bool
	}{
		{"opening star", "*a*", "*", 0, token.Asterisk, true, false},
		{"closing star", "*a*", "*", 2, token.Asterisk, false, true},
		{"intraword star", "a*b", "*", 1, token.Asterisk, true, true},
		{"intraword underscore", "snake_case", "_", 5, token.Underscore, false, false},
		{"opening double underscore", "__init__ x", "__", 0, token.UnderscoreUnderscore, true, false},
		{"spaced star", "a * b", "*", 2, token.Asterisk, false, false},
		{"punctuation before", "(*a*)", "*", 1, token.Asterisk, true, false},
		{"strikethrough", "~~gone~~", "~~", 0, token.TildeTilde, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got token.Token
			for _, tk := range scanTokens(t, tt.src) {
				if tk.StartOffset == tt.offset {
					got = tk
					break
				}
			}
			require.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.text, got.Text(tt.src))
			assert.Equal(t, tt.wantOpen, got.Flags.Has(token.CanOpen), "CanOpen")
			assert.Equal(t, tt.wantClose, got.Flags.Has(token.CanClose), "CanClose")
		})
	}
}

func TestScan_TripleStarSplitsIntoDoubleAndSingle(t *testing.T) {
	t.Parallel()

	src := "***a***"
	tokens := scanTokens(t, src)
	assert.Equal(t, []tok{
		{token.AsteriskAsterisk, "**"},
		{token.Asterisk, "*"},
		{token.Text, "a"},
		{token.AsteriskAsterisk, "**"},
		{token.Asterisk, "*"},
		{token.EndOfFile, ""},
	}, shapes(src, tokens))
	assert.True(t, tokens[1].Flags.Has(token.CanOpen))
	assert.True(t, tokens[4].Flags.Has(token.CanClose))
}

func TestScan_LongDelimiterRunSharesFlanking(t *testing.T) {
	t.Parallel()

	const n = 20001
	src := "a" + strings.Repeat("*", n) + "b"
	tokens := scanTokens(t, src)

	var doubles, singles int
	for _, tk := range tokens[1 : len(tokens)-2] {
		switch tk.Kind {
		case token.AsteriskAsterisk:
			doubles++
		case token.Asterisk:
			singles++
		default:
			t.Fatalf("unexpected %s at %d", tk.Kind, tk.StartOffset)
		}
		require.True(t, tk.Flags.Has(token.CanOpen|token.CanClose), "flanking at %d", tk.StartOffset)
	}
	assert.Equal(t, n/2, doubles)
	assert.Equal(t, 1, singles)
	assert.Equal(t, "b", tokens[len(tokens)-2].Text(src))
}

func TestScan_AdjacentRunsKeepOwnFlanking(t *testing.T) {
	t.Parallel()

	src := "**a** __b__"
	open := findToken(t, src, "__")
	assert.True(t, open.Flags.Has(token.CanOpen))
	assert.False(t, open.Flags.Has(token.CanClose))

	tokens := scanTokens(t, src)
	assert.True(t, tokens[2].Flags.Has(token.CanClose))
	assert.False(t, tokens[2].Flags.Has(token.CanOpen))
}

func TestScan_DashPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		text string
		want token.Kind
	}{
		{"frontmatter open", "---\na: b\n---\n", "---", token.DashDashDash},
		{"setext after paragraph", "Title\n---\n", "---", token.SetextUnderline},
		{"thematic after blank line", "a\n\n---\n", "---", token.ThematicBreak},
		{"spaced thematic", "a\n\n- - -\n", "- - -", token.ThematicBreak},
		{"list marker", "- item", "-", token.Dash},
		{"hyphen in text", "a - b", "-", token.Dash},
		{"setext after heading is thematic", "# h\n---\n", "---", token.ThematicBreak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, findToken(t, tt.src, tt.text).Kind)
		})
	}
}

func TestScan_Frontmatter(t *testing.T) {
	t.Parallel()

	src := "---\ntitle: x\n---\n---\n"
	var kinds []token.Kind
	for _, tk := range scanTokens(t, src) {
		if tk.Kind == token.DashDashDash || tk.Kind == token.ThematicBreak || tk.Kind == token.SetextUnderline {
			kinds = append(kinds, tk.Kind)
		}
	}
	assert.Equal(t, []token.Kind{token.DashDashDash, token.DashDashDash, token.ThematicBreak}, kinds)
}

func TestScan_SetextEquals(t *testing.T) {
	t.Parallel()

	assert.Equal(t, token.SetextUnderline, findToken(t, "Title\n===  \n", "===").Kind)
	assert.Equal(t, token.Equals, findToken(t, "a\n\n===\n", "=").Kind)
	assert.Equal(t, token.Equals, findToken(t, "a = b", "=").Kind)
}

func TestScan_ThematicBreaks(t *testing.T) {
	t.Parallel()

	for _, src := range []string{"***", "* * *", "___", "_ _ _  ", "-----"} {
		tokens := scanTokens(t, "x\n\n"+src)
		var found bool
		for _, tk := range tokens {
			if tk.Kind == token.ThematicBreak {
				found = true
			}
		}
		assert.True(t, found, "thematic break in %q", src)
	}
}

func TestScan_BulletMarkers(t *testing.T) {
	t.Parallel()

	src := "* a\n+ b\n- c"
	tokens := scanTokens(t, src)
	assert.Equal(t, []tok{
		{token.Asterisk, "*"}, {token.Whitespace, " "}, {token.Text, "a"}, {token.NewLine, "\n"},
		{token.Plus, "+"}, {token.Whitespace, " "}, {token.Text, "b"}, {token.NewLine, "\n"},
		{token.Dash, "-"}, {token.Whitespace, " "}, {token.Text, "c"}, {token.EndOfFile, ""},
	}, shapes(src, tokens))
	assert.False(t, tokens[0].Flags.Has(token.CanOpen))
}

func TestScan_OrderedListMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		want      []tok
		wantStart int
		wantParen bool
	}{
		{
			name:      "paren delimiter",
			src:       "3) x",
			want:      []tok{{token.NumericLiteral, "3"}, {token.CloseParen, ")"}, {token.Whitespace, " "}, {token.Text, "x"}, {token.EndOfFile, ""}},
			wantStart: 3,
			wantParen: true,
		},
		{
			name:      "empty item",
			src:       "42.",
			want:      []tok{{token.NumericLiteral, "42"}, {token.Dot, "."}, {token.EndOfFile, ""}},
			wantStart: 42,
		},
		{
			name: "too many digits",
			src:  "1234567890. x",
			want: []tok{{token.Text, "1234567890."}, {token.Whitespace, " "}, {token.Text, "x"}, {token.EndOfFile, ""}},
		},
		{
			name: "mid-line number",
			src:  "a 1. b",
			want: []tok{
				{token.Text, "a"}, {token.Whitespace, " "}, {token.Text, "1."},
				{token.Whitespace, " "}, {token.Text, "b"}, {token.EndOfFile, ""},
			},
		},
		{
			name: "plain number",
			src:  "2024",
			want: []tok{{token.NumericLiteral, "2024"}, {token.EndOfFile, ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := scanTokens(t, tt.src)
			require.Equal(t, tt.want, shapes(tt.src, tokens))
			first := tokens[0]
			assert.Equal(t, tt.wantStart, first.ListStart)
			assert.Equal(t, tt.wantStart > 0, first.Flags.Has(token.IsOrderedListMarker))
			assert.Equal(t, tt.wantParen, first.Flags.Has(token.IsOrderedListParen))
		})
	}
}

func TestScan_Fences(t *testing.T) {
	t.Parallel()

	src := "```go\ncode *x*\n```\n"
	tokens := scanTokens(t, src)
	assert.Equal(t, []tok{
		{token.BacktickFence, "```go"}, {token.NewLine, "\n"},
		{token.Text, "code"}, {token.Whitespace, " "},
		{token.Asterisk, "*"}, {token.Text, "x"}, {token.Asterisk, "*"}, {token.NewLine, "\n"},
		{token.BacktickFence, "```"}, {token.NewLine, "\n"},
		{token.EndOfFile, ""},
	}, shapes(src, tokens))

	open := tokens[0]
	assert.Equal(t, 3, open.Flags.RunLength())
	assert.True(t, open.HasValue)
	assert.Equal(t, "go", open.Value)
	assert.False(t, tokens[8].HasValue)
}

func TestScan_FenceInfoNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{"trimmed", "```  go  \n```", "go"},
		{"collapsed whitespace", "~~~ rust \t linenos=1\n~~~", "rust linenos=1"},
		{"entity", "```c&amp;d\n```", "c&d"},
		{"escape", "```a\\_b\n```", "a_b"},
		{"entity after gap", "``` x &lt;y\n```", "x <y"},
		{"tilde fence may hold backticks", "~~~ a`b\n~~~", "a`b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			first := scanTokens(t, tt.src)[0]
			require.True(t, first.Kind.IsFence(), "got %s", first.Kind)
			assert.Equal(t, tt.want, first.Value)
		})
	}
}

func TestScan_FenceEdgeCases(t *testing.T) {
	t.Parallel()

	t.Run("backtick in backtick info is inline", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, token.Backtick, scanTokens(t, "``` a`b")[0].Kind)
	})

	t.Run("two backticks are inline", func(t *testing.T) {
		t.Parallel()
		first := scanTokens(t, "``x``")[0]
		assert.Equal(t, token.Backtick, first.Kind)
		assert.Equal(t, 2, first.Flags.RunLength())
	})

	t.Run("shorter closer does not close", func(t *testing.T) {
		t.Parallel()
		src := "````\n```\n````"
		var kinds []token.Kind
		for _, tk := range scanTokens(t, src) {
			if tk.Kind == token.BacktickFence || tk.Kind == token.Backtick {
				kinds = append(kinds, tk.Kind)
			}
		}
		assert.Equal(t, []token.Kind{token.BacktickFence, token.Backtick, token.BacktickFence}, kinds)
	})

	t.Run("html inside a fence is literal", func(t *testing.T) {
		t.Parallel()
		src := "```\n<script>&amp;\n```"
		tokens := scanTokens(t, src)
		assert.Equal(t, token.LessThan, findToken(t, src, "<").Kind)
		assert.Equal(t, token.Ampersand, findToken(t, src, "&").Kind)
		assert.Equal(t, token.BacktickFence, tokens[len(tokens)-2].Kind)
	})
}

func TestScan_Dollar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantKind token.Kind
		wantMath bool
	}{
		{"inline math", "$x$", token.Dollar, true},
		{"price", "$ 5", token.Dollar, false},
		{"no closer", "$x", token.Dollar, false},
		{"block math", "$$\n", token.DollarDollar, true},
		{"mid-line double", "a $$", token.DollarDollar, false},
		{"double inside fence", "```\n$$\n```", token.DollarDollar, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got token.Token
			for _, tk := range scanTokens(t, tt.src) {
				if tk.Kind == token.Dollar || tk.Kind == token.DollarDollar {
					got = tk
					break
				}
			}
			assert.Equal(t, tt.wantKind, got.Kind)
			assert.Equal(t, tt.wantMath, got.Flags.Has(token.ContainsMath))
		})
	}
}

func TestScan_DefinitionHint(t *testing.T) {
	t.Parallel()

	assert.True(t, scanTokens(t, "[foo]: /url")[0].Flags.Has(token.MaybeDefinition))
	assert.False(t, scanTokens(t, "[foo] bar")[0].Flags.Has(token.MaybeDefinition))
	assert.False(t, scanTokens(t, "[]: x")[0].Flags.Has(token.MaybeDefinition))
	assert.False(t, findToken(t, "a [x]: y", "[").Flags.Has(token.MaybeDefinition))
}

func TestScan_Backslash(t *testing.T) {
	t.Parallel()

	t.Run("escape", func(t *testing.T) {
		t.Parallel()
		first := scanTokens(t, "\\*")[0]
		assert.Equal(t, token.Text, first.Kind)
		assert.True(t, first.Flags.Has(token.IsEscaped))
		assert.Equal(t, "*", first.Value)
	})

	t.Run("hard break", func(t *testing.T) {
		t.Parallel()
		bs := findToken(t, "a\\\nb", "\\")
		assert.Equal(t, token.Backslash, bs.Kind)
		assert.True(t, bs.Flags.Has(token.HardBreakHint))
	})

	t.Run("literal", func(t *testing.T) {
		t.Parallel()
		src := "\\q"
		assert.Equal(t, []tok{{token.Backslash, "\\"}, {token.Text, "q"}, {token.EndOfFile, ""}},
			shapes(src, scanTokens(t, src)))
	})
}

func TestScan_WhitespaceHints(t *testing.T) {
	t.Parallel()

	t.Run("hard break spaces", func(t *testing.T) {
		t.Parallel()
		ws := findToken(t, "a  \nb", "  ")
		assert.True(t, ws.Flags.Has(token.HardBreakHint))
		assert.False(t, ws.Flags.Has(token.IsBlankLine))
	})

	t.Run("single trailing space", func(t *testing.T) {
		t.Parallel()
		assert.False(t, findToken(t, "a \nb", " ").Flags.Has(token.HardBreakHint))
	})

	t.Run("blank line", func(t *testing.T) {
		t.Parallel()
		tokens := scanTokens(t, "a\n  \nb")
		assert.Equal(t, token.Whitespace, tokens[2].Kind)
		assert.True(t, tokens[2].Flags.Has(token.IsBlankLine))
		assert.False(t, tokens[1].Flags.Has(token.IsBlankLine))
		assert.True(t, tokens[3].Flags.Has(token.IsBlankLine))
	})

	t.Run("crlf is one newline", func(t *testing.T) {
		t.Parallel()
		src := "a\r\nb"
		tokens := scanTokens(t, src)
		assert.Equal(t, []tok{{token.Text, "a"}, {token.NewLine, "\r\n"}, {token.Text, "b"}, {token.EndOfFile, ""}},
			shapes(src, tokens))
		assert.True(t, tokens[2].Flags.Has(token.PrecedingLineBreak))
	})

	t.Run("non-breaking space", func(t *testing.T) {
		t.Parallel()
		src := "a\u00a0b"
		assert.Equal(t, []tok{{token.Text, "a"}, {token.Whitespace, "\u00a0"}, {token.Text, "b"}, {token.EndOfFile, ""}},
			shapes(src, scanTokens(t, src)))
	})
}

func TestScan_Punctuation(t *testing.T) {
	t.Parallel()

	src := "![a](b){c}|d:e>"
	assert.Equal(t, []tok{
		{token.Exclamation, "!"}, {token.OpenBracket, "["}, {token.Text, "a"}, {token.CloseBracket, "]"},
		{token.OpenParen, "("}, {token.Text, "b"}, {token.CloseParen, ")"},
		{token.OpenBrace, "{"}, {token.Text, "c"}, {token.CloseBrace, "}"},
		{token.Pipe, "|"}, {token.Text, "d"}, {token.Colon, ":"}, {token.Text, "e"},
		{token.GreaterThan, ">"}, {token.EndOfFile, ""},
	}, shapes(src, scanTokens(t, src)))
}
