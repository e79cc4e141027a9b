// Package token defines the token model produced by the scanner: token kinds,
// the packed flag set, and copyable token records.
package token

import "strconv"

// Kind classifies a token in the Markdown+HTML source.
type Kind uint16

// Token kinds, grouped by family.
const (
	EndOfFile Kind = iota
	Unknown

	// Trivia.
	Whitespace
	NewLine

	// Literals.
	Text
	NumericLiteral
	Identifier

	// Markdown block punctuation.
	Hash                 // '#' or a heading marker run
	Dash                 // '-'
	DashDashDash         // '---' frontmatter fence
	Plus                 // '+'
	Asterisk             // '*'
	AsteriskAsterisk     // '**'
	Underscore           // '_'
	UnderscoreUnderscore // '__'
	Equals               // '='
	Backtick             // inline backtick run
	BacktickFence        // ``` fence opener/closer
	Tilde                // '~'
	TildeTilde           // '~~'
	TildeFence           // ~~~ fence opener/closer
	Dollar               // '$'
	DollarDollar         // '$$'
	ThematicBreak        // '***', '---', '___'
	SetextUnderline      // '===' / '---' under paragraph text

	// Brackets.
	OpenBracket
	CloseBracket
	OpenParen
	CloseParen
	OpenBrace
	CloseBrace

	// Other punctuation.
	Pipe
	Backslash
	GreaterThan // '>' blockquote angle or tag end
	Colon
	Exclamation
	Ampersand
	Dot
	Slash

	// HTML.
	LessThan
	LessThanSlash    // '</'
	SlashGreaterThan // '/>'
	HTMLText
	HTMLComment
	HTMLCDATA
	HTMLDoctype
	HTMLProcessingInstruction

	kindCount
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [kindCount]string{
	EndOfFile:                 "EndOfFile",
	Unknown:                   "Unknown",
	Whitespace:                "Whitespace",
	NewLine:                   "NewLine",
	Text:                      "Text",
	NumericLiteral:            "NumericLiteral",
	Identifier:                "Identifier",
	Hash:                      "Hash",
	Dash:                      "Dash",
	DashDashDash:              "DashDashDash",
	Plus:                      "Plus",
	Asterisk:                  "Asterisk",
	AsteriskAsterisk:          "AsteriskAsterisk",
	Underscore:                "Underscore",
	UnderscoreUnderscore:      "UnderscoreUnderscore",
	Equals:                    "Equals",
	Backtick:                  "Backtick",
	BacktickFence:             "BacktickFence",
	Tilde:                     "Tilde",
	TildeTilde:                "TildeTilde",
	TildeFence:                "TildeFence",
	Dollar:                    "Dollar",
	DollarDollar:              "DollarDollar",
	ThematicBreak:             "ThematicBreak",
	SetextUnderline:           "SetextUnderline",
	OpenBracket:               "OpenBracket",
	CloseBracket:              "CloseBracket",
	OpenParen:                 "OpenParen",
	CloseParen:                "CloseParen",
	OpenBrace:                 "OpenBrace",
	CloseBrace:                "CloseBrace",
	Pipe:                      "Pipe",
	Backslash:                 "Backslash",
	GreaterThan:               "GreaterThan",
	Colon:                     "Colon",
	Exclamation:               "Exclamation",
	Ampersand:                 "Ampersand",
	Dot:                       "Dot",
	Slash:                     "Slash",
	LessThan:                  "LessThan",
	LessThanSlash:             "LessThanSlash",
	SlashGreaterThan:          "SlashGreaterThan",
	HTMLText:                  "HTMLText",
	HTMLComment:               "HTMLComment",
	HTMLCDATA:                 "HTMLCDATA",
	HTMLDoctype:               "HTMLDoctype",
	HTMLProcessingInstruction: "HTMLProcessingInstruction",
}

// String returns the kind's name, or "Kind(n)" for values outside the enumeration.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// IsTrivia reports whether the kind is whitespace or a line break.
func (k Kind) IsTrivia() bool {
	return k == Whitespace || k == NewLine
}

// IsHTML reports whether the kind belongs to the HTML structural family.
func (k Kind) IsHTML() bool {
	return k >= LessThan && k <= HTMLProcessingInstruction
}

// IsFence reports whether the kind is a code fence opener or closer.
func (k Kind) IsFence() bool {
	return k == BacktickFence || k == TildeFence
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return Unknown, false
}
