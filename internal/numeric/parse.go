package numeric

import (
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// textReplacer maps the characters NFKC leaves alone to their ASCII forms.
var textReplacer = strings.NewReplacer(
	"−", "-", // minus sign
	"⁄", "/", // fraction slash (NFKC output for ½ etc.)
	"∕", "/", // division slash
	" ", "",
)

// nonDecimal matches digit separators and base prefixes, which big.Rat
// would otherwise accept in decimal and fraction text.
var nonDecimal = regexp.MustCompile(`_|0[xXbBoO]`)

// Parse reads the text form of a value.
//
// Unprefixed input is classified by shape:
//
//	12, -3           Int
//	1.5, 1e3, -inf   Float
//	3/4              Rational (stored as written, not reduced)
//	1+2i, 1/2-3/4i   Complex
//
// A "kind:" prefix (int, whole, natural, float, rational, complex) forces the
// kind, e.g. "whole:5" or "rational:0.25". Input is NFKC-normalised first, so
// "½", fullwidth digits and U+2212 minus are accepted. Numbers are decimal:
// "1_000" and "0x10" are rejected.
func Parse(s string) (Value, error) {
	text := normalizeText(s)
	if text == "" {
		return nil, NewError(CodeParse, "parse", "empty input")
	}
	if nonDecimal.MatchString(text) {
		return nil, NewError(CodeParse, "parse", "invalid number %q: only plain decimal digits are accepted", s)
	}

	if prefix, body, ok := strings.Cut(text, ":"); ok {
		kind, known := ParseKind(prefix)
		if !known {
			return nil, NewError(CodeParse, "parse", "unknown kind %q", prefix)
		}
		return parseAs(kind, body, s)
	}

	switch {
	case strings.HasSuffix(text, "i") && !isFloatWord(text):
		return parseComplex(text, s)
	case strings.Contains(text, "/"):
		return parseRationalText(text, s)
	case looksFloat(text):
		return parseFloat(text, s)
	}
	i, ok := ParseInteger(text)
	if !ok {
		return nil, NewError(CodeParse, "parse", "invalid number %q", s)
	}
	return IntOf(i), nil
}

// MustParse is Parse that panics. Use this for constants in tests and tables.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func normalizeText(s string) string {
	return textReplacer.Replace(norm.NFKC.String(strings.TrimSpace(s)))
}

func parseAs(kind Kind, body, orig string) (Value, error) {
	switch kind {
	case KindInt, KindWhole, KindNatural:
		i, ok := ParseInteger(body)
		if !ok {
			return nil, NewError(CodeParse, "parse", "invalid integer %q", orig)
		}
		switch kind {
		case KindWhole:
			return WholeOf(i)
		case KindNatural:
			return NaturalOf(i)
		}
		return IntOf(i), nil
	case KindFloat:
		return parseFloat(body, orig)
	case KindRational:
		return parseRationalText(body, orig)
	case KindComplex:
		if !strings.HasSuffix(body, "i") {
			re, err := parseRationalText(body, orig)
			if err != nil {
				return nil, err
			}
			return NewComplex(re, RationalOf(Integer{})), nil
		}
		return parseComplex(body, orig)
	}
	return nil, NewError(CodeParse, "parse", "unsupported kind %s", kind)
}

func isFloatWord(s string) bool {
	switch strings.ToLower(strings.TrimLeft(s, "+-")) {
	case "inf", "infinity", "nan":
		return true
	}
	return false
}

func looksFloat(s string) bool {
	return strings.ContainsAny(s, ".eE") || isFloatWord(s)
}

func parseFloat(text, orig string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, NewError(CodeParse, "parse", "invalid float %q", orig)
	}
	return Float(f), nil
}

// parseRationalText reads "n/d", a decimal, or an integer as a Rational.
// "n/d" keeps the written terms; decimals convert exactly.
func parseRationalText(text, orig string) (Rational, error) {
	if n, d, ok := strings.Cut(text, "/"); ok {
		num, okN := ParseInteger(n)
		den, okD := ParseInteger(d)
		if !okN || !okD {
			return Rational{}, NewError(CodeParse, "parse", "invalid fraction %q", orig)
		}
		return NewRational(num, den)
	}
	if i, ok := ParseInteger(text); ok {
		return RationalOf(i), nil
	}
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return Rational{}, NewError(CodeParse, "parse", "invalid rational %q", orig)
	}
	return RationalFromRat(r), nil
}

// parseComplex reads "a+bi", "a-bi", "bi" or "i" forms.
func parseComplex(text, orig string) (Value, error) {
	body := strings.TrimSuffix(text, "i")

	split := -1
	for i := len(body) - 1; i > 0; i-- {
		if (body[i] == '+' || body[i] == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			split = i
			break
		}
	}

	reText, imText := "0", body
	if split > 0 {
		reText, imText = body[:split], body[split:]
	}
	switch imText {
	case "", "+":
		imText = "1"
	case "-":
		imText = "-1"
	}
	imText = strings.TrimPrefix(imText, "+")

	re, err := parseRationalText(reText, orig)
	if err != nil {
		return nil, err
	}
	im, err := parseRationalText(imText, orig)
	if err != nil {
		return nil, err
	}
	return NewComplex(re, im), nil
}
