package builtin

import (
	"regexp"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sachitrajbhandari/swrlapi/internal/ir"
)

// Casers carry state and are not safe for concurrent use, so each call
// builds its own.

func foldCase(s string) string { return cases.Fold().String(s) }

// stringArgs returns arguments from..n-1 as strings, all of which must be bound.
func (c *call) stringArgs(from int) ([]string, error) {
	if err := c.checkBoundFrom(from); err != nil {
		return nil, err
	}
	out := make([]string, 0, len(c.args)-from)
	for i := from; i < len(c.args); i++ {
		s, err := c.str(i)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// stringPredicate builds a two-argument test over bound strings.
func stringPredicate(test func(a, b string) bool) operator {
	return func(c *call) (bool, error) {
		s, err := c.stringArgs(0)
		if err != nil {
			return false, err
		}
		return test(s[0], s[1]), nil
	}
}

// stringFunction builds a functional built-in over bound string arguments
// 1..n-1 whose result is bound to argument 0.
func stringFunction(fn func(c *call, s []string) (ir.Value, error)) operator {
	return func(c *call) (bool, error) {
		s, err := c.stringArgs(1)
		if err != nil {
			return false, err
		}
		result, err := fn(c, s)
		if err != nil {
			return false, err
		}
		return c.bindResult(result)
	}
}

var (
	evalStringEqualIgnoreCase = stringPredicate(func(a, b string) bool { return foldCase(a) == foldCase(b) })
	evalContains              = stringPredicate(strings.Contains)
	evalContainsIgnoreCase    = stringPredicate(func(a, b string) bool { return strings.Contains(foldCase(a), foldCase(b)) })
	evalStartsWith            = stringPredicate(strings.HasPrefix)
	evalEndsWith              = stringPredicate(strings.HasSuffix)

	evalStringLength = stringFunction(func(_ *call, s []string) (ir.Value, error) {
		return ir.NewInt(int32(len(utf16.Encode([]rune(s[0]))))), nil
	})
	evalNormalizeSpace = stringFunction(func(_ *call, s []string) (ir.Value, error) {
		return ir.String(strings.Join(strings.Fields(s[0]), " ")), nil
	})
	evalUpperCase = stringFunction(func(_ *call, s []string) (ir.Value, error) {
		return ir.String(cases.Upper(language.Und).String(s[0])), nil
	})
	evalLowerCase = stringFunction(func(_ *call, s []string) (ir.Value, error) {
		return ir.String(cases.Lower(language.Und).String(s[0])), nil
	})
	evalTranslate = stringFunction(func(_ *call, s []string) (ir.Value, error) {
		return ir.String(translate(s[0], s[1], s[2])), nil
	})
	evalSubstringBefore = stringFunction(func(_ *call, s []string) (ir.Value, error) {
		before, _, found := strings.Cut(s[0], s[1])
		if !found {
			return ir.String(""), nil
		}
		return ir.String(before), nil
	})
	evalSubstringAfter = stringFunction(func(_ *call, s []string) (ir.Value, error) {
		_, after, found := strings.Cut(s[0], s[1])
		if !found {
			return ir.String(""), nil
		}
		return ir.String(after), nil
	})
	evalReplace = stringFunction(func(c *call, s []string) (ir.Value, error) {
		re, err := regexp.Compile(s[1])
		if err != nil {
			return nil, newRegexError(c.name, 2, s[1], err)
		}
		return ir.String(re.ReplaceAllString(s[0], s[2])), nil
	})
)

// translate maps each character of s found in from to the character at the
// same position in to. Characters of from with no counterpart are removed.
func translate(s, from, to string) string {
	src, dst := []rune(from), []rune(to)
	var b strings.Builder
	for _, r := range s {
		idx := -1
		for i, f := range src {
			if f == r {
				idx = i
				break
			}
		}
		switch {
		case idx < 0:
			b.WriteRune(r)
		case idx < len(dst):
			b.WriteRune(dst[idx])
		}
	}
	return b.String()
}

// evalStringConcat joins the lexical forms of arguments 1..n-1.
func evalStringConcat(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	vals, err := c.values(1)
	if err != nil {
		return false, err
	}
	var b strings.Builder
	for i, v := range vals {
		if !ir.IsLiteral(v) {
			return false, newArgumentTypeError(c.name, i+1, "expecting a literal, got %s", ir.Datatype(v))
		}
		b.WriteString(v.Lexical())
	}
	return c.bindResult(ir.String(b.String()))
}

// evalSubstring takes the UTF-16 code units of argument 1 from the start
// index in argument 2 up to the exclusive end index in argument 3, or to
// the end of the string. Indices are 0-based.
func evalSubstring(c *call) (bool, error) {
	if err := c.checkBoundFrom(1); err != nil {
		return false, err
	}
	s, err := c.str(1)
	if err != nil {
		return false, err
	}
	units := utf16.Encode([]rune(s))

	start, err := c.integer(2)
	if err != nil {
		return false, err
	}
	if start < 0 || start > int64(len(units)) {
		return false, newArgumentTypeError(c.name, 2, "start index %d out of range for length %d", start, len(units))
	}

	end := int64(len(units))
	if len(c.args) == 4 {
		if end, err = c.integer(3); err != nil {
			return false, err
		}
		if end < start || end > int64(len(units)) {
			return false, newArgumentTypeError(c.name, 3, "end index %d out of range [%d, %d]", end, start, len(units))
		}
	}
	return c.bindResult(ir.String(string(utf16.Decode(units[start:end]))))
}

// evalMatches reports whether the whole of argument 0 matches the pattern in
// argument 1.
func evalMatches(c *call) (bool, error) {
	s, err := c.stringArgs(0)
	if err != nil {
		return false, err
	}
	re, err := regexp.Compile("^(?:" + s[1] + ")$")
	if err != nil {
		return false, newRegexError(c.name, 1, s[1], err)
	}
	return re.MatchString(s[0]), nil
}

// evalTokenize splits argument 1 on any character of argument 2 and binds
// the tokens to argument 0, which must be unbound. No tokens is a false
// result.
func evalTokenize(c *call) (bool, error) {
	if !c.outputUnbound() {
		return false, newArgumentTypeError(c.name, 0, "expecting an unbound variable")
	}
	s, err := c.stringArgs(1)
	if err != nil {
		return false, err
	}
	fields := strings.FieldsFunc(strings.TrimSpace(s[0]), func(r rune) bool {
		return strings.ContainsRune(s[1], r)
	})
	if len(fields) == 0 {
		return false, nil
	}
	tokens := make([]ir.Value, len(fields))
	for i, f := range fields {
		tokens[i] = ir.String(f)
	}

	switch out := c.args[0].(type) {
	case *MultiValueVariable:
		if err := out.Bind(tokens); err != nil {
			return false, newArgumentTypeError(c.name, 0, "%v", err)
		}
	case *Variable:
		mv := MultiVar(out.Name)
		if err := mv.Bind(tokens); err != nil {
			return false, newArgumentTypeError(c.name, 0, "%v", err)
		}
		if err := out.multi.Set(mv); err != nil {
			return false, newArgumentTypeError(c.name, 0, "%v", err)
		}
	}
	return true, nil
}
