package editor

import (
	"strings"
)

// regexpTemplate translates a replacement template written with the group
// reference syntax models usually emit (`\1`, `\g<1>`, `\g<name>`) into the
// regexp.Expand syntax. `$` is taken literally.
//
// Escapes without a meaning here (`\d`, `\0`, ...) are kept as a literal
// backslash plus the character, they are not rejected and `\0` is not an
// octal escape.
func regexpTemplate(repl string) string {
	var b strings.Builder
	b.Grow(len(repl))

	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c == '$' {
			b.WriteString("$$")
			continue
		}
		if c != '\\' || i+1 >= len(repl) {
			b.WriteByte(c)
			continue
		}

		next := repl[i+1]
		switch {
		case next >= '1' && next <= '9':
			j := i + 2
			if j < len(repl) && isDigit(repl[j]) {
				j++
			}
			b.WriteString("${" + repl[i+1:j] + "}")
			i = j - 1
		case next == 'g' && i+2 < len(repl) && repl[i+2] == '<':
			end := strings.IndexByte(repl[i+3:], '>')
			if end < 0 {
				b.WriteByte(c)
				continue
			}
			b.WriteString("${" + repl[i+3:i+3+end] + "}")
			i = i + 3 + end
		case next == 'n':
			b.WriteByte('\n')
			i++
		case next == 't':
			b.WriteByte('\t')
			i++
		case next == 'r':
			b.WriteByte('\r')
			i++
		case next == '\\':
			b.WriteByte('\\')
			i++
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
