package handler

import "strings"

// Snake inserts "_" before every upper-case ASCII letter and lower-cases
// the result. A leading capital therefore yields a leading underscore.
func Snake(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte('_')
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Kebab is Snake with "-" in place of "_".
func Kebab(name string) string {
	return strings.ReplaceAll(Snake(name), "_", "-")
}

// Candidates returns the input names probed for a parameter, in order.
func Candidates(name string) []string {
	out := []string{name}
	for _, c := range []string{Snake(name), Kebab(name)} {
		if c != out[len(out)-1] && c != out[0] {
			out = append(out, c)
		}
	}
	return out
}
