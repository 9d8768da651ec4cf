package scan

import "strings"

// Dedent strips the longest common leading whitespace prefix from every line
// of src, including blank and more deeply nested lines, so that a body
// extracted from inside an enclosing block parses as a free-standing snippet.
// It is an exact-text transform: nothing but the shared prefix is touched.
func Dedent(src string) string {
	lines := strings.Split(src, "\n")

	prefix, found := "", false
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := leadingWhitespace(line)
		if !found {
			prefix, found = indent, true
			continue
		}
		prefix = commonPrefix(prefix, indent)
		if prefix == "" {
			return src
		}
	}
	if prefix == "" {
		return src
	}

	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, prefix):
			lines[i] = line[len(prefix):]
		case strings.TrimSpace(line) == "":
			// Blank line shorter than the prefix: nothing meaningful left.
			lines[i] = ""
		}
	}
	return strings.Join(lines, "\n")
}

func leadingWhitespace(line string) string {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return line[:i]
		}
	}
	return line
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:n]
}
