package spike

import (
	"strings"
	"unicode"
)

// Syntax highlight types
const (
	hlNormal    = 0
	hlNonprint  = 1
	hlComment   = 2
	hlMLComment = 3
	hlKeyword1  = 4
	hlKeyword2  = 5
	hlString    = 6
	hlNumber    = 7
	hlMatch     = 8
)

const (
	hlHighlightStrings = 1 << 0
	hlHighlightNumbers = 1 << 1
)

// Syntax defines a syntax highlighting scheme.
type Syntax struct {
	FileMatch              []string
	Keywords               []string
	SingleLineCommentStart string
	MultiLineCommentStart  string
	MultiLineCommentEnd    string
	Flags                  int
}

// plainSyntax is active when no filetype matches: every digit classifies
// as Number, everything else stays Normal.
var plainSyntax = Syntax{Flags: hlHighlightNumbers}

// minimal reports whether the scheme carries nothing beyond the bare
// number rule.
func (s *Syntax) minimal() bool {
	return len(s.Keywords) == 0 && s.SingleLineCommentStart == "" &&
		s.MultiLineCommentStart == "" && s.Flags&hlHighlightStrings == 0
}

// HLDB is the built-in syntax highlight database.
var HLDB = []Syntax{
	{
		FileMatch: []string{".c", ".h", ".cpp", ".hpp", ".cc"},
		Keywords: []string{
			// C keywords
			"auto", "break", "case", "continue", "default", "do", "else", "enum",
			"extern", "for", "goto", "if", "register", "return", "sizeof", "static",
			"struct", "switch", "typedef", "union", "volatile", "while", "NULL",
			// C++ keywords
			"alignas", "alignof", "and", "and_eq", "asm", "bitand", "bitor", "class",
			"compl", "constexpr", "const_cast", "deltype", "delete", "dynamic_cast",
			"explicit", "export", "false", "friend", "inline", "mutable", "namespace",
			"new", "noexcept", "not", "not_eq", "nullptr", "operator", "or", "or_eq",
			"private", "protected", "public", "reinterpret_cast", "static_assert",
			"static_cast", "template", "this", "thread_local", "throw", "true", "try",
			"typeid", "typename", "virtual", "xor", "xor_eq",
			// C types (trailing | means keyword2)
			"int|", "long|", "double|", "float|", "char|", "unsigned|", "signed|",
			"void|", "short|", "auto|", "const|", "bool|",
		},
		SingleLineCommentStart: "//",
		MultiLineCommentStart:  "/*",
		MultiLineCommentEnd:    "*/",
		Flags:                  hlHighlightStrings | hlHighlightNumbers,
	},
	{
		FileMatch: []string{".go"},
		Keywords: []string{
			"break", "case", "chan", "const", "continue", "default", "defer",
			"else", "fallthrough", "for", "func", "go", "goto", "if",
			"import", "interface", "map", "package", "range", "return",
			"select", "struct", "switch", "type", "var",
			// Types (keyword2)
			"bool|", "byte|", "complex64|", "complex128|", "error|",
			"float32|", "float64|", "int|", "int8|", "int16|", "int32|",
			"int64|", "rune|", "string|", "uint|", "uint8|", "uint16|",
			"uint32|", "uint64|", "uintptr|", "any|",
			// Constants
			"true|", "false|", "nil|", "iota|",
			// Built-in functions
			"append", "cap", "close", "copy", "delete", "len", "make",
			"new", "panic", "print", "println", "recover",
		},
		SingleLineCommentStart: "//",
		MultiLineCommentStart:  "/*",
		MultiLineCommentEnd:    "*/",
		Flags:                  hlHighlightStrings | hlHighlightNumbers,
	},
	{
		FileMatch: []string{".py"},
		Keywords: []string{
			"and", "as", "assert", "async", "await", "break", "class",
			"continue", "def", "del", "elif", "else", "except", "finally",
			"for", "from", "global", "if", "import", "in", "is", "lambda",
			"nonlocal", "not", "or", "pass", "raise", "return", "try",
			"while", "with", "yield",
			// Types / built-ins (keyword2)
			"True|", "False|", "None|",
			"int|", "float|", "str|", "bool|", "list|", "dict|", "set|",
			"tuple|", "bytes|", "type|", "object|", "range|",
			// Built-in functions
			"print", "len", "input", "open", "super", "self",
			"isinstance", "issubclass", "hasattr", "getattr", "setattr",
		},
		SingleLineCommentStart: "# ",
		Flags:                  hlHighlightStrings | hlHighlightNumbers,
	},
}

func isSeparator(c byte) bool {
	return c == 0 || c == ' ' || c == '\t' || c == '\n' || c == '\r' ||
		strings.ContainsRune(",.()+-/*=~%[];", rune(c))
}

// keywordAt reports whether one of keywords starts at r[i] and ends at a
// separator or at the end of the line. A trailing | on a keyword marks it
// as the secondary class (types and built-in constants).
func keywordAt(r string, i int, keywords []string) (klen int, class byte, ok bool) {
	for _, kw := range keywords {
		class = hlKeyword1
		if strings.HasSuffix(kw, "|") {
			class = hlKeyword2
			kw = kw[:len(kw)-1]
		}
		klen = len(kw)
		if i+klen > len(r) || r[i:i+klen] != kw {
			continue
		}
		if i+klen == len(r) || isSeparator(r[i+klen]) {
			return klen, class, true
		}
	}
	return 0, 0, false
}

func (e *Editor) rowHasOpenComment(row *erow) bool {
	if len(row.hl) > 0 && len(row.render) > 0 &&
		row.hl[len(row.hl)-1] == hlMLComment {
		rs := row.render
		if len(rs) < 2 || rs[len(rs)-2] != '*' || rs[len(rs)-1] != '/' {
			return true
		}
	}
	return false
}

// updateSyntax rebuilds row.hl from row.render. The invariant
// len(row.hl) == len(row.render) holds on return.
func (e *Editor) updateSyntax(row *erow) {
	row.hl = make([]byte, len(row.render))

	if e.syntax == nil {
		return
	}
	if e.syntax.minimal() {
		for i := 0; i < len(row.render); i++ {
			if row.render[i] >= '0' && row.render[i] <= '9' {
				row.hl[i] = hlNumber
			}
		}
		return
	}

	keywords := e.syntax.Keywords
	scs := e.syntax.SingleLineCommentStart
	mcs := e.syntax.MultiLineCommentStart
	mce := e.syntax.MultiLineCommentEnd

	r := row.render
	i := 0
	for i < len(r) && (r[i] == ' ' || r[i] == '\t') {
		i++
	}

	prevSep := true
	inString := byte(0)
	inComment := false

	if row.idx > 0 && e.rowHasOpenComment(e.rows[row.idx-1]) {
		inComment = true
	}

	for i < len(r) {
		c := r[i]

		// Handle single line comments
		if prevSep && inString == 0 && !inComment && len(scs) == 2 &&
			i+1 < len(r) && c == scs[0] && r[i+1] == scs[1] {
			for j := i; j < len(r); j++ {
				row.hl[j] = hlComment
			}
			return
		}

		// Handle multi-line comments
		if inComment {
			row.hl[i] = hlMLComment
			if len(mce) == 2 && i+1 < len(r) && c == mce[0] && r[i+1] == mce[1] {
				row.hl[i+1] = hlMLComment
				i += 2
				inComment = false
				prevSep = true
				continue
			}
			prevSep = false
			i++
			continue
		} else if len(mcs) == 2 && i+1 < len(r) && c == mcs[0] && r[i+1] == mcs[1] {
			row.hl[i] = hlMLComment
			row.hl[i+1] = hlMLComment
			i += 2
			inComment = true
			prevSep = false
			continue
		}

		// Handle strings
		if inString != 0 {
			row.hl[i] = hlString
			if c == '\\' && i+1 < len(r) {
				row.hl[i+1] = hlString
				i += 2
				prevSep = false
				continue
			}
			if c == inString {
				inString = 0
			}
			i++
			continue
		} else if c == '"' || c == '\'' {
			inString = c
			row.hl[i] = hlString
			i++
			prevSep = false
			continue
		}

		// Handle non-printable chars
		if (c < 32 && c != '\t') || (c >= 127 && !unicode.IsPrint(rune(c))) {
			row.hl[i] = hlNonprint
			i++
			prevSep = false
			continue
		}

		// Handle numbers
		if e.syntax.Flags&hlHighlightNumbers != 0 {
			if (c >= '0' && c <= '9' && (prevSep || (i > 0 && row.hl[i-1] == hlNumber))) ||
				(c == '.' && i > 0 && row.hl[i-1] == hlNumber) {
				row.hl[i] = hlNumber
				i++
				prevSep = false
				continue
			}
		}

		// Handle keywords
		if prevSep {
			if klen, class, ok := keywordAt(r, i, keywords); ok {
				for j := 0; j < klen; j++ {
					row.hl[i+j] = class
				}
				i += klen
				prevSep = false
				continue
			}
		}

		prevSep = isSeparator(c)
		i++
	}

	oc := e.rowHasOpenComment(row)
	if row.hlOC != oc && row.idx+1 < len(e.rows) {
		e.updateSyntax(e.rows[row.idx+1])
	}
	row.hlOC = oc
}

func syntaxToColor(hl byte) int {
	switch hl {
	case hlComment, hlMLComment:
		return 36 // cyan
	case hlKeyword1:
		return 33 // yellow
	case hlKeyword2:
		return 32 // green
	case hlString:
		return 35 // magenta
	case hlNumber:
		return 31 // red
	case hlMatch:
		return 34 // blue
	default:
		return 37 // white
	}
}

// SelectSyntaxHighlight selects the syntax scheme based on filename.
// Without a match the plain digits-only scheme stays active.
func (e *Editor) SelectSyntaxHighlight(filename string) {
	for i := range HLDB {
		s := &HLDB[i]
		for _, pattern := range s.FileMatch {
			if strings.HasPrefix(pattern, ".") {
				if strings.HasSuffix(filename, pattern) {
					e.syntax = s
					return
				}
			} else {
				if strings.Contains(filename, pattern) {
					e.syntax = s
					return
				}
			}
		}
	}
}
