// Package keymap translates payload characters into the keysym names
// understood by `xdotool key`.
package keymap

// reserved maps characters that cannot be passed to xdotool verbatim.
var reserved = map[rune]string{
	' ':  "space",
	'!':  "exclam",
	'"':  "quotedbl",
	'#':  "numbersign",
	'$':  "dollar",
	'%':  "percent",
	'&':  "ampersand",
	'\'': "apostrophe",
	'(':  "parenleft",
	')':  "parenright",
	'*':  "asterisk",
	'+':  "plus",
	',':  "comma",
	'-':  "minus",
	'.':  "period",
	'/':  "slash",
	'\\': "backslash",
	':':  "colon",
	';':  "semicolon",
	'<':  "less",
	'=':  "equal",
	'>':  "greater",
	'?':  "question",
	'@':  "at",
	'[':  "bracketleft",
	']':  "bracketright",
	'^':  "asciicircum",
	'_':  "underscore",
	'`':  "grave",
	'{':  "braceleft",
	'|':  "bar",
	'}':  "braceright",
	'~':  "asciitilde",
	'\n': "Return",
	'\r': "Return",
	'\t': "Tab",
}

// Key returns the keysym for r. Characters outside the reserved table are
// already valid single-symbol keysyms and are returned unchanged.
func Key(r rune) string {
	if name, ok := reserved[r]; ok {
		return name
	}
	return string(r)
}

// IsReserved reports whether r has a dedicated keysym name.
func IsReserved(r rune) bool {
	_, ok := reserved[r]
	return ok
}
