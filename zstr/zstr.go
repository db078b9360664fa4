package zstr

import (
	"fmt"
	"strings"

	uuidv4 "github.com/bitactro/UUIDv4"
)

// Body returns the substring of str starting at rune offset pos, length
// runes long (or to the end, if length is -1).
func Body(str string, pos, length int) string {
	rs := []rune(str)
	rl := len(rs)
	if pos < 0 {
		pos = 0
	}
	if pos >= rl {
		return ""
	}
	if length == -1 {
		length = rl - pos
	}
	e := pos + length
	if e > rl {
		e = rl
	}
	if e-pos == 0 {
		return ""
	}
	return string(rs[pos:e])
}

func HeadUntil(str, sep string) string {
	i := strings.Index(str, sep)
	if i == -1 {
		return str
	}
	return str[:i]
}

func TruncatedCharsAtEnd(str string, chars int) (s string) {
	r := []rune(str)
	if chars >= len(r) {
		return ""
	}
	return string(r[:len(r)-chars])
}

// Concat joins parts with divider, skipping empty parts and avoiding a
// doubled divider where one part already ends (or begins) with it.
func Concat(divider string, parts ...any) string {
	var str string
	for _, p := range parts {
		s := fmt.Sprintf("%v", p)
		if s != "" {
			if str == "" {
				str = s
			} else {
				prevHas := strings.HasSuffix(str, divider)
				currentHas := strings.HasPrefix(s, divider)
				if !prevHas && !currentHas {
					str += divider
				}
				if prevHas && currentHas {
					str = TruncatedCharsAtEnd(str, 1)
				}
				str += s
			}
		}
	}
	return str
}

func Spaced(parts ...any) string {
	return Concat(" ", parts...)
}

func HasPrefix(str, prefix string, rest *string) bool {
	if prefix == "" {
		*rest = str
		return true
	}
	if strings.HasPrefix(str, prefix) {
		*rest = str[len(prefix):]
		return true
	}
	return false
}

func HasSuffix(str, suffix string, rest *string) bool {
	if suffix == "" {
		*rest = str
		return true
	}
	if strings.HasSuffix(str, suffix) {
		*rest = str[:len(str)-len(suffix)]
		return true
	}
	return false
}

func GenerateUUID() string {
	return uuidv4.GenerateUUID4()
}
