package lexer

import "strings"

const attributeSeparator = ':'

// Attributes is an ordered set of key:value pairs.
type Attributes struct {
	keys   []string
	values map[string]string
}

func (a *Attributes) Set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}

	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

func (a *Attributes) Get(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Value returns the value of key, or an empty string if it isn't set.
func (a *Attributes) Value(key string) string {
	return a.values[key]
}

func (a *Attributes) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Keys returns the keys in the order they first appeared.
func (a *Attributes) Keys() []string {
	return a.keys
}

func (a *Attributes) Len() int {
	return len(a.keys)
}

// ParseAttributes splits the remainder of a line into key:value attributes and
// leftover free text. A value runs until the next token that contains a colon,
// so values can have spaces in them but can't contain colons.
func ParseAttributes(s string) (attrs Attributes, text string) {
	if s == "" {
		return attrs, ""
	}

	parts := strings.Split(s, " ")
	leftover := []string{}

	for i := 0; i < len(parts); {
		part := parts[i]

		key, first, ok := strings.Cut(part, string(attributeSeparator))
		if !ok {
			leftover = append(leftover, part)
			i++
			continue
		}

		value := []string{first}

		j := i + 1
		for j < len(parts) && !strings.ContainsRune(parts[j], attributeSeparator) {
			value = append(value, parts[j])
			j++
		}

		attrs.Set(strings.TrimSpace(key), strings.TrimSpace(strings.Join(value, " ")))
		i = j
	}

	return attrs, strings.TrimSpace(strings.Join(leftover, " "))
}
