package scale

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidData is returned when a serialized scale cannot be decoded
var ErrInvalidData = errors.New("invalid data")

// Scale represents the pixel density of an image rendition
type Scale int

const (
	One   Scale = 1
	Two   Scale = 2
	Three Scale = 3
)

// All returns the canonical scales in ascending order
func All() []Scale {
	return []Scale{One, Two, Three}
}

// Count is the number of canonical scales
const Count = 3

// Detect returns the scale encoded in a filename tail such as "icon@2x.png".
// Tokens are matched case-insensitively in ascending order and the first
// match wins. Names without a token are 1x.
func Detect(filename string) Scale {
	lower := strings.ToLower(filename)
	for _, s := range All() {
		if strings.Contains(lower, strings.ToLower(s.Tail())) {
			return s
		}
	}
	return One
}

// Parse decodes a content value like "2x"
func Parse(value string) (Scale, error) {
	end := 0
	for end < len(value) && value[end] >= '0' && value[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: scale %q has no numeric prefix", ErrInvalidData, value)
	}

	raw, err := strconv.Atoi(value[:end])
	if err != nil {
		return 0, fmt.Errorf("%w: scale %q: %v", ErrInvalidData, value, err)
	}

	s := Scale(raw)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: unknown scale %q", ErrInvalidData, value)
	}
	return s, nil
}

// Valid reports whether s is one of the canonical scales
func (s Scale) Valid() bool {
	return s >= One && s <= Three
}

// Tail returns the filename token, e.g. "@2x"
func (s Scale) Tail() string {
	return fmt.Sprintf("@%dx", int(s))
}

// ContentValue returns the value used in Contents.json, e.g. "2x"
func (s Scale) ContentValue() string {
	return fmt.Sprintf("%dx", int(s))
}

// Index returns the zero-based slot position
func (s Scale) Index() int {
	return int(s) - 1
}

func (s Scale) String() string {
	return s.ContentValue()
}

// StripTail removes the scale token from name, in its original and
// upper-cased form.
func (s Scale) StripTail(name string) string {
	tail := s.Tail()
	name = strings.ReplaceAll(name, tail, "")
	return strings.ReplaceAll(name, strings.ToUpper(tail), "")
}

func (s Scale) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: cannot encode scale %d", ErrInvalidData, int(s))
	}
	return json.Marshal(s.ContentValue())
}

func (s *Scale) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("%w: scale must be a string: %v", ErrInvalidData, err)
	}

	parsed, err := Parse(value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
