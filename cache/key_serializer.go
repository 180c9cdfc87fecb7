package cache

import (
	"strings"
	"unicode"
)

// KeySeparator defines the delimiter used between cache key segments.
const KeySeparator = "::"

// defaultKeySerializer renders keys as namespace::kind::path...::id.
type defaultKeySerializer struct {
	namespace string
}

// NewDefaultKeySerializer creates a serializer without a namespace prefix.
func NewDefaultKeySerializer() KeySerializer {
	return &defaultKeySerializer{}
}

// NewNamespacedKeySerializer creates a serializer that prefixes every key with
// the given namespace. Shared cache servers are usually partitioned this way.
func NewNamespacedKeySerializer(namespace string) KeySerializer {
	if namespace == "" {
		return NewDefaultKeySerializer()
	}
	return &defaultKeySerializer{namespace: sanitizeSegment(namespace)}
}

// SerializeKey builds the backend key. Segments are sanitized so the result is
// accepted by memcache (no whitespace or control characters).
func (s *defaultKeySerializer) SerializeKey(key Key) string {
	parts := make([]string, 0, len(key.Path)+3)
	if s.namespace != "" {
		parts = append(parts, s.namespace)
	}

	parts = append(parts, key.Kind.String())
	for _, segment := range key.Path {
		parts = append(parts, sanitizeSegment(segment))
	}
	parts = append(parts, sanitizeSegment(key.ID))

	return strings.Join(parts, KeySeparator)
}

// sanitizeSegment replaces characters that would break the key format.
func sanitizeSegment(segment string) string {
	if segment == "" {
		return "_"
	}

	var b strings.Builder
	b.Grow(len(segment))
	for _, r := range segment {
		switch {
		case unicode.IsSpace(r), unicode.IsControl(r), r == ':':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
