package values

import (
	"fmt"
	"strings"
)

// symbol is implemented by every closed alphabet in this package. Index 0 is
// reserved for the zero (unset) value so that uninitialised fields never
// alias a real symbol.
type symbol interface {
	~int
}

func parseSymbol[T symbol](kind, s string, names []string) (T, error) {
	s = strings.TrimSpace(s)
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return T(i), nil
		}
	}
	return 0, NewLookupError(kind, s)
}

func symbolName[T symbol](v T, names []string) string {
	if int(v) <= 0 || int(v) >= len(names) {
		return ""
	}
	return names[int(v)]
}

func unmarshalSymbol[T symbol](kind string, data []byte, names []string, dst *T) error {
	v, err := parseSymbol[T](kind, string(data), names)
	if err != nil {
		return fmt.Errorf("invalid %s text: %w", kind, err)
	}
	*dst = v
	return nil
}

// cyclicNext steps a 1-based symbol forward by n positions inside an
// alphabet of the given size, wrapping with Euclidean modulo.
func cyclicNext[T symbol](v T, n, size int) T {
	i := (int(v) - 1 + n) % size
	if i < 0 {
		i += size
	}
	return T(i + 1)
}
