package units

import "sort"

// siPrefixes maps every SI prefix to its scale factor. "u" is accepted as
// an ASCII spelling of "µ".
var siPrefixes = map[string]float64{
	"Q": 1e30, "R": 1e27, "Y": 1e24, "Z": 1e21, "E": 1e18, "P": 1e15,
	"T": 1e12, "G": 1e9, "M": 1e6, "k": 1e3, "h": 1e2, "da": 1e1,
	"d": 1e-1, "c": 1e-2, "m": 1e-3, "µ": 1e-6, "u": 1e-6, "n": 1e-9,
	"p": 1e-12, "f": 1e-15, "a": 1e-18, "z": 1e-21, "y": 1e-24,
	"r": 1e-27, "q": 1e-30,
}

// binaryPrefixes maps the IEC prefixes to powers of 1024. They apply only
// to information units, so "KiB" resolves but "Kim" does not.
var binaryPrefixes = map[string]float64{
	"Ki": 1 << 10,
	"Mi": 1 << 20,
	"Gi": 1 << 30,
	"Ti": 1 << 40,
	"Pi": 1 << 50,
	"Ei": 1 << 60,
}

// prefixFactor returns the scale of an SI or binary prefix.
func prefixFactor(prefix string) float64 {
	if f, ok := siPrefixes[prefix]; ok {
		return f
	}

	return binaryPrefixes[prefix]
}

func isBinaryPrefix(prefix string) bool {
	_, ok := binaryPrefixes[prefix]
	return ok
}

// prefixesByLength holds prefix strings longest first, so "da" wins over
// "d" when both match.
var prefixesByLength = func() []string {
	keys := make([]string, 0, len(siPrefixes)+len(binaryPrefixes))
	for k := range siPrefixes {
		keys = append(keys, k)
	}

	for k := range binaryPrefixes {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})

	return keys
}()
