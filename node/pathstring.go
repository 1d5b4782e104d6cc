package node

import (
	"strconv"
	"strings"
)

// PathString renders n's location from the root as a dotted/bracketed
// path (e.g. "foo.bar[2]"), the format used throughout error messages and
// by missing-keys enumeration (§4.8, §8 scenario 6). The root itself
// renders as "".
func PathString(n Node) string {
	type seg struct {
		text    string
		bracket bool
	}

	var segs []seg

	for cur := n; ; {
		parent := cur.Parent()
		if parent == nil {
			break
		}

		switch k := cur.KeyInParent().(type) {
		case MapKey:
			segs = append(segs, seg{text: k.String()})
		case IndexKey:
			segs = append(segs, seg{text: strconv.Itoa(int(k)), bracket: true})
		}

		cur = parent
	}

	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}

	var sb strings.Builder

	for i, s := range segs {
		if s.bracket {
			sb.WriteByte('[')
			sb.WriteString(s.text)
			sb.WriteByte(']')

			continue
		}

		if i > 0 {
			sb.WriteByte('.')
		}

		sb.WriteString(s.text)
	}

	return sb.String()
}
