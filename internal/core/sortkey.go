package core

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Joint labels follow a prefix+index naming convention ("A2", "A10", "B2").
// A plain lexical sort puts "A10" before "A2", so the numeric suffix has to
// be compared as an integer. Labels that don't follow the convention sort
// after the ones that do, in their original input order.
var (
	jointExact = regexp.MustCompile(`^([A-Za-z]+)\s*(\d+)$`)
	jointLoose = regexp.MustCompile(`^([A-Za-z]+).*?(\d+)`)
)

// SortKey is the natural ordering key for a joint label. Keys compare as the
// tuple (unparsed, prefix, number) for parsed labels and (unparsed, origIndex)
// for the rest; parsed labels always come first.
type SortKey struct {
	unparsed  bool
	prefix    string
	number    int
	origIndex int
}

// JointSortKey builds the ordering key for a label at a given original
// position. A label parses when it is letters followed (immediately or
// eventually) by a run of digits; anything else, including an empty label,
// falls back to original-position order.
func JointSortKey(label string, origIndex int) SortKey {
	text := strings.TrimSpace(label)
	if text == "" {
		return SortKey{unparsed: true, origIndex: origIndex}
	}
	m := jointExact.FindStringSubmatch(text)
	if m == nil {
		m = jointLoose.FindStringSubmatch(text)
	}
	if m == nil {
		return SortKey{unparsed: true, origIndex: origIndex}
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		// Digit runs long enough to overflow int don't occur in real joint
		// labels; treat them as unparsed rather than guessing.
		return SortKey{unparsed: true, origIndex: origIndex}
	}
	return SortKey{prefix: strings.ToLower(m[1]), number: n}
}

// Less reports whether k orders before o. Equal keys report false in both
// directions, so a stable sort preserves their relative input order.
func (k SortKey) Less(o SortKey) bool {
	if k.unparsed != o.unparsed {
		return !k.unparsed
	}
	if k.unparsed {
		return k.origIndex < o.origIndex
	}
	if k.prefix != o.prefix {
		return k.prefix < o.prefix
	}
	return k.number < o.number
}

// SortRowsByJoint orders rows by the natural sort key of their joint label
// (Operation Description1). The sort is stable: rows with identical keys
// never reorder relative to each other.
func SortRowsByJoint(rows []Row) {
	keys := make([]SortKey, len(rows))
	for i, r := range rows {
		keys[i] = JointSortKey(r.Get(ColOperationDesc), r.OrigIndex)
	}
	sort.Stable(&byJointKey{rows: rows, keys: keys})
}

// byJointKey sorts rows and their precomputed keys in lockstep. Keys are
// computed once up front rather than inside Less.
type byJointKey struct {
	rows []Row
	keys []SortKey
}

func (b *byJointKey) Len() int           { return len(b.rows) }
func (b *byJointKey) Less(i, j int) bool { return b.keys[i].Less(b.keys[j]) }
func (b *byJointKey) Swap(i, j int) {
	b.rows[i], b.rows[j] = b.rows[j], b.rows[i]
	b.keys[i], b.keys[j] = b.keys[j], b.keys[i]
}
