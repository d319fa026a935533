package table

import (
	"cmp"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Direction is the sort direction of a column.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

// SortMode declares how a column compares its values.
type SortMode int

const (
	// Auto decides per pair of values: numeric when both parse as numbers,
	// lexicographic otherwise. A column with mixed values may therefore not
	// sort consistently.
	Auto SortMode = iota
	Numeric
	Lexicographic
)

// Comparator orders rows by one key.
type Comparator struct {
	Key  string
	Mode SortMode
	Dir  Direction

	// coll is not safe for concurrent use; every View owns its own.
	coll *collate.Collator
}

// NewComparator builds a comparator whose lexicographic comparisons follow
// the collation rules of tag.
func NewComparator(key string, mode SortMode, dir Direction, tag language.Tag) *Comparator {
	return &Comparator{
		Key:  key,
		Mode: mode,
		Dir:  dir,
		coll: collate.New(tag),
	}
}

// Compare orders a and b by key in byte-wise lexicographic or numeric order.
func Compare(a, b Row, key string, dir Direction) int {
	c := Comparator{Key: key, Dir: dir}
	return c.Compare(a, b)
}

// Compare returns a negative number when a sorts before b, positive when
// after and zero for ties.
func (c *Comparator) Compare(a, b Row) int {
	va, vb := a[c.Key], b[c.Key]

	var diff int
	switch c.Mode {
	case Numeric:
		diff = cmp.Compare(a.Float(c.Key), b.Float(c.Key))
	case Lexicographic:
		diff = c.compareStrings(Stringify(va), Stringify(vb))
	default:
		fa, okA := AsNumber(va)
		fb, okB := AsNumber(vb)
		if okA && okB {
			diff = cmp.Compare(fa, fb)
		} else {
			diff = c.compareStrings(Stringify(va), Stringify(vb))
		}
	}

	if c.Dir == Desc {
		return -diff
	}
	return diff
}

func (c *Comparator) compareStrings(a, b string) int {
	if c.coll == nil {
		return strings.Compare(a, b)
	}
	return c.coll.CompareString(a, b)
}
