package xmlparse

import "bytes"

// attlistType is the declared type of an attribute from an <!ATTLIST>
// declaration. Only CDATA vs. non-CDATA matters for normalization
// (§4.5 step 4); the rest are kept for completeness of the DTD scanner.
type attlistType int

const (
	attlistCDATA attlistType = iota
	attlistID
	attlistIDRef
	attlistIDRefs
	attlistEntity
	attlistEntities
	attlistNMToken
	attlistNMTokens
	attlistNotation
	attlistEnumeration
)

// attlistDefault is the declared default-value behavior of an attribute.
type attlistDefault int

const (
	attlistNoDefault attlistDefault = iota
	attlistImplied
	attlistRequired
	attlistFixed
)

// attlistRow is one <!ATTLIST> declaration. Used only to select the
// normalization rule (CDATA vs. others) during attribute value
// normalization; never referenced for validation.
type attlistRow struct {
	element     []byte
	attribute   []byte
	kind        attlistType
	defaultKind attlistDefault
	fixedValue  []byte
}

// attlistTable is bounded by Config.MaxAttlist.
type attlistTable struct {
	rows []attlistRow
	cfg  Config
}

func newAttlistTable(cfg Config) *attlistTable {
	return &attlistTable{cfg: cfg}
}

func (t *attlistTable) lookup(element, attribute []byte) (*attlistRow, bool) {
	for i := range t.rows {
		if bytes.Equal(t.rows[i].element, element) && bytes.Equal(t.rows[i].attribute, attribute) {
			return &t.rows[i], true
		}
	}
	return nil, false
}

func (t *attlistTable) add(row attlistRow) ErrorKind {
	if len(t.rows) >= t.cfg.MaxAttlist {
		return ErrLargeNumberOfAttributeList
	}
	t.rows = append(t.rows, row)
	return ErrNone
}
