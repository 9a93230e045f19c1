package image

import (
	"fmt"

	"github.com/xisf-go/libxisf/fitsmap"
	"github.com/xisf-go/libxisf/internal/propindex"
	"github.com/xisf-go/libxisf/value"
	"github.com/xisf-go/libxisf/xisferr"
)

// Property is a named, typed metadata value attached to an Image (or, at
// the file level, to the document itself).
type Property struct {
	ID      string
	Value   value.Value
	Comment string
}

// propertyTable is the ordered, uniquely-keyed property list shared by
// Image and the file-level metadata set. Insertion order is preserved;
// the id index is kept consistent on every mutation.
type propertyTable struct {
	ordered []Property
	index   *propindex.Index
}

func newPropertyTable() propertyTable {
	return propertyTable{index: propindex.New()}
}

// Add inserts a new property. It returns an error if id is already
// present; use Update to upsert.
func (t *propertyTable) Add(id string, v value.Value, comment string) error {
	if !t.index.Insert(id, len(t.ordered)) {
		return xisferr.Newf(xisferr.KindDuplicateProperty, id, fmt.Errorf("image: duplicate property id %q", id))
	}

	t.ordered = append(t.ordered, Property{ID: id, Value: v, Comment: comment})

	return nil
}

// Update upserts: replaces the value/comment of an existing property, or
// appends a new one if id is absent.
func (t *propertyTable) Update(id string, v value.Value, comment string) {
	if pos, ok := t.index.Position(id); ok {
		t.ordered[pos].Value = v
		t.ordered[pos].Comment = comment

		return
	}

	t.index.Insert(id, len(t.ordered))
	t.ordered = append(t.ordered, Property{ID: id, Value: v, Comment: comment})
}

// Get returns the property at id, if present.
func (t *propertyTable) Get(id string) (Property, bool) {
	pos, ok := t.index.Position(id)
	if !ok {
		return Property{}, false
	}

	return t.ordered[pos], true
}

// Remove drops the property at id, preserving the relative order of the
// rest and reindexing positions.
func (t *propertyTable) Remove(id string) {
	pos, ok := t.index.Position(id)
	if !ok {
		return
	}

	t.ordered = append(t.ordered[:pos], t.ordered[pos+1:]...)

	ids := make([]string, len(t.ordered))
	for i, p := range t.ordered {
		ids[i] = p.ID
	}

	t.index.Reindex(ids)
}

// All returns the properties in insertion order. The returned slice must
// not be modified.
func (t *propertyTable) All() []Property { return t.ordered }

// AddProperty adds a new Image-level property, rejecting a duplicate id.
func (img *Image) AddProperty(id string, v value.Value, comment string) error {
	return img.properties.Add(id, v, comment)
}

// UpdateProperty upserts an Image-level property.
func (img *Image) UpdateProperty(id string, v value.Value, comment string) {
	img.properties.Update(id, v, comment)
}

// GetProperty looks up an Image-level property by id.
func (img *Image) GetProperty(id string) (Property, bool) {
	return img.properties.Get(id)
}

// RemoveProperty removes an Image-level property by id.
func (img *Image) RemoveProperty(id string) {
	img.properties.Remove(id)
}

// Properties returns the Image's properties in insertion order.
func (img *Image) Properties() []Property { return img.properties.All() }

// FITSKeyword is a legacy astronomical metadata triple, carried verbatim
// and never deduplicated.
type FITSKeyword struct {
	Name, Value, Comment string
}

// AddFITSKeyword appends a FITS keyword, regardless of whether its name
// duplicates an existing entry.
func (img *Image) AddFITSKeyword(k FITSKeyword) {
	img.fitsKeywords = append(img.fitsKeywords, k)
}

// FITSKeywords returns the FITS keyword list in insertion order.
func (img *Image) FITSKeywords() []FITSKeyword { return img.fitsKeywords }

// AddFITSKeywordAsProperty adopts a FITS keyword into the property table
// if its name appears in the FITS->property mapping table, parsing
// k.Value per the mapped type and upserting at the mapped property id.
// Names absent from the mapping table are silently ignored (the keyword
// itself should still be recorded via AddFITSKeyword for round-trip
// fidelity).
func (img *Image) AddFITSKeywordAsProperty(k FITSKeyword) error {
	entry, ok := fitsmap.Lookup(k.Name)
	if !ok {
		return nil
	}

	v, err := fitsmap.Adopt(entry, k.Value)
	if err != nil {
		return fmt.Errorf("image: adopting FITS keyword %q: %w", k.Name, err)
	}

	img.properties.Update(entry.PropertyID, v, k.Comment)

	return nil
}
