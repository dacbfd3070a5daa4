package catalog

// Keys in object documents, as returned by the collection API.
const (
	FieldArtistDisplayName = "artistDisplayName"
	FieldClassification    = "classification"
	FieldCulture           = "culture"
	FieldDepartment        = "department"
	FieldMedium            = "medium"
	FieldObjectDate        = "objectDate"
	FieldObjectID          = "objectID"
	FieldPrimaryImage      = "primaryImage"
	FieldPrimaryImageSmall = "primaryImageSmall"
	FieldTitle             = "title"
)

// Document is one object's metadata record, a decoded JSON mapping.
// Absent fields are not assumed present; the typed accessors return
// zero values for missing or mistyped fields.
type Document map[string]any

// String returns the string value of a field, or "" if absent.
func (d Document) String(field string) string {
	if v, ok := d[field].(string); ok {
		return v
	}
	return ""
}

// Int returns the integer value of a field, or 0 if absent.
// JSON numbers decode as float64, so both forms are accepted.
func (d Document) Int(field string) int {
	switch v := d[field].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// ObjectID returns the catalog object identifier.
func (d Document) ObjectID() int {
	return d.Int(FieldObjectID)
}

// Title returns the object title.
func (d Document) Title() string {
	return d.String(FieldTitle)
}

// Artist returns the artist display name.
func (d Document) Artist() string {
	return d.String(FieldArtistDisplayName)
}

// Medium returns the object medium.
func (d Document) Medium() string {
	return d.String(FieldMedium)
}

// Date returns the object date.
func (d Document) Date() string {
	return d.String(FieldObjectDate)
}

// Culture returns the object culture.
func (d Document) Culture() string {
	return d.String(FieldCulture)
}

// Department returns the curatorial department name.
func (d Document) Department() string {
	return d.String(FieldDepartment)
}

// Classification returns the object classification.
func (d Document) Classification() string {
	return d.String(FieldClassification)
}

// ThumbnailURL returns the small primary image URL, falling back to the
// full-size image when no small rendition exists. Empty when the object
// has no image.
func (d Document) ThumbnailURL() string {
	if url := d.String(FieldPrimaryImageSmall); url != "" {
		return url
	}
	return d.String(FieldPrimaryImage)
}
