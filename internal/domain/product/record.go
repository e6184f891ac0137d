package product

// Catalog field names for the numeric columns of a raw record.
const (
	FieldHue          = "mean_h"
	FieldSaturation   = "mean_s"
	FieldValue        = "mean_v"
	FieldPopularity   = "recommend_num"
	FieldRating       = "rate"
	FieldPigmentation = "pigmentation"
	FieldLongevity    = "longevity"
	FieldSmoothness   = "smoothness"
)

// Catalog field names for the descriptive columns.
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldColorLabel    = "color"
	FieldPersonalColor = "personal_color"
	FieldProductType   = "product_type"
	FieldPrice         = "price"
)

// NumericFields lists the numeric columns every record must carry.
func NumericFields() []string {
	return []string{
		FieldHue, FieldSaturation, FieldValue, FieldPopularity,
		FieldRating, FieldPigmentation, FieldLongevity, FieldSmoothness,
	}
}

// TextFields lists the descriptive columns in storage order.
func TextFields() []string {
	return []string{FieldID, FieldName, FieldColorLabel, FieldPersonalColor, FieldProductType, FieldPrice}
}

// Record is a catalog row as the store returns it, before normalization.
// Numerics holds the raw text of each numeric column; a missing key means NULL.
type Record struct {
	ID            string
	Name          string
	ColorLabel    string
	PersonalColor string
	ProductType   string
	Price         string
	Numerics      map[string]string
}

// RecordFromFields builds a record from a flat column map such as a Redis
// hash or a YAML mapping. Unknown columns are ignored.
func RecordFromFields(fields map[string]string) Record {
	rec := Record{
		ID:            fields[FieldID],
		Name:          fields[FieldName],
		ColorLabel:    fields[FieldColorLabel],
		PersonalColor: fields[FieldPersonalColor],
		ProductType:   fields[FieldProductType],
		Price:         fields[FieldPrice],
		Numerics:      make(map[string]string, len(NumericFields())),
	}
	for _, f := range NumericFields() {
		if v, ok := fields[f]; ok {
			rec.Numerics[f] = v
		}
	}
	return rec
}

// Fields flattens the record back into a column map. Absent numerics are omitted.
func (r *Record) Fields() map[string]string {
	out := map[string]string{
		FieldID:            r.ID,
		FieldName:          r.Name,
		FieldColorLabel:    r.ColorLabel,
		FieldPersonalColor: r.PersonalColor,
		FieldProductType:   r.ProductType,
		FieldPrice:         r.Price,
	}
	for k, v := range r.Numerics {
		out[k] = v
	}
	return out
}

// Key returns the record identifier, falling back to the name.
func (r *Record) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Name
}
