package effect

import (
	"fmt"
	"math"
)

// ValueCodec converts between the stored encoding of an effect value and
// the number shown in admin forms. StoredToDisplay and DisplayToStored are
// inverse up to the documented rounding.
type ValueCodec struct {
	StoredToDisplay func(float64) float64
	DisplayToStored func(float64) float64
}

var identityCodec = ValueCodec{
	StoredToDisplay: func(v float64) float64 { return v },
	DisplayToStored: func(v float64) float64 { return v },
}

var rateCodec = ValueCodec{
	StoredToDisplay: func(v float64) float64 { return v * 100 },
	DisplayToStored: func(v float64) float64 { return v / 100 },
}

var multiplierCodec = ValueCodec{
	StoredToDisplay: func(v float64) float64 { return (v - 1) * 100 },
	DisplayToStored: func(v float64) float64 { return 1 + v/100 },
}

// Integer values round toward negative infinity in both directions, so a
// re-parse of a displayed value is stable.
var integerCodec = ValueCodec{
	StoredToDisplay: math.Floor,
	DisplayToStored: math.Floor,
}

// CodecFor returns the value codec for a kind's encoding. Unknown kinds
// get the identity codec.
func CodecFor(kind Kind) ValueCodec {
	meta, ok := MetaFor(kind)
	if !ok {
		return identityCodec
	}

	switch meta.Format {
	case FormatRate:
		return rateCodec
	case FormatMultiplier:
		return multiplierCodec
	case FormatInteger:
		return integerCodec
	case FormatDecimal, FormatPercent:
		return identityCodec
	}
	return identityCodec
}

// FormatValue renders an effect value as a human string per the kind's
// encoding. Admin forms and report text both rely on this being exact.
func FormatValue(kind Kind, value float64) string {
	if math.IsNaN(value) {
		return "—"
	}

	meta, ok := MetaFor(kind)
	if !ok {
		return fmt.Sprintf("%+.2f", value)
	}

	switch meta.Format {
	case FormatRate:
		return fmt.Sprintf("%+.2f%%", value*100)
	case FormatPercent:
		return fmt.Sprintf("%+.2f%%", value)
	case FormatMultiplier:
		return fmt.Sprintf("%+.2f%%", (value-1)*100)
	case FormatInteger:
		return fmt.Sprintf("%+d", int64(math.Floor(value)))
	case FormatDecimal:
		return fmt.Sprintf("%+.2f", value)
	}
	return fmt.Sprintf("%+.2f", value)
}
