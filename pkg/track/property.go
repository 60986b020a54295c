// Package track implements keyframe tracks and their interpolation: the
// per-property ordered keyframe collections of the animation engine and the
// evaluation that turns a track plus a query time into a live value.
package track

import "sort"

// ValueKind describes how a property's values interpolate.
type ValueKind int

const (
	// KindNumeric interpolates linearly in value space.
	KindNumeric ValueKind = iota
	// KindColor interpolates componentwise over sRGB channels.
	KindColor
	// KindDiscrete never interpolates; values step at the end of a segment.
	KindDiscrete
)

func (k ValueKind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindColor:
		return "color"
	case KindDiscrete:
		return "discrete"
	default:
		return "unknown"
	}
}

// Property identifies one animatable property of a design element.
type Property string

// The animatable properties.
const (
	PropPositionX     Property = "position-x"
	PropPositionY     Property = "position-y"
	PropWidth         Property = "width"
	PropHeight        Property = "height"
	PropRotation      Property = "rotation"
	PropOpacity       Property = "opacity"
	PropFillColor     Property = "fill-color"
	PropStrokeColor   Property = "stroke-color"
	PropStrokeWidth   Property = "stroke-width"
	PropStrokeStyle   Property = "stroke-style"
	PropBorderRadius  Property = "border-radius"
	PropShadowBlur    Property = "shadow-blur"
	PropShadowX       Property = "shadow-x"
	PropShadowY       Property = "shadow-y"
	PropFontSize      Property = "font-size"
	PropLetterSpacing Property = "letter-spacing"
)

var propertyKinds = map[Property]ValueKind{
	PropPositionX:     KindNumeric,
	PropPositionY:     KindNumeric,
	PropWidth:         KindNumeric,
	PropHeight:        KindNumeric,
	PropRotation:      KindNumeric,
	PropOpacity:       KindNumeric,
	PropFillColor:     KindColor,
	PropStrokeColor:   KindColor,
	PropStrokeWidth:   KindNumeric,
	PropStrokeStyle:   KindDiscrete,
	PropBorderRadius:  KindNumeric,
	PropShadowBlur:    KindNumeric,
	PropShadowX:       KindNumeric,
	PropShadowY:       KindNumeric,
	PropFontSize:      KindNumeric,
	PropLetterSpacing: KindNumeric,
}

// Valid reports whether p is part of the property enumeration.
func (p Property) Valid() bool {
	_, ok := propertyKinds[p]
	return ok
}

// Kind returns the value kind of p. Unknown properties report KindNumeric
// and false.
func (p Property) Kind() (ValueKind, bool) {
	k, ok := propertyKinds[p]
	return k, ok
}

// Properties returns the sorted enumeration of animatable properties.
func Properties() []Property {
	props := make([]Property, 0, len(propertyKinds))
	for p := range propertyKinds {
		props = append(props, p)
	}
	sort.Slice(props, func(i, j int) bool { return props[i] < props[j] })
	return props
}
