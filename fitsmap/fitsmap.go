// Package fitsmap maps legacy FITS header keywords onto typed XISF
// property ids, the adoption path a reader uses to carry forward metadata
// from telescope control software that still speaks FITS.
package fitsmap

import (
	"strconv"
	"strings"

	"github.com/xisf-go/libxisf/value"
)

// Entry describes how one FITS keyword maps onto an XISF property.
type Entry struct {
	PropertyID string
	Kind       value.Kind
	// MillimeterToMeter divides a parsed Float32 value by 1000, converting
	// a FITS millimeter measurement (APTDIA, FOCALLEN) to the meters XISF
	// properties use.
	MillimeterToMeter bool
}

// table is the FITS keyword -> Entry mapping from the external interfaces
// section: keyword name as it appears in a FITSKeyword element's name
// field.
var table = map[string]Entry{
	"OBSERVER":  {PropertyID: "Observer:Name", Kind: value.String},
	"RADECSYS":  {PropertyID: "Observation:CelestialReferenceSystem", Kind: value.String},
	"CRVAL1":    {PropertyID: "Observation:Center:Dec", Kind: value.Float64},
	"CRVAL2":    {PropertyID: "Observation:Center:RA", Kind: value.Float64},
	"CRPIX1":    {PropertyID: "Observation:Center:X", Kind: value.Float64},
	"CRPIX2":    {PropertyID: "Observation:Center:Y", Kind: value.Float64},
	"EQUINOX":   {PropertyID: "Observation:Equinox", Kind: value.Float64},
	"SITELAT":   {PropertyID: "Observation:Location:Latitude", Kind: value.Float64},
	"SITELONG":  {PropertyID: "Observation:Location:Longitude", Kind: value.Float64},
	"OBJECT":    {PropertyID: "Observation:Object:Name", Kind: value.String},
	"DEC":       {PropertyID: "Observation:Object:Dec", Kind: value.Float64},
	"RA":        {PropertyID: "Observation:Object:RA", Kind: value.Float64},
	"DATE-OBS":  {PropertyID: "Observation:Time:Start", Kind: value.TimePoint},
	"DATE-END":  {PropertyID: "Observation:Time:End", Kind: value.TimePoint},
	"GAIN":      {PropertyID: "Instrument:Camera:Gain", Kind: value.Float32},
	"ISOSPEED":  {PropertyID: "Instrument:Camera:ISOSpeed", Kind: value.Int32},
	"INSTRUME":  {PropertyID: "Instrument:Camera:Name", Kind: value.String},
	"ROTATANG":  {PropertyID: "Instrument:Camera:Rotation", Kind: value.Float32},
	"XBINNING":  {PropertyID: "Instrument:Camera:XBinning", Kind: value.Int32},
	"YBINNING":  {PropertyID: "Instrument:Camera:YBinning", Kind: value.Int32},
	"EXPTIME":   {PropertyID: "Instrument:ExposureTime", Kind: value.Float32},
	"FILTER":    {PropertyID: "Instrument:Filter:Name", Kind: value.String},
	"FOCUSPOS":  {PropertyID: "Instrument:Focuser:Position", Kind: value.Float32},
	"CCD-TEMP":  {PropertyID: "Instrument:Sensor:Temperature", Kind: value.Float32},
	"APTDIA":    {PropertyID: "Instrument:Telescope:Aperture", Kind: value.Float32, MillimeterToMeter: true},
	"FOCALLEN":  {PropertyID: "Instrument:Telescope:FocalLength", Kind: value.Float32, MillimeterToMeter: true},
	"TELESCOP":  {PropertyID: "Instrument:Telescope:Name", Kind: value.String},
}

// Lookup returns the mapping entry for a FITS keyword name, if any.
func Lookup(name string) (Entry, bool) {
	e, ok := table[name]
	return e, ok
}

// Adopt parses textValue per the entry's Kind and returns the property
// value to upsert at entry.PropertyID, applying the millimeter-to-meter
// conversion when the entry calls for it.
func Adopt(entry Entry, textValue string) (value.Value, error) {
	if entry.MillimeterToMeter {
		mm, err := strconv.ParseFloat(strings.TrimSpace(textValue), 32)
		if err != nil {
			return value.Value{}, err
		}

		return value.NewFloat32(float32(mm / 1000)), nil
	}

	return value.ParseText(entry.Kind, textValue)
}
