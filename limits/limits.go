// Limits on how input is read and output is laid out. These are set from
// cobra/viper flags in cmd/progmem, the defaults match the original script.
package limits

// Bytes printed per row of the array before a line break.
var BytesPerLine = 12

// Largest input file accepted, 0 means no limit.
var MaxInputBytes int64 = 0

// Largest width*height accepted, checked from the image header before the
// pixels are decoded. 0 means no limit. The default is where Pillow refuses
// an image outright.
var MaxImagePixels int64 = DefaultMaxImagePixels

const DefaultMaxImagePixels = 178956970
