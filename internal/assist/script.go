package assist

import "unicode"

// arabicRatioThreshold is the share of non-whitespace characters that must be
// Arabic or Tifinagh script before a text routes to the Arabic-optimized
// speech voice. Strictly greater-than: a lone Arabic word inside a Latin
// sentence must not flip the classification.
const arabicRatioThreshold = 0.30

var arabicScript = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1}, // Arabic
		{Lo: 0x0750, Hi: 0x077F, Stride: 1}, // Arabic Supplement
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1}, // Arabic Extended-A
		{Lo: 0x2D30, Hi: 0x2D7F, Stride: 1}, // Tifinagh
	},
}

// IsArabicScript reports whether text is predominantly Arabic/Tifinagh
// script. Empty or all-whitespace text is not.
func IsArabicScript(text string) bool {
	var arabic, total int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if unicode.Is(arabicScript, r) {
			arabic++
		}
	}
	if total == 0 {
		return false
	}
	return float64(arabic)/float64(total) > arabicRatioThreshold
}
