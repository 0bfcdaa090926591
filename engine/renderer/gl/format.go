package gl

// BytesPerPixel returns the byte width of one pixel for a format/type
// pair, 0 when the combination is unknown. Packed short types occupy
// two bytes regardless of component count.
func BytesPerPixel(format, xtype Enum) int {
	switch xtype {
	case UNSIGNED_SHORT_5_6_5, UNSIGNED_SHORT_4_4_4_4, UNSIGNED_SHORT_5_5_5_1:
		return 2
	}

	components := 0
	switch format {
	case RGBA, BGRA:
		components = 4
	case RGB:
		components = 3
	case RG:
		components = 2
	case RED, LUMINANCE, ALPHA:
		components = 1
	default:
		return 0
	}

	size := 0
	switch xtype {
	case UNSIGNED_BYTE:
		size = 1
	case UNSIGNED_SHORT:
		size = 2
	case UNSIGNED_INT, FLOAT:
		size = 4
	default:
		return 0
	}

	return components * size
}
