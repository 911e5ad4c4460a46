package util

// MaskSecret keeps the first four characters of a token or secret for log correlation
func MaskSecret(value string) string {
	if len(value) <= 4 {
		return "****"
	}
	return value[:4] + "****"
}
