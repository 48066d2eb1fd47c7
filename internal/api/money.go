package api

import "strconv"

// FormatRupiah renders a minor-unit amount as "Rp 90.000" with id-ID
// thousand grouping.
func FormatRupiah(cents int) string {
	units := cents / 100
	s := strconv.Itoa(units)

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	if neg {
		return "Rp -" + string(out)
	}
	return "Rp " + string(out)
}
