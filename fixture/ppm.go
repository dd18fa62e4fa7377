package fixture

import "fmt"

// encodePPM renders a binary PPM (P6) image: a one-line textual header
// followed by raw RGB triplets, row-major.
func encodePPM(width, height int, pixel func(x, y int) (r, g, b uint8)) []byte {
	header := fmt.Sprintf("P6\n%d %d\n255\n", width, height)

	buf := make([]byte, 0, len(header)+width*height*3)
	buf = append(buf, header...)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := pixel(x, y)
			buf = append(buf, r, g, b)
		}
	}

	return buf
}
