package main

import (
	"bufio"
	"math"
	"strconv"
)

// lineWriter writes one tab-separated line per output vector and flushes it
type lineWriter struct {
	w   *bufio.Writer
	buf []byte
}

func newLineWriter(w *bufio.Writer) *lineWriter {
	return &lineWriter{w: w}
}

func (lw *lineWriter) writeLine(values []float64) error {
	lw.buf = appendLine(lw.buf[:0], values)
	if _, err := lw.w.Write(lw.buf); err != nil {
		return err
	}
	return lw.w.Flush()
}

// appendLine formats values with six decimals, like printf's %f
func appendLine(dst []byte, values []float64) []byte {
	for i, v := range values {
		if i > 0 {
			dst = append(dst, '\t')
		}
		switch {
		case math.IsNaN(v):
			dst = append(dst, "nan"...)
		case math.IsInf(v, 1):
			dst = append(dst, "inf"...)
		case math.IsInf(v, -1):
			dst = append(dst, "-inf"...)
		default:
			dst = strconv.AppendFloat(dst, v, 'f', 6, 64)
		}
	}
	return append(dst, '\n')
}
