package term

import (
	"fmt"

	"github.com/kungfusheep/cells"
)

func textCell(id any, text string) cells.Cell {
	return cells.NewCell(id, NewLabel, func(l *Label) { l.SetText(text) })
}

func rows(n int) []cells.Cell {
	out := make([]cells.Cell, n)
	for i := range out {
		out[i] = textCell(i, fmt.Sprintf("row %d", i))
	}
	return out
}
