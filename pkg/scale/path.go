package scale

import (
	"math"
	"strconv"
	"strings"
)

// PathOp identifies an SVG-style path instruction.
type PathOp int

const (
	Move PathOp = iota
	Line
	Close
)

func (op PathOp) String() string {
	switch op {
	case Move:
		return "M"
	case Line:
		return "L"
	case Close:
		return "Z"
	default:
		return "?"
	}
}

// PathCommand is one instruction of a chart path. X and Y are ignored for Close.
type PathCommand struct {
	Op PathOp
	X  float64
	Y  float64
}

// BuildLinePath emits a Move to the first point followed by a Line to each subsequent
// point, in the order given.
func BuildLinePath(points []Coord) []PathCommand {
	if len(points) == 0 {
		return nil
	}
	cmds := make([]PathCommand, 0, len(points))
	for i, p := range points {
		op := Line
		if i == 0 {
			op = Move
		}
		cmds = append(cmds, PathCommand{Op: op, X: p.X, Y: p.Y})
	}
	return cmds
}

// BuildAreaPath closes linePath into a fillable polygon: down to baselineY under the
// last point, across to the first point's x, then Close.
func BuildAreaPath(linePath []PathCommand, baselineY float64) []PathCommand {
	if len(linePath) == 0 {
		return nil
	}
	first := linePath[0]
	last := linePath[len(linePath)-1]
	cmds := make([]PathCommand, 0, len(linePath)+3)
	cmds = append(cmds, linePath...)
	cmds = append(cmds,
		PathCommand{Op: Line, X: last.X, Y: baselineY},
		PathCommand{Op: Line, X: first.X, Y: baselineY},
		PathCommand{Op: Close, X: first.X, Y: first.Y},
	)
	return cmds
}

// PathString renders commands using SVG path data syntax.
func PathString(cmds []PathCommand) string {
	var b strings.Builder
	for i, cmd := range cmds {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(cmd.Op.String())
		if cmd.Op == Close {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(formatFloat(cmd.X))
		b.WriteByte(' ')
		b.WriteString(formatFloat(cmd.Y))
	}
	return b.String()
}

// formatFloat keeps at most three decimals.
func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
