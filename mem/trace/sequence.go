package trace

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadSequence parses a reference string. Numbers are decimal and separated
// by white space or commas. Everything after a '#' on a line is ignored.
// Lines may be of any length.
func ReadSequence(r io.Reader) ([]int64, error) {
	var seq []int64

	reader := bufio.NewReader(r)
	lineNo := 0

	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		if line != "" {
			lineNo++

			seq, err = appendLine(seq, line, lineNo)
			if err != nil {
				return nil, err
			}
		}

		if err != nil {
			return seq, nil
		}
	}
}

func appendLine(seq []int64, line string, lineNo int) ([]int64, error) {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}

	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\r' || r == '\n'
	})

	for _, field := range fields {
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid number %q", lineNo, field)
		}

		seq = append(seq, n)
	}

	return seq, nil
}
