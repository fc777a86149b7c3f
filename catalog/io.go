package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/granular-dem/shcontact/shape"
)

// ErrShapeFileOverflow is returned when a coefficient file carries more
// records than the requested maximum degree can hold.
var ErrShapeFileOverflow = errors.New(
	"catalog: more coefficient records than the expansion degree allows",
)

// ParseError reports a malformed line in a coefficient file. Line is
// 1-based.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf(
		"catalog: line %d: malformed coefficient record %q", e.Line, e.Text,
	)
}

// ReadCoeffs parses an expansion coefficient file from r into a packed
// coefficient vector of degree nmax. The format is one record per line,
// "n m re im", with blank lines and #-comments skipped. An optional
// single-integer header line carrying the file's own degree is ignored.
// Reading stops at the first record above degree nmax, and records with
// negative m are skipped since they are implied by conjugate symmetry.
func ReadCoeffs(r io.Reader, nmax int) ([]float64, error) {
	coeffs := make([]float64, shape.CoeffLen(nmax))
	maxRecords := (nmax + 1) * (nmax + 2) / 2

	sc := bufio.NewScanner(r)
	line := 0
	records := 0
	sawData := false
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)

		if !sawData && len(fields) == 1 {
			if _, err := strconv.Atoi(fields[0]); err != nil {
				return nil, &ParseError{Line: line, Text: text}
			}
			sawData = true
			continue
		}
		sawData = true

		if len(fields) != 4 {
			return nil, &ParseError{Line: line, Text: text}
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, &ParseError{Line: line, Text: text}
		}
		m, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, &ParseError{Line: line, Text: text}
		}
		re, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text}
		}
		im, err := strconv.ParseFloat(fields[3], 64)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text}
		}

		if n < 0 || m > n {
			return nil, &ParseError{Line: line, Text: text}
		}
		if n > nmax {
			break
		}
		if m < 0 {
			continue
		}

		records++
		if records > maxRecords {
			return nil, errors.Wrapf(
				ErrShapeFileOverflow, "line %d, degree %d", line, nmax,
			)
		}
		l := shape.Loc(n, m)
		coeffs[l] = re
		coeffs[l+1] = im
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "catalog: reading coefficients")
	}
	return coeffs, nil
}

// ReadCoeffFile reads a coefficient file from disk. See ReadCoeffs for
// the format.
func ReadCoeffFile(path string, nmax int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "catalog: opening coefficient file")
	}
	defer f.Close()
	return ReadCoeffs(f, nmax)
}
