package fits

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rtrio/fitsindex/data"
)

const (
	// FITS files are organized in fixed-size blocks of 36 card images.
	blockSize = 2880
	cardSize  = 80
)

// File is a scoped handle on an opened FITS file. The primary header is
// parsed eagerly at open time.
type File struct {
	f   *os.File
	hdr Header
}

// Open opens a FITS file and parses its primary header.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("fits: open %s: %w", path, err)
	}

	hdr, err := Read(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &File{f: f, hdr: hdr}, nil
}

// Header returns the parsed primary header.
func (f *File) Header() Header {
	return f.hdr
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	return f.f.Close()
}

// Read parses a primary header from r, consuming whole 2880-byte
// blocks up to and including the one holding the END card.
func Read(r io.Reader) (Header, error) {
	var hdr Header

	block := make([]byte, blockSize)
	first := true

	for {
		if _, err := io.ReadFull(r, block); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return Header{}, fmt.Errorf("%w: truncated before END card", data.ErrBadHeader)
			}
			return Header{}, fmt.Errorf("%w: %v", data.ErrBadHeader, err)
		}

		for i := 0; i < blockSize; i += cardSize {
			card := string(block[i : i+cardSize])
			keyword := strings.TrimRight(card[:8], " ")

			if first {
				if keyword != "SIMPLE" {
					return Header{}, fmt.Errorf("%w: not a FITS primary header (first keyword '%s')", data.ErrBadHeader, keyword)
				}
				first = false
			}

			if keyword == "END" {
				return hdr, nil
			}
			if keyword == "" || keyword == "COMMENT" || keyword == "HISTORY" {
				continue
			}
			if card[8:10] != "= " {
				// Commentary card without a value indicator
				continue
			}

			value, comment := parseValue(card[10:])
			hdr.set(Card{Keyword: keyword, Value: value, Comment: comment})
		}
	}
}

// parseValue splits the value field of a card into its typed value and
// trailing comment. Strings are quoted with '' as the escape; logicals
// are T/F; anything numeric becomes int64 or float64.
func parseValue(field string) (any, string) {
	s := strings.TrimLeft(field, " ")

	if strings.HasPrefix(s, "'") {
		return parseString(s)
	}

	raw := s
	comment := ""
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		raw = s[:idx]
		comment = strings.TrimSpace(s[idx+1:])
	}
	raw = strings.TrimSpace(raw)

	switch raw {
	case "T":
		return true, comment
	case "F":
		return false, comment
	case "":
		return "", comment
	}

	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i, comment
	}

	// FITS allows D as the double-precision exponent marker
	norm := strings.Map(func(r rune) rune {
		if r == 'D' || r == 'd' {
			return 'E'
		}
		return r
	}, raw)
	if f, err := strconv.ParseFloat(norm, 64); err == nil {
		return f, comment
	}

	return raw, comment
}

func parseString(s string) (string, string) {
	var b strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		if c == '\'' {
			if i+1 < len(s) && s[i+1] == '\'' {
				b.WriteByte('\'')
				i += 2
				continue
			}
			i++
			break
		}
		b.WriteByte(c)
		i++
	}

	comment := ""
	if idx := strings.IndexByte(s[i:], '/'); idx >= 0 {
		comment = strings.TrimSpace(s[i+idx+1:])
	}

	// Trailing blanks inside the quotes are padding, not content
	return strings.TrimRight(b.String(), " "), comment
}
