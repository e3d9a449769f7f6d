// Package opscript parses and executes line-oriented operation scripts
// against a bucket.Storage[string]. Scripts drive the CLI and TUI tools:
//
//	# build a small roster
//	insert alice
//	insert bob
//	erase 0
//	shrink
//	clear
//
// One operation per line. Blank lines and lines starting with # are
// skipped. Erase positions are 0-based logical positions evaluated at
// execution time.
package opscript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	// CommentPrefix marks a comment line
	CommentPrefix = "#"

	// EncodingUTF8 is the identifier for UTF-8 script encoding
	EncodingUTF8 = "UTF-8"

	// EncodingWindows1252 is the identifier for Windows-1252 script encoding
	EncodingWindows1252 = "WINDOWS-1252"

	// ScannerInitialBufferSize is the initial buffer size for the script scanner
	ScannerInitialBufferSize = 64 * 1024 // 64KB

	// ScannerMaxLineSize is the maximum line size for the script scanner
	ScannerMaxLineSize = 1024 * 1024 // 1MB

	// utf8BOM is the byte-order mark tolerated at the start of UTF-8 scripts
	utf8BOM = "\uFEFF"
)

var errUnsupportedEncoding = errors.New("opscript: unsupported encoding")

// Kind identifies one of the four script operations.
type Kind int

const (
	KindInsert Kind = iota
	KindErase
	KindClear
	KindShrink
)

// String returns the script verb for the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindErase:
		return "erase"
	case KindClear:
		return "clear"
	case KindShrink:
		return "shrink"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is one parsed script operation.
type Op struct {
	Kind  Kind
	Value string // insert only: the token to store
	Pos   int    // erase only: 0-based logical position
	Line  int    // 1-based source line, for diagnostics
}

// Options controls script parsing.
type Options struct {
	// Encoding names the input encoding: EncodingUTF8 (the default)
	// or EncodingWindows1252. Comparison is case-insensitive.
	Encoding string
}

// Parse reads a script and returns its operations in order.
//
// Scripts exported from legacy Windows tooling commonly arrive in
// Windows-1252; pass Options{Encoding: EncodingWindows1252} to decode
// them to UTF-8 on the way in. A UTF-8 byte-order mark on the first
// line is tolerated and stripped.
func Parse(r io.Reader, opts *Options) ([]Op, error) {
	if opts == nil {
		opts = &Options{}
	}

	switch strings.ToUpper(opts.Encoding) {
	case "", EncodingUTF8:
		// Already UTF-8
	case EncodingWindows1252:
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedEncoding, opts.Encoding)
	}

	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, ScannerInitialBufferSize)
	scanner.Buffer(buf, ScannerMaxLineSize)

	var ops []Op
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, utf8BOM)
		}
		line = strings.TrimSpace(line)

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, CommentPrefix) {
			continue
		}

		op, err := parseOp(line, lineNo)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning script: %w", err)
	}

	return ops, nil
}

// parseOp parses a single non-empty, non-comment script line.
func parseOp(line string, lineNo int) (Op, error) {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch verb {
	case "insert":
		if rest == "" {
			return Op{}, fmt.Errorf("line %d: insert needs a value", lineNo)
		}
		return Op{Kind: KindInsert, Value: rest, Line: lineNo}, nil

	case "erase":
		if rest == "" {
			return Op{}, fmt.Errorf("line %d: erase needs a position", lineNo)
		}
		pos, err := strconv.Atoi(rest)
		if err != nil {
			return Op{}, fmt.Errorf("line %d: erase position %q is not a number", lineNo, rest)
		}
		if pos < 0 {
			return Op{}, fmt.Errorf("line %d: erase position %d is negative", lineNo, pos)
		}
		return Op{Kind: KindErase, Pos: pos, Line: lineNo}, nil

	case "clear":
		if rest != "" {
			return Op{}, fmt.Errorf("line %d: clear takes no arguments", lineNo)
		}
		return Op{Kind: KindClear, Line: lineNo}, nil

	case "shrink":
		if rest != "" {
			return Op{}, fmt.Errorf("line %d: shrink takes no arguments", lineNo)
		}
		return Op{Kind: KindShrink, Line: lineNo}, nil

	default:
		return Op{}, fmt.Errorf("line %d: unknown operation %q", lineNo, verb)
	}
}
