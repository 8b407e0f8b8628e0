// Package source holds the position and span types shared by every
// later compiler stage, plus the FileSet that owns source text and
// resolves byte offsets to line/column positions.
package source

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"
)

// FileID identifies a source file within a FileSet.
type FileID uint32

// Position is a byte offset paired with its 1-based line and column.
// Column is counted in Unicode scalar values, not bytes.
type Position struct {
	Offset uint32
	Line   uint32
	Column uint32
}

// Span is a byte range [Start, End) within a single file. End is
// exclusive for convenient slicing; callers that need to underline the
// last character of a span use End-1.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty reports whether the span covers zero bytes.
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Len returns the byte length of the span.
func (s Span) Len() uint32 {
	return s.End - s.Start
}

// Cover returns the smallest span that contains both s and other.
// Spans from different files are incomparable; Cover returns s unchanged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// File owns the raw bytes of a single source input plus a precomputed
// newline index used for fast offset -> line/column resolution.
type File struct {
	ID      FileID
	Name    string
	Content []byte
	lineIdx []uint32 // byte offset of every '\n' in Content
}

// Text returns the substring covered by span, slicing File.Content directly.
func (f *File) Text(span Span) string {
	return string(f.Content[span.Start:span.End])
}

// GetLine returns the 1-based line's text, without its trailing newline.
func (f *File) GetLine(line uint32) string {
	if line == 0 {
		return ""
	}
	start := f.lineStart(line)
	end := f.lineEnd(line)
	if start > uint32(len(f.Content)) {
		return ""
	}
	if end > uint32(len(f.Content)) {
		end = uint32(len(f.Content))
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

func (f *File) lineStart(line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	idx := line - 2
	if int(idx) < len(f.lineIdx) {
		return f.lineIdx[idx] + 1
	}
	return safeLen(f.Content)
}

func (f *File) lineEnd(line uint32) uint32 {
	idx := line - 1
	if int(idx) < len(f.lineIdx) {
		return f.lineIdx[idx]
	}
	return safeLen(f.Content)
}

func safeLen(b []byte) uint32 {
	n, err := safecast.Conv[uint32](len(b))
	if err != nil {
		panic(fmt.Errorf("source: content length overflow: %w", err))
	}
	return n
}

// Resolve turns a byte offset into a Position, computing the line by
// binary-searching the newline index and the column by counting Unicode
// scalar values from the start of that line.
func (f *File) Resolve(offset uint32) Position {
	line := lineForOffset(f.lineIdx, offset)
	start := f.lineStart(line)
	if offset < start {
		offset = start
	}
	end := safeLen(f.Content)
	if offset > end {
		offset = end
	}
	col := utf8.RuneCount(f.Content[start:offset]) + 1
	colU, err := safecast.Conv[uint32](col)
	if err != nil {
		panic(fmt.Errorf("source: column overflow: %w", err))
	}
	return Position{Offset: offset, Line: line, Column: colU}
}

func lineForOffset(lineIdx []uint32, offset uint32) uint32 {
	lo, hi := 0, len(lineIdx)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineIdx[mid] < offset {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	// lo is the number of newlines strictly before offset's line start,
	// i.e. the 0-based line index is lo.
	line, err := safecast.Conv[uint32](lo + 1)
	if err != nil {
		panic(fmt.Errorf("source: line overflow: %w", err))
	}
	return line
}

// FileSet owns a collection of source files, handing out stable FileIDs.
type FileSet struct {
	files []*File
}

// NewFileSet returns an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{}
}

// AddFile registers content under name and returns the new file's ID.
func (fs *FileSet) AddFile(name string, content []byte) FileID {
	id, err := safecast.Conv[uint32](len(fs.files))
	if err != nil {
		panic(fmt.Errorf("source: file set overflow: %w", err))
	}
	f := &File{
		ID:      FileID(id),
		Name:    name,
		Content: content,
		lineIdx: buildLineIndex(content),
	}
	fs.files = append(fs.files, f)
	return f.ID
}

// Get returns the file registered under id.
func (fs *FileSet) Get(id FileID) *File {
	return fs.files[id]
}

// Resolve maps a span to its start and end positions in the owning file.
func (fs *FileSet) Resolve(span Span) (start, end Position) {
	f := fs.Get(span.File)
	return f.Resolve(span.Start), f.Resolve(span.End)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, 16)
	for i, b := range content {
		if b == '\n' {
			idx, err := safecast.Conv[uint32](i)
			if err != nil {
				panic(fmt.Errorf("source: line index overflow: %w", err))
			}
			out = append(out, idx)
		}
	}
	return out
}
