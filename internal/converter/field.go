package converter

import "unicode/utf8"

// Input is the focusable amount field the pipeline keeps in sync.
type Input interface {
	Focused() bool
	Selection() (start, end int)
	Focus()
	SetSelection(start, end int)
	SelectAll()
	// SetValue re-renders the field with the pipeline's amount.
	SetValue(v string)
}

// Field is an in-memory Input for the terminal client. It is not safe for
// concurrent use and lives on the pipeline's event loop.
type Field struct {
	value   string
	focused bool
	start   int
	end     int
}

// NewField returns an empty, focused field.
func NewField() *Field {
	return &Field{focused: true}
}

func (f *Field) Value() string { return f.value }
func (f *Field) Focused() bool { return f.focused }
func (f *Field) Focus()        { f.focused = true }
func (f *Field) Blur()         { f.focused = false }

func (f *Field) Selection() (start, end int) { return f.start, f.end }

// SetSelection clamps the range to the current value.
func (f *Field) SetSelection(start, end int) {
	n := utf8.RuneCountInString(f.value)
	start = clamp(start, 0, n)
	end = clamp(end, start, n)
	f.start, f.end = start, end
}

func (f *Field) SelectAll() {
	f.start, f.end = 0, utf8.RuneCountInString(f.value)
}

// SetValue replaces the value. A changed value puts the caret at the end.
func (f *Field) SetValue(v string) {
	if v == f.value {
		return
	}
	f.value = v
	n := utf8.RuneCountInString(v)
	f.start, f.end = n, n
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
