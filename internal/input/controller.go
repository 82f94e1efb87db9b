// Package input translates key and text events into mask edits while
// keeping the cursor on editable slots.
package input

// Key identifies the keys the controller reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyRune
	KeyBackspace
	KeyDelete
	KeySpace
	KeyEnter
)

// Mode selects how typed characters land in occupied slots.
type Mode int

const (
	ModeInsert Mode = iota
	ModeOverwrite
)

func (m Mode) String() string {
	if m == ModeOverwrite {
		return "OVR"
	}
	return "INS"
}

// EditCommand describes one key event.
type EditCommand struct {
	Key             Key
	Rune            rune
	Anchor          int
	SelectionLength int
}

// Result reports what an event did.
type Result struct {
	// Handled is true when the host must not apply its own editing.
	Handled bool
	// Changed is true when the mask content was modified.
	Changed bool
	// Cursor is the new caret position.
	Cursor int
	// AdvanceFocus asks the host to move to the next field.
	AdvanceFocus bool
}

// Mask is the engine surface the controller edits.
type Mask interface {
	Len() int
	IsEditPosition(pos int) bool
	FindEditPositionFrom(start int, forward bool) int
	VerifyChar(r rune, pos int) bool
	InsertAt(text string, pos int) (int, bool)
	Replace(text string, pos int) (int, bool)
	RemoveAt(pos int) bool
	RemoveRange(start, end int) bool
}

// Controller applies edit events to a Mask. A nil mask makes every event
// except Enter a pass-through.
type Controller struct {
	mask Mask
	mode Mode
}

// New returns a Controller editing m.
func New(m Mask) *Controller {
	return &Controller{mask: m}
}

// Mode returns the current edit mode.
func (c *Controller) Mode() Mode {
	return c.mode
}

// SetMode changes the edit mode.
func (c *Controller) SetMode(mode Mode) {
	c.mode = mode
}

// ToggleMode flips between insert and overwrite.
func (c *Controller) ToggleMode() Mode {
	if c.mode == ModeInsert {
		c.mode = ModeOverwrite
	} else {
		c.mode = ModeInsert
	}
	return c.mode
}

// KeyDown handles a key press before any text is produced for it.
func (c *Controller) KeyDown(cmd EditCommand) Result {
	res := Result{Cursor: cmd.Anchor}
	if cmd.Key == KeyEnter {
		res.AdvanceFocus = true
	}
	if c.mask == nil {
		return res
	}
	pos := cmd.Anchor
	sel := cmd.SelectionLength
	switch cmd.Key {
	case KeyBackspace:
		res.Handled = true
		if sel == 0 {
			c.removeChar(&res, c.editPositionTo(pos-1))
		} else {
			c.removeRange(&res, pos, sel)
		}
	case KeyDelete:
		res.Handled = true
		if sel == 0 {
			if next := c.mask.FindEditPositionFrom(pos, true); next >= 0 {
				c.removeChar(&res, next)
			}
		} else {
			c.removeRange(&res, pos, sel)
		}
	case KeySpace:
		res.Handled = true
		if sel != 0 && c.mask.VerifyChar(' ', pos) {
			c.removeRange(&res, pos, sel)
		} else {
			text := c.TextInput(" ", pos)
			res.Changed = text.Changed
			res.Cursor = text.Cursor
		}
	case KeyRune:
		if sel != 0 && c.mask.VerifyChar(cmd.Rune, pos) {
			c.removeRange(&res, pos, sel)
		}
	}
	return res
}

// TextInput writes text at anchor. The cursor ends on the editable slot
// following the written region.
func (c *Controller) TextInput(text string, anchor int) Result {
	res := Result{Cursor: anchor}
	if c.mask == nil {
		return res
	}
	res.Handled = true
	if anchor < 0 || anchor >= c.mask.Len() {
		return res
	}
	pos := c.editPositionFrom(anchor)
	next, ok := 0, false
	if c.mode == ModeOverwrite {
		next, ok = c.mask.Replace(text, pos)
	}
	if !ok {
		next, ok = c.mask.InsertAt(text, pos)
	}
	if ok {
		res.Changed = true
		pos = next
	}
	res.Cursor = c.editPositionFrom(pos)
	return res
}

func (c *Controller) removeChar(res *Result, pos int) {
	if c.mask.RemoveAt(pos) {
		res.Changed = true
		res.Cursor = pos
	}
}

func (c *Controller) removeRange(res *Result, pos, length int) {
	end := pos + length - 1
	if last := c.mask.Len() - 1; end > last {
		end = last
	}
	if c.mask.RemoveRange(pos, end) {
		res.Changed = true
		res.Cursor = pos
	}
}

func (c *Controller) editPositionFrom(start int) int {
	pos := c.mask.FindEditPositionFrom(start, true)
	if pos < 0 {
		return start
	}
	return pos
}

func (c *Controller) editPositionTo(end int) int {
	for end >= 0 && !c.mask.IsEditPosition(end) {
		end--
	}
	return end
}
