package drawing

// Document is the full drawing: commands in z-order, later ones drawn on
// top of earlier ones.
type Document struct {
	commands []Command
}

// NewDocument creates a document holding cmds in the given order.
func NewDocument(cmds ...Command) *Document {
	d := &Document{}
	for _, c := range cmds {
		d.Append(c)
	}
	return d
}

// Append adds c on top of the drawing. Zero commands are ignored.
func (d *Document) Append(c Command) {
	if c.IsZero() {
		return
	}
	d.commands = append(d.commands, c)
}

// Add wraps s in a Command and appends it.
func (d *Document) Add(s Shape) {
	d.Append(NewCommand(s))
}

// Len returns the number of commands.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.commands)
}

// At returns the i-th command in drawing order.
func (d *Document) At(i int) Command {
	return d.commands[i]
}

// Commands returns a copy of the command list.
func (d *Document) Commands() []Command {
	if d == nil {
		return nil
	}
	out := make([]Command, len(d.commands))
	copy(out, d.commands)
	return out
}

// Reset removes every command.
func (d *Document) Reset() {
	d.commands = d.commands[:0]
}

// Equal reports whether both documents hold equal commands in the same order.
func (d *Document) Equal(o *Document) bool {
	if d.Len() != o.Len() {
		return false
	}
	for i := 0; i < d.Len(); i++ {
		if !d.commands[i].Equal(o.commands[i]) {
			return false
		}
	}
	return true
}
