package builder

import "log"

// SubmitFunc receives the nested form data on submit.
type SubmitFunc func(data map[string]any)

// CancelFunc runs when the form is cancelled.
type CancelFunc func()

// ButtonFunc receives the current form data when its custom button is
// pressed.
type ButtonFunc func(data map[string]any)

// FieldChangeFunc observes widget value changes.
type FieldChangeFunc func(name string, value any)

// Callbacks holds every user callback slot for a form session. It is a
// plain value object composed into the Form rather than mixed into
// backend types, so each backend shares one dispatch path.
type Callbacks struct {
	submit      SubmitFunc
	cancel      CancelFunc
	buttons     map[string]ButtonFunc
	fieldChange []FieldChangeFunc
}

// OnSubmit sets the submit callback.
func (c *Callbacks) OnSubmit(fn SubmitFunc) { c.submit = fn }

// OnCancel sets the cancel callback.
func (c *Callbacks) OnCancel(fn CancelFunc) { c.cancel = fn }

// OnButton sets the callback for a named custom button, replacing any
// previous registration.
func (c *Callbacks) OnButton(name string, fn ButtonFunc) {
	if c.buttons == nil {
		c.buttons = make(map[string]ButtonFunc)
	}
	c.buttons[name] = fn
}

// RemoveButton drops a custom button callback.
func (c *Callbacks) RemoveButton(name string) {
	delete(c.buttons, name)
}

// OnFieldChange appends a change observer. Observers fire synchronously
// in registration order whenever a widget's value changes.
func (c *Callbacks) OnFieldChange(fn FieldChangeFunc) {
	if fn != nil {
		c.fieldChange = append(c.fieldChange, fn)
	}
}

func (c *Callbacks) fireSubmit(data map[string]any) {
	if c.submit != nil {
		guard("submit", func() { c.submit(data) })
	}
}

func (c *Callbacks) fireCancel() {
	if c.cancel != nil {
		guard("cancel", func() { c.cancel() })
	}
}

func (c *Callbacks) fireButton(name string, data map[string]any) bool {
	fn, ok := c.buttons[name]
	if !ok {
		return false
	}
	guard("button "+name, func() { fn(data) })
	return true
}

func (c *Callbacks) fireFieldChange(name string, value any) {
	for _, fn := range c.fieldChange {
		fn := fn
		guard("field change "+name, func() { fn(name, value) })
	}
}

// guard isolates a user callback: a panic inside one callback must not
// terminate the form session or prevent sibling callbacks from running.
func guard(label string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("builder: %s callback panicked: %v", label, r)
		}
	}()
	fn()
}
