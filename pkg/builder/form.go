package builder

import (
	"fmt"

	"github.com/goliatone/go-guihelper/pkg/config"
	"github.com/goliatone/go-guihelper/pkg/nested"
)

// Form is the engine every backend drives: it owns the widget map and
// the callbacks, and translates between flat widget values and the
// nested data shape via the dot-notation utilities. The configuration
// is read-only once the form exists.
type Form struct {
	cfg       *config.GuiConfig
	widgets   map[string]Widget
	order     []string
	callbacks Callbacks
}

// New validates the configuration semantically and instantiates one
// widget per presented field through the backend's factory.
func New(cfg *config.GuiConfig, factory WidgetFactory) (*Form, error) {
	if cfg == nil {
		return nil, fmt.Errorf("builder: configuration is required")
	}
	if factory == nil {
		return nil, fmt.Errorf("builder: widget factory is required")
	}
	if err := config.ValidateAndRaise(cfg); err != nil {
		return nil, err
	}

	form := &Form{
		cfg:     cfg,
		widgets: make(map[string]Widget),
	}
	for _, field := range cfg.AllFields() {
		widget, err := factory.CreateWidget(field)
		if err != nil {
			return nil, fmt.Errorf("builder: create widget for field %q: %w", field.Name, err)
		}
		form.widgets[field.Name] = widget
		form.order = append(form.order, field.Name)
	}
	return form, nil
}

// Config returns the configuration the form was built from.
func (f *Form) Config() *config.GuiConfig { return f.cfg }

// Callbacks exposes the callback slots for registration.
func (f *Form) Callbacks() *Callbacks { return &f.callbacks }

// Widget returns the widget bound to a field name.
func (f *Form) Widget(name string) (Widget, bool) {
	w, ok := f.widgets[name]
	return w, ok
}

// FieldNames lists widget names in presentation order.
func (f *Form) FieldNames() []string {
	return append([]string(nil), f.order...)
}

// FieldValue reads one widget's current value.
func (f *Form) FieldValue(name string) (any, bool) {
	w, ok := f.widgets[name]
	if !ok {
		return nil, false
	}
	return w.Value(), true
}

// SetFieldValue writes one widget's value, reporting false for unknown
// fields or coercion failures. A successful write notifies the change
// observers.
func (f *Form) SetFieldValue(name string, value any) bool {
	w, ok := f.widgets[name]
	if !ok {
		return false
	}
	if !w.SetValue(value) {
		return false
	}
	f.callbacks.fireFieldChange(name, w.Value())
	return true
}

// NotifyFieldChange is called by backends when a toolkit-native event
// changed a widget's underlying value, so observers fire for edits the
// engine did not initiate.
func (f *Form) NotifyFieldChange(name string) {
	if w, ok := f.widgets[name]; ok {
		f.callbacks.fireFieldChange(name, w.Value())
	}
}

// Data reconstitutes the nested form data: every flat widget name is
// written through the dot-notation setter.
func (f *Form) Data() map[string]any {
	data := make(map[string]any)
	for _, name := range f.order {
		nested.SetValue(data, name, f.widgets[name].Value())
	}
	return data
}

// SetData loads a flat or nested data tree into the widgets. Unknown
// keys are ignored; coercion failures skip the field. This is a
// best-effort operation by design.
func (f *Form) SetData(data map[string]any) {
	for name, value := range nested.Flatten(data) {
		f.SetFieldValue(name, value)
	}
}

// Clear resets every widget to its field's default value, or the type's
// zero value without one. The nil write takes the coercion shortcut
// straight to the zero value, so fields whose coercion rejects empty
// input (choice types without a default) still reset.
func (f *Form) Clear() {
	for _, field := range f.cfg.AllFields() {
		w := f.widgets[field.Name]
		if field.DefaultValue == nil || !w.SetValue(field.DefaultValue) {
			w.SetValue(nil)
		}
		f.callbacks.fireFieldChange(field.Name, w.Value())
	}
}

// MissingRequired returns the names of required fields whose current
// value is empty under the shared emptiness rule.
func (f *Form) MissingRequired() []string {
	var missing []string
	for _, name := range f.cfg.RequiredFieldNames() {
		if w, ok := f.widgets[name]; !ok || EmptyValue(w.Value()) {
			missing = append(missing, name)
		}
	}
	return missing
}

// MissingRequiredLabels maps MissingRequired through the field labels,
// the shape reported back to users.
func (f *Form) MissingRequiredLabels() []string {
	var labels []string
	for _, name := range f.MissingRequired() {
		if field, ok := f.cfg.FieldByName(name); ok {
			labels = append(labels, field.Label)
		} else {
			labels = append(labels, name)
		}
	}
	return labels
}

// Submit validates required fields and, when all are present, fires the
// submit callback with the nested data. The returned list is non-empty
// when validation failed; the form session stays open and nothing is
// lost.
func (f *Form) Submit() []string {
	if missing := f.MissingRequiredLabels(); len(missing) > 0 {
		return missing
	}
	f.callbacks.fireSubmit(f.Data())
	return nil
}

// Cancel fires the cancel callback.
func (f *Form) Cancel() {
	f.callbacks.fireCancel()
}

// TriggerButton dispatches a custom button press with the current form
// data. Unknown buttons and buttons without a registered callback
// return an error.
func (f *Form) TriggerButton(name string) error {
	known := false
	for _, button := range f.cfg.CustomButtons {
		if button.Name == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("builder: unknown custom button %q", name)
	}
	if !f.callbacks.fireButton(name, f.Data()) {
		return fmt.Errorf("builder: no callback registered for button %q", name)
	}
	return nil
}

// EnableField toggles a widget's enabled state.
func (f *Form) EnableField(name string, enabled bool) {
	if w, ok := f.widgets[name]; ok {
		w.SetEnabled(enabled)
	}
}

// ShowField toggles a widget's visibility.
func (f *Form) ShowField(name string, visible bool) {
	if w, ok := f.widgets[name]; ok {
		w.SetVisible(visible)
	}
}
