// Package terminal renders a form configuration as an interactive
// prompt session. Prompts go through a PromptDriver so the flow is
// testable without a terminal; the default driver uses survey.
package terminal

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-guihelper/pkg/builder"
	"github.com/goliatone/go-guihelper/pkg/config"
)

// Option customises the backend.
type Option func(*Backend)

// WithDriver injects a prompt driver, replacing the survey default.
func WithDriver(driver PromptDriver) Option {
	return func(b *Backend) {
		if driver != nil {
			b.driver = driver
		}
	}
}

// Backend is the terminal builder backend. Widgets are in-memory value
// holders; Run fills them by prompting field by field.
type Backend struct {
	builder.ValueFactory
	driver PromptDriver
}

// New constructs a terminal backend applying any provided options.
func New(options ...Option) *Backend {
	b := &Backend{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Name reports the backend identifier.
func (b *Backend) Name() string { return "terminal" }

// Run drives one form session: prompt every field, then loop on the
// action menu until the form is submitted or cancelled. ErrAborted maps
// to a cancel.
func (b *Backend) Run(ctx context.Context, form *builder.Form) error {
	if ctx == nil {
		return fmt.Errorf("terminal: context is required")
	}
	if form == nil {
		return fmt.Errorf("terminal: form is required")
	}

	cfg := form.Config()
	if err := b.driver.Info(ctx, cfg.Window.Title); err != nil {
		return err
	}

	for _, field := range cfg.AllFields() {
		if err := b.promptField(ctx, form, field); err != nil {
			if err == ErrAborted {
				form.Cancel()
				return nil
			}
			return err
		}
	}

	return b.actionLoop(ctx, form)
}

func (b *Backend) promptField(ctx context.Context, form *builder.Form, field config.FieldConfig) error {
	for {
		value, err := b.askField(ctx, form, field)
		if err != nil {
			return err
		}

		if field.Required && builder.EmptyValue(value) {
			if err := b.driver.Info(ctx, fmt.Sprintf("%s is required", field.Label)); err != nil {
				return err
			}
			continue
		}
		if value == nil {
			return nil
		}
		if !form.SetFieldValue(field.Name, value) {
			if err := b.driver.Info(ctx, fmt.Sprintf("Invalid value for %s", field.Label)); err != nil {
				return err
			}
			continue
		}
		return nil
	}
}

// askField collects one raw value. A nil value means the user skipped
// an optional field and the widget keeps its default.
func (b *Backend) askField(ctx context.Context, form *builder.Form, field config.FieldConfig) (any, error) {
	switch field.Type {
	case config.FieldTypeCheckbox, config.FieldTypeCheck:
		current, _ := form.FieldValue(field.Name)
		def, _ := current.(bool)
		return b.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: def,
			Help:    field.Tooltip,
		})

	case config.FieldTypeSelect, config.FieldTypeRadio, config.FieldTypeCombo:
		options := field.OptionValues()
		defaultIdx := -1
		if current, ok := form.FieldValue(field.Name); ok {
			if s, ok := current.(string); ok {
				defaultIdx = indexOf(options, s)
			}
		}
		idx, err := b.driver.Select(ctx, SelectConfig{
			Message:      field.Label,
			Options:      options,
			DefaultIndex: defaultIdx,
			Help:         field.Tooltip,
		})
		if err != nil {
			return nil, err
		}
		if idx < 0 || idx >= len(options) {
			return nil, nil
		}
		return options[idx], nil

	case config.FieldTypePassword:
		return b.driver.Password(ctx, InputConfig{Message: field.Label, Help: field.Tooltip})

	case config.FieldTypeTextarea:
		return b.driver.TextArea(ctx, TextAreaConfig{
			Message: field.Label,
			Default: currentString(form, field),
			Help:    field.Tooltip,
		})

	default:
		response, err := b.driver.Input(ctx, InputConfig{
			Message: promptMessage(field),
			Default: currentString(form, field),
			Help:    field.Tooltip,
		})
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(response) == "" && !field.Required {
			return nil, nil
		}
		return response, nil
	}
}

// actionLoop presents the submit/cancel/custom-button menu until a
// terminal action runs. Missing required values send the user back to
// the offending fields.
func (b *Backend) actionLoop(ctx context.Context, form *builder.Form) error {
	cfg := form.Config()

	var actions []string
	if cfg.SubmitButton {
		actions = append(actions, cfg.SubmitLabel)
	}
	for _, button := range cfg.CustomButtons {
		if button.Enabled {
			actions = append(actions, button.Label)
		}
	}
	if cfg.CancelButton {
		actions = append(actions, cfg.CancelLabel)
	}
	if len(actions) == 0 {
		// No buttons configured; submit straight away.
		form.Submit()
		return nil
	}

	for {
		idx, err := b.driver.Select(ctx, SelectConfig{
			Message:      "Action",
			Options:      actions,
			DefaultIndex: 0,
		})
		if err != nil {
			if err == ErrAborted {
				form.Cancel()
				return nil
			}
			return err
		}
		if idx < 0 || idx >= len(actions) {
			continue
		}
		action := actions[idx]

		switch {
		case cfg.SubmitButton && action == cfg.SubmitLabel:
			missing := form.Submit()
			if len(missing) == 0 {
				return nil
			}
			if err := b.driver.Info(ctx, "Missing required fields: "+strings.Join(missing, ", ")); err != nil {
				return err
			}
			if err := b.repromptMissing(ctx, form); err != nil {
				if err == ErrAborted {
					form.Cancel()
					return nil
				}
				return err
			}

		case cfg.CancelButton && action == cfg.CancelLabel:
			form.Cancel()
			return nil

		default:
			for _, button := range cfg.CustomButtons {
				if button.Label == action {
					if err := form.TriggerButton(button.Name); err != nil {
						if infoErr := b.driver.Info(ctx, err.Error()); infoErr != nil {
							return infoErr
						}
					}
					break
				}
			}
		}
	}
}

func (b *Backend) repromptMissing(ctx context.Context, form *builder.Form) error {
	cfg := form.Config()
	for _, name := range form.MissingRequired() {
		field, ok := cfg.FieldByName(name)
		if !ok {
			continue
		}
		if err := b.promptField(ctx, form, field); err != nil {
			return err
		}
	}
	return nil
}

func promptMessage(field config.FieldConfig) string {
	if field.Placeholder != "" {
		return fmt.Sprintf("%s (%s)", field.Label, field.Placeholder)
	}
	return field.Label
}

func currentString(form *builder.Form, field config.FieldConfig) string {
	value, ok := form.FieldValue(field.Name)
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return builder.FormatFloat(v, field.FormatString)
	default:
		return fmt.Sprint(v)
	}
}
