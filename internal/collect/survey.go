package collect

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/gorewood/formnote/internal/engine"
	"github.com/gorewood/formnote/internal/template"
)

// InputConfig configures a single-line prompt.
type InputConfig struct {
	Message   string
	Help      string
	Validator func(string) error
}

// TextAreaConfig configures a multi-line prompt.
type TextAreaConfig struct {
	Message string
	Help    string
}

// Prompter abstracts the terminal so collection can be tested without one.
type Prompter interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	TextArea(ctx context.Context, cfg TextAreaConfig) (string, error)
}

// Survey collects missing field values by prompting.
type Survey struct {
	prompter Prompter
	now      func() time.Time
}

// NewSurvey creates a Survey collector. A nil prompter uses the terminal.
func NewSurvey(p Prompter) *Survey {
	if p == nil {
		p = surveyPrompter{}
	}
	return &Survey{prompter: p, now: time.Now}
}

// Collect implements Collector.
func (s *Survey) Collect(ctx context.Context, fields []template.Field, preset map[string]string) (map[string]string, error) {
	out := seed(preset, len(fields))
	for _, f := range fields {
		if _, ok := out[f.ID]; ok {
			continue
		}
		value, err := s.prompt(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.ID, err)
		}
		out[f.ID] = strings.TrimSpace(value)
	}
	return out, nil
}

func (s *Survey) prompt(ctx context.Context, f template.Field) (string, error) {
	msg := f.DisplayLabel()
	help := f.Placeholder

	switch f.Type {
	case template.FieldTextarea:
		return s.prompter.TextArea(ctx, TextAreaConfig{Message: msg, Help: help})
	case template.FieldNumber:
		return s.prompter.Input(ctx, InputConfig{Message: msg, Help: help, Validator: validateNumber})
	case template.FieldDate:
		if help == "" {
			help = "e.g. 2026-10-18 or 2026-10-18 14:30; empty means now"
		}
		return s.prompter.Input(ctx, InputConfig{Message: msg, Help: help, Validator: s.validateDate})
	default:
		return s.prompter.Input(ctx, InputConfig{Message: msg, Help: help})
	}
}

// validateNumber accepts empty input or anything strconv can read as a float.
func validateNumber(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return fmt.Errorf("%q is not a number", raw)
	}
	return nil
}

// validateDate accepts empty input or any layout the date parser knows.
func (s *Survey) validateDate(raw string) error {
	if !engine.ParseDate(raw, s.now()).OK() {
		return fmt.Errorf("%q is not a recognised date", strings.TrimSpace(raw))
	}
	return nil
}

type surveyPrompter struct{}

func (surveyPrompter) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: cfg.Message,
		Help:    cfg.Help,
	}
	var opts []survey.AskOpt
	if cfg.Validator != nil {
		validator := cfg.Validator
		opts = append(opts, survey.WithValidator(func(ans any) error {
			s, _ := ans.(string)
			return validator(s)
		}))
	}
	if err := survey.AskOne(prompt, &out, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyPrompter) TextArea(ctx context.Context, cfg TextAreaConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Multiline{
		Message: cfg.Message,
		Help:    cfg.Help,
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
