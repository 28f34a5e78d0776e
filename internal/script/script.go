// Package script decodes YAML navigation scripts. Steps carry loosely typed
// arguments (a screen may be a name or a layout document, a self may be an id
// or a {props: {componentId}} document) which are resolved with the same
// dynamic rules the facade applies to untyped callers.
package script

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"navfacade/internal/layout"
)

// Step operations.
const (
	OpSetRoot                = "setRoot"
	OpPush                   = "push"
	OpPushExternalComponent  = "pushExternalComponent"
	OpPop                    = "pop"
	OpPopTo                  = "popTo"
	OpPopToRoot              = "popToRoot"
	OpSetStackRoot           = "setStackRoot"
	OpShowModal              = "showModal"
	OpShowSheet              = "showSheet"
	OpDismissModal           = "dismissModal"
	OpDismissSheet           = "dismissSheet"
	OpDismissAllModals       = "dismissAllModals"
	OpShowOverlay            = "showOverlay"
	OpDismissOverlay         = "dismissOverlay"
	OpDismissAllOverlays     = "dismissAllOverlays"
	OpMergeOptions           = "mergeOptions"
	OpUpdateProps            = "updateProps"
	OpSetDefaultOptions      = "setDefaultOptions"
	OpSetupSheetContentNodes = "setupSheetContentNodes"
	OpWait                   = "wait"
)

var knownOps = map[string]bool{
	OpSetRoot: true, OpPush: true, OpPushExternalComponent: true, OpPop: true,
	OpPopTo: true, OpPopToRoot: true, OpSetStackRoot: true, OpShowModal: true,
	OpShowSheet: true, OpDismissModal: true, OpDismissSheet: true,
	OpDismissAllModals: true, OpShowOverlay: true, OpDismissOverlay: true,
	OpDismissAllOverlays: true, OpMergeOptions: true, OpUpdateProps: true,
	OpSetDefaultOptions: true, OpSetupSheetContentNodes: true, OpWait: true,
}

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrMissingArg  = errors.New("missing argument")
	ErrUnknownVar  = errors.New("unknown variable")
	ErrInvalidName = errors.New("external component name must be a string or an integer")
)

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one navigation command. Which fields apply depends on Op.
type Step struct {
	Op string `yaml:"op"`

	Self      any            `yaml:"self,omitempty"`   // id string, $var, or {props: {componentId}}
	ID        string         `yaml:"id,omitempty"`     // raw component id, or $var
	Screen    any            `yaml:"screen,omitempty"` // name or layout document
	Root      any            `yaml:"root,omitempty"`   // {root: layout} or name or layout document
	Layouts   []any          `yaml:"layouts,omitempty"`
	Name      any            `yaml:"name,omitempty"` // external component name or numeric id
	Options   layout.Options `yaml:"options,omitempty"`
	PassProps any            `yaml:"passProps,omitempty"`

	Header  *int `yaml:"header,omitempty"`
	Content *int `yaml:"content,omitempty"`
	Footer  *int `yaml:"footer,omitempty"`

	Duration time.Duration `yaml:"duration,omitempty"` // for wait

	// Save stores the returned component id under this variable name so later
	// steps can refer to it as "$name".
	Save string `yaml:"save,omitempty"`
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	for i, st := range s.Steps {
		if !knownOps[st.Op] {
			return nil, fmt.Errorf("step %d: %w %q", i, ErrUnknownOp, st.Op)
		}
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// externalName converts a YAML scalar to an external component name.
func externalName(v any) (layout.ExternalName, error) {
	switch n := v.(type) {
	case string:
		return layout.ExternalByName(n), nil
	case int:
		return layout.ExternalByID(int64(n)), nil
	case int64:
		return layout.ExternalByID(n), nil
	case uint64:
		return layout.ExternalByID(int64(n)), nil
	default:
		return layout.ExternalName{}, fmt.Errorf("%w, got %T", ErrInvalidName, v)
	}
}
