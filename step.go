package tabular

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action names a transformation step.
type Action string

const (
	ActionCount         Action = "count"
	ActionDemoteHeader  Action = "demoteHeader"
	ActionNavigate      Action = "navigate"
	ActionPromoteHeader Action = "promoteHeader"
	ActionTranspose     Action = "transpose"
)

var actions = []Action{ActionCount, ActionDemoteHeader, ActionNavigate, ActionPromoteHeader, ActionTranspose}

// NavigateType selects the navigate variant.
type NavigateType string

const (
	NavigateRowType  NavigateType = "row"
	NavigateColType  NavigateType = "col"
	NavigateCellType NavigateType = "cell"
)

var navigateTypes = []NavigateType{NavigateRowType, NavigateColType, NavigateCellType}

// CountType selects what [Count] counts.
type CountType string

const (
	CountRows  CountType = "rows"
	CountCols  CountType = "cols"
	CountCells CountType = "cells"
)

var countTypes = []CountType{CountRows, CountCols, CountCells}

// ParseAction parses an action name.
func ParseAction(s string) (Action, error) { return parseOption("action", s, actions) }

// ParseNavigateType parses a navigate type.
func ParseNavigateType(s string) (NavigateType, error) {
	return parseOption("navigateType", s, navigateTypes)
}

// ParseCountType parses a count type.
func ParseCountType(s string) (CountType, error) { return parseOption("countType", s, countTypes) }

func parseOption[T ~string](name, s string, valid []T) (T, error) {
	for _, v := range valid {
		if string(v) == s {
			return v, nil
		}
	}
	names := make([]string, len(valid))
	for i, v := range valid {
		names[i] = string(v)
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q is not supported, valid options are: %s",
		ErrInvalidOption, name, s, strings.Join(names, ", "))
}

// Step is one transformation of a pipeline, as configured by the host.
// Only the fields relevant to Action are read.
type Step struct {
	Action         Action       `json:"action" yaml:"action" mapstructure:"action"`
	NavigateType   NavigateType `json:"navigateType,omitempty" yaml:"navigateType,omitempty" mapstructure:"navigateType"`
	Row            int          `json:"row,omitempty" yaml:"row,omitempty" mapstructure:"row"`
	Col            string       `json:"col,omitempty" yaml:"col,omitempty" mapstructure:"col"`
	Expand         bool         `json:"expand,omitempty" yaml:"expand,omitempty" mapstructure:"expand"`
	LoopArray      bool         `json:"loopArray,omitempty" yaml:"loopArray,omitempty" mapstructure:"loopArray"`
	CountType      CountType    `json:"countType,omitempty" yaml:"countType,omitempty" mapstructure:"countType"`
	DestinationKey string       `json:"destinationKey,omitempty" yaml:"destinationKey,omitempty" mapstructure:"destinationKey"`
}

// Validate checks the enumerated options of s.
func (s Step) Validate() error {
	a, err := ParseAction(string(s.Action))
	if err != nil {
		return err
	}
	switch a {
	case ActionNavigate:
		_, err = ParseNavigateType(string(s.NavigateType))
	case ActionCount:
		_, err = ParseCountType(string(s.CountType))
	}
	return err
}

// Apply runs s over t and returns the new table. t is not modified.
func (s Step) Apply(t Table) (Table, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	switch s.Action {
	case ActionCount:
		return Count(t, s.CountType, s.DestinationKey)
	case ActionDemoteHeader:
		return DemoteHeader(t), nil
	case ActionNavigate:
		return Navigate(t, s.NavigateType, s.navigateOptions())
	case ActionPromoteHeader:
		return PromoteHeader(t), nil
	default:
		return Transpose(t), nil
	}
}

func (s Step) navigateOptions() NavigateOptions {
	return NavigateOptions{Row: s.Row, Col: s.Col, Expand: s.Expand, LoopArray: s.LoopArray}
}

// ParseSteps decodes a YAML (or JSON) list of steps and validates each one.
func ParseSteps(data []byte) ([]Step, error) {
	var steps []Step
	if err := yaml.Unmarshal(data, &steps); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOption, err)
	}
	for i, s := range steps {
		if err := s.Validate(); err != nil {
			return nil, &StepError{Index: i, Action: s.Action, Err: err}
		}
	}
	return steps, nil
}
