package encode

import (
	"github.com/fatih/color"
)

// Colors maps edit-script roles to sprint functions.
type Colors struct {
	Add     func(string) string
	Delete  func(string) string
	Replace func(string) string
	Patch   func(string) string
	Value   func(string) string
}

func NewColors() *Colors {
	return &Colors{
		Add:     sprint(color.New(color.FgGreen)),
		Delete:  sprint(color.New(color.FgRed)),
		Replace: sprint(color.New(color.FgYellow)),
		Patch:   sprint(color.New(color.FgCyan)),
		Value:   sprint(color.New(color.Faint)),
	}
}

func NoColors() *Colors {
	id := func(s string) string { return s }
	return &Colors{Add: id, Delete: id, Replace: id, Patch: id, Value: id}
}

func sprint(c *color.Color) func(string) string {
	f := c.SprintFunc()
	return func(s string) string {
		return f(s)
	}
}
