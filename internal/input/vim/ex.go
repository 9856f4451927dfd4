package vim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/ctext/internal/engine/mark"
)

// ExecCmd runs a line entered on the command line: a search when it starts
// with / or ?, :set, or an ex command.
func (p *Processor) ExecCmd(line string) {
	switch {
	case strings.HasPrefix(line, "/"):
		p.Find(line[1:], true)
		return
	case strings.HasPrefix(line, "?"):
		p.Find(line[1:], false)
		return
	}

	line = strings.TrimLeft(line, ": \t")
	name, args, _ := strings.Cut(line, " ")
	if name == "set" || name == "se" {
		p.set(strings.Fields(args))
		return
	}

	p.ed.SetPos(p.buf.Pos())
	p.ed.SetFindPattern(p.FindPattern())
	_ = p.ed.Exec(line)
	if pat := p.ed.FindPattern(); pat != "" {
		p.SetFindPattern(pat)
	}
	p.ensureLine()
	p.clampCursor()
}

// Find searches for pattern and remembers the direction for n and N. An
// empty pattern repeats the last search.
func (p *Processor) Find(pattern string, forward bool) {
	p.searchForward = forward
	p.jump(pattern, forward)
}

// jump moves to the next match of pattern, leaving the return mark at the
// old position.
func (p *Processor) jump(pattern string, forward bool) {
	from := p.buf.Pos()
	var err error
	if forward {
		err = p.FindNext(pattern)
	} else {
		err = p.FindPrev(pattern)
	}
	if err != nil {
		p.Error(err.Error())
		return
	}
	p.marks.Set(mark.Return, from)
	p.ed.SetFindPattern(p.FindPattern())
}

// set runs :set. With no arguments every option is shown, name? shows one
// option and anything else assigns.
func (p *Processor) set(args []string) {
	if len(args) == 0 {
		p.Overlay(p.options.String())
		return
	}
	for _, arg := range args {
		if name, ok := strings.CutSuffix(arg, "?"); ok {
			v, found := p.options.Get(name)
			if !found {
				p.Errorf("Unknown option: %s", name)
				return
			}
			p.Status(canonicalOption(name) + "=" + v)
			continue
		}
		if err := p.SetOption(parseOption(arg)); err != nil {
			p.Error(err.Error())
			return
		}
	}
}

// SetOption assigns an option and applies it to the editor.
func (p *Processor) SetOption(name, value string) error {
	name = canonicalOption(name)
	switch name {
	case "ignorecase", "number":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %q", name, value)
		}
		if name == "ignorecase" {
			p.SetCaseSensitive(!on)
			p.ed.SetCaseSensitive(!on)
		} else {
			p.SetNumber(on)
		}
		value = boolOption(on)
	case "shiftwidth", "tabstop":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("invalid number for %s: %q", name, value)
		}
		if name == "shiftwidth" {
			p.edit.SetShiftWidth(n)
		} else {
			p.SetTabStop(n)
		}
	default:
		return fmt.Errorf("unknown option: %s", name)
	}
	p.options.Set(name, value)
	return nil
}

func boolOption(on bool) string {
	if on {
		return "1"
	}
	return "0"
}
