package ed

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dshills/ctext/internal/engine/history"
	"github.com/dshills/ctext/internal/engine/register"
)

// dispatch runs the command at sc over range r.
func (e *Ed) dispatch(sc *scanner, r lineRange) error {
	c, _ := sc.next()

	switch c {
	case 'a', 'c', 'i':
		e.mode = ModeInput
		e.in = inputState{cmd: c, start: r.l1, end: r.l2}
	case 'd':
		e.doDelete(r.l1, r.l2)
	case 'e':
		if !sc.eof() && !sc.isSpace() {
			return newError(KindParse, "Not an editor command: e%s", sc.rest())
		}
		return e.doEdit(strings.TrimSpace(sc.rest()))
	case 'f':
		if name := strings.TrimSpace(sc.rest()); name != "" {
			e.buf.SetFileName(name)
		}
		e.output(e.buf.FileName())
	case 'g':
		sep, ok := sc.next()
		if !ok || sep == ' ' {
			return newError(KindParse, "Regular expression missing from global")
		}
		expr, _ := sc.readDelimited(sep)
		cmd := strings.TrimSpace(sc.rest())
		if cmd == "" {
			cmd = "p"
		}
		if r.n == 0 {
			r.l1, r.l2 = 1, e.buf.NumLines()
		}
		return e.doGlobal(r.l1, r.l2, expr, cmd)
	case 'j':
		e.doJoin(r.l1, r.l2)
	case 'k':
		name, ok := sc.next()
		if !ok {
			return newError(KindParse, "Mark name missing")
		}
		e.marks.Set(string(name), Point{Line: r.l1 - 1})
	case 'l':
		e.doPrint(r.l1, r.l2, false, true)
	case 'n':
		e.doPrint(r.l1, r.l2, true, false)
	case 'p':
		e.doPrint(r.l1, r.l2, false, false)
	case 'm', 't':
		dest, err := e.parseDest(sc)
		if err != nil {
			return err
		}
		if c == 'm' {
			return e.doMove(r.l1, r.l2, dest)
		}
		e.doCopy(r.l1, r.l2, dest)
	case 'q', 'Q':
		e.doQuit(c == 'Q' || sc.is('!'))
	case 'r':
		return e.doRead(r.l1, strings.TrimSpace(sc.rest()))
	case 's':
		return e.parseSubstitute(sc, r)
	case 'u':
		if err := e.undo.Undo(); err != nil && !errors.Is(err, history.ErrNothingToUndo) {
			return err
		}
		e.syncPos()
	case 'w':
		quit := false
		if sc.is('q') {
			sc.skip()
			quit = true
		}
		if err := e.doWrite(strings.TrimSpace(sc.rest())); err != nil {
			return err
		}
		if quit {
			e.doQuit(false)
		}
	case 'x':
		if e.regs.PasteAfter(register.Unnamed, Point{Line: r.l1 - 1}) {
			e.syncPos()
		}
	case 'y':
		e.regs.YankLines(register.Unnamed, r.l1-1, r.l2-r.l1+1)
	case '!':
		return e.doShell(r, sc.rest())
	case '#':
	case '=':
		e.output(fmt.Sprint(r.l1))
	case '/', '?':
		expr, _ := sc.readDelimited(c)
		return e.doFindInRange(r.l1, r.l2, expr, c == '/')
	case '@':
		e.output(sc.rest())
	case 'E', 'G', 'H', 'h', 'P', 'v', 'V', 'W', 'z':
		return newError(KindUnimplemented, "%c: Unimplemented", c)
	case 0:
		if !e.ex {
			e.doPrint(r.l1, r.l2, false, false)
		}
		if r.n == 0 {
			e.setPos(r.l2, r.c2)
		} else {
			e.setPos(r.l2-1, r.c2)
		}
	default:
		return newError(KindParse, "Not an editor command: %c", c)
	}
	return nil
}

// parseDest reads the destination address of m and t. Zero means before
// the first line; no address means the current line.
func (e *Ed) parseDest(sc *scanner) (int, error) {
	sc.skipSpace()
	dest := e.cur
	if sc.isDigit() {
		dest = offsets(sc, sc.readInt())
	} else {
		a, ok, err := e.parseAddress(sc)
		if err != nil {
			return 0, err
		}
		if ok {
			dest = a.line
		}
	}
	if dest < 0 || dest > e.buf.NumLines() {
		return 0, newError(KindAddress, "Invalid destination: %d", dest)
	}
	return dest, nil
}

func (e *Ed) doPrint(l1, l2 int, numbered, eol bool) {
	n := e.buf.NumLines()
	last := 0
	for i := l1; i <= l2 && i <= n; i++ {
		s := e.buf.Line(i - 1)
		if numbered {
			s = fmt.Sprintf("%d\t%s", i, s)
		}
		if eol {
			s += "$"
		}
		e.output(s)
		last = i
	}
	if last > 0 {
		e.setPos(last-1, 0)
	}
}

// doDelete removes lines l1..l2 into the unnamed register.
func (e *Ed) doDelete(l1, l2 int) {
	n := min(l2, e.buf.NumLines()) - l1 + 1
	if n <= 0 {
		return
	}
	e.regs.YankLines(register.Unnamed, l1-1, n)

	e.buf.StartGroup()
	e.edit.DeleteLines(l1-1, n)
	e.setPos(min(l1-1, e.buf.NumLines()-1), 0)
	e.buf.EndGroup()
}

// doEdit replaces the buffer with a file or command output.
func (e *Ed) doEdit(name string) error {
	if name == "" {
		name = e.buf.FileName()
	}
	if name == "" {
		return newError(KindIO, "No current filename")
	}
	lines, err := e.source(name)
	if err != nil {
		return err
	}

	e.buf.StartGroup()
	e.buf.RemoveAllLines()
	for i, text := range lines {
		e.buf.InsertLine(i, text)
	}
	e.setPos(e.buf.NumLines()-1, 0)
	e.buf.EndGroup()

	if !strings.HasPrefix(name, "!") {
		e.buf.SetFileName(name)
	}
	return nil
}

// doRead inserts a file or command output after line l.
func (e *Ed) doRead(l int, name string) error {
	if name == "" {
		name = e.buf.FileName()
	}
	if name == "" {
		return newError(KindIO, "No current filename")
	}
	lines, err := e.source(name)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	at := min(l, e.buf.NumLines())
	e.buf.StartGroup()
	for k, text := range lines {
		e.buf.InsertLine(at+k, text)
	}
	e.setPos(at+len(lines)-1, 0)
	e.buf.EndGroup()
	return nil
}

func (e *Ed) doWrite(name string) error {
	if strings.HasPrefix(name, "!") {
		return newError(KindUnimplemented, "w!: Unimplemented")
	}
	if name == "" {
		name = e.buf.FileName()
	}
	if name == "" {
		return newError(KindIO, "No current filename")
	}
	if err := e.buf.Write(name); err != nil {
		return wrapIO(err, "cannot write %s", name)
	}
	if e.buf.FileName() == "" {
		e.buf.SetFileName(name)
	}
	return nil
}

func (e *Ed) doQuit(force bool) {
	e.quit = true
	if e.deps.OnQuit != nil {
		e.deps.OnQuit(force)
	}
}

// doGlobal applies p or d to every line in l1..l2 matching expr. Deletion
// runs from the bottom up so earlier indices stay valid.
func (e *Ed) doGlobal(l1, l2 int, expr, cmd string) error {
	if cmd != "p" && cmd != "d" {
		return newError(KindParse, "Not an editor command: %s", cmd)
	}
	pat, err := e.pattern(expr)
	if err != nil {
		return err
	}
	l2 = min(l2, e.buf.NumLines())

	if cmd == "p" {
		for i := l1; i <= l2; i++ {
			if line := e.buf.Line(i - 1); pat.MatchLine(line) {
				e.output(line)
			}
		}
		return nil
	}

	e.buf.StartGroup()
	for i := l2; i >= l1; i-- {
		if pat.MatchLine(e.buf.Line(i - 1)) {
			_ = e.buf.DeleteLine(i - 1)
		}
	}
	e.setPos(min(l1-1, e.buf.NumLines()-1), 0)
	e.buf.EndGroup()
	return nil
}

func (e *Ed) doJoin(l1, l2 int) {
	l2 = min(l2, e.buf.NumLines())
	if l2 <= l1 {
		return
	}
	e.buf.StartGroup()
	for i := l1; i < l2; i++ {
		e.edit.JoinLine(l1 - 1)
	}
	e.setPos(l1-1, 0)
	e.buf.EndGroup()
}

// doMove moves lines l1..l2 after line dest. A destination inside the
// range is an error; one adjacent to it is a no-op.
func (e *Ed) doMove(l1, l2, dest int) error {
	l2 = min(l2, e.buf.NumLines())
	n := l2 - l1 + 1
	if n <= 0 {
		return nil
	}
	if dest >= l1 && dest < l2 {
		return newError(KindAddress, "Invalid destination: %d", dest)
	}
	if dest == l2 || dest == l1-1 {
		e.setPos(l2-1, 0)
		return nil
	}

	e.buf.StartGroup()
	defer e.buf.EndGroup()

	if dest < l1 {
		for k := 0; k < n; k++ {
			e.edit.MoveLine(l1-1+k, dest+k)
		}
		e.setPos(dest+n-1, 0)
		return nil
	}
	for k := 0; k < n; k++ {
		e.edit.MoveLine(l1-1, dest-1)
	}
	e.setPos(dest-1, 0)
	return nil
}

// doCopy inserts a copy of lines l1..l2 after line dest.
func (e *Ed) doCopy(l1, l2, dest int) {
	l2 = min(l2, e.buf.NumLines())
	var lines []string
	for i := l1; i <= l2; i++ {
		lines = append(lines, e.buf.Line(i-1))
	}
	if len(lines) == 0 {
		return
	}

	e.buf.StartGroup()
	for k, text := range lines {
		e.buf.InsertLine(dest+k, text)
	}
	e.setPos(dest+len(lines)-1, 0)
	e.buf.EndGroup()
}

// doShell runs cmdline. With an address the range is piped through it and
// replaced by its output; without one the output is printed.
func (e *Ed) doShell(r lineRange, cmdline string) error {
	cmdline = strings.TrimSpace(cmdline)
	if cmdline == "" {
		return newError(KindParse, "Missing command")
	}
	if r.n == 0 {
		lines, err := e.runShell(cmdline, "")
		if err != nil {
			return err
		}
		for _, line := range lines {
			e.output(line)
		}
		e.output("!")
		return nil
	}

	l2 := min(r.l2, e.buf.NumLines())
	var src []string
	for i := r.l1; i <= l2; i++ {
		src = append(src, e.buf.Line(i-1))
	}
	out, err := e.runShell(cmdline, strings.Join(src, "\n"))
	if err != nil {
		return err
	}

	e.buf.StartGroup()
	e.edit.DeleteLines(r.l1-1, len(src))
	for k, text := range out {
		e.buf.InsertLine(r.l1-1+k, text)
	}
	e.setPos(r.l1-1, 0)
	e.buf.EndGroup()
	return nil
}

// doFindInRange moves to the first (or last) match of expr within l1..l2.
func (e *Ed) doFindInRange(l1, l2 int, expr string, forward bool) error {
	pat, err := e.pattern(expr)
	if err != nil {
		return err
	}
	l2 = min(l2, e.buf.NumLines())
	for k := 0; k <= l2-l1; k++ {
		i := l1 + k
		if !forward {
			i = l2 - k
		}
		if pat.MatchLine(e.buf.Line(i - 1)) {
			e.setPos(i-1, 0)
			return nil
		}
	}
	return newError(KindAddress, "Pattern not found: %s", e.findPattern)
}

// parseSubstitute reads /re/repl/[g] and applies it to the range.
func (e *Ed) parseSubstitute(sc *scanner, r lineRange) error {
	sep, ok := sc.next()
	if !ok || sep == ' ' {
		return newError(KindParse, "Missing pattern delimiter")
	}
	expr, _ := sc.readDelimited(sep)
	repl, _ := sc.readDelimited(sep)

	global := false
	if !sc.eof() {
		mod, _ := sc.next()
		if mod != 'g' {
			return newError(KindParse, "Invalid substitute flag: %c", mod)
		}
		global = true
	}
	sc.skipSpace()
	if !sc.eof() {
		return newError(KindParse, "Trailing characters: %s", sc.rest())
	}

	pat, err := e.pattern(expr)
	if err != nil {
		return err
	}
	e.doSubstitute(r.l1, r.l2, pat.Compiled(), expandTemplate(repl), global)
	return nil
}

func (e *Ed) doSubstitute(l1, l2 int, re *regexp.Regexp, tmpl string, global bool) {
	l2 = min(l2, e.buf.NumLines())
	last := -1

	e.buf.StartGroup()
	for i := l1; i <= l2; i++ {
		line := e.buf.Line(i - 1)
		if s, ok := substitute(re, line, tmpl, global); ok {
			_ = e.buf.SetLine(i-1, s)
			last = i - 1
		}
	}
	if last >= 0 {
		e.setPos(last, 0)
	}
	e.buf.EndGroup()
}

// substitute replaces the first match of re in line, or every match when
// global is set.
func substitute(re *regexp.Regexp, line, tmpl string, global bool) (string, bool) {
	if global {
		if !re.MatchString(line) {
			return line, false
		}
		return re.ReplaceAllString(line, tmpl), true
	}
	loc := re.FindStringSubmatchIndex(line)
	if loc == nil {
		return line, false
	}
	dst := re.ExpandString(nil, tmpl, line, loc)
	return line[:loc[0]] + string(dst) + line[loc[1]:], true
}

// expandTemplate converts an ed replacement (& and \1..\9) into a
// regexp template.
func expandTemplate(repl string) string {
	var sb strings.Builder
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		switch {
		case c == '\\' && i+1 < len(repl):
			i++
			switch n := repl[i]; {
			case n >= '0' && n <= '9':
				sb.WriteString("${" + string(n) + "}")
			case n == '$':
				sb.WriteString("$$")
			default:
				sb.WriteByte(n)
			}
		case c == '&':
			sb.WriteString("${0}")
		case c == '$':
			sb.WriteString("$$")
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}
