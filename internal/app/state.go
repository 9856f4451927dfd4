package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/ctext/internal/engine/register"
	"github.com/dshills/ctext/internal/input/macro"
)

const (
	stateVersion   = 1
	lockRetryDelay = 20 * time.Millisecond
)

type stateFragment struct {
	Text string `json:"text"`
	Line bool   `json:"line,omitempty"`
}

type statePoint struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

// SaveState writes registers, macros, the find pattern, the command
// history and the marks of the current file to the configured state file.
// Marks of other files already in the state file are kept. Nothing is
// written when no state file is configured.
func (s *Session) SaveState(ctx context.Context) error {
	path := s.cfg.StateFile
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &OperationError{Op: "save state", Target: path, Err: err}
	}

	unlock, err := lockState(ctx, path, false)
	if err != nil {
		return err
	}
	defer unlock()

	prev, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return &OperationError{Op: "save state", Target: path, Err: err}
	}
	data, err := s.encodeState(prev)
	if err != nil {
		return &OperationError{Op: "save state", Target: path, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return &OperationError{Op: "save state", Target: path, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &OperationError{Op: "save state", Target: path, Err: err}
	}
	s.logger.Debug("state saved to %s", path)
	return nil
}

// LoadState restores what SaveState wrote. A missing state file is not an
// error. Call it after Open so the marks of the opened file are found.
func (s *Session) LoadState(ctx context.Context) error {
	path := s.cfg.StateFile
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	unlock, err := lockState(ctx, path, true)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	unlock()
	if err != nil {
		return &OperationError{Op: "load state", Target: path, Err: err}
	}
	if err := s.decodeState(data); err != nil {
		return &OperationError{Op: "load state", Target: path, Err: err}
	}
	s.logger.Debug("state loaded from %s", path)
	return nil
}

// lockState takes the lock file next to path, shared for reading.
func lockState(ctx context.Context, path string, shared bool) (func(), error) {
	fl := flock.New(path + ".lock")
	var (
		locked bool
		err    error
	)
	if shared {
		locked, err = fl.TryRLockContext(ctx, lockRetryDelay)
	} else {
		locked, err = fl.TryLockContext(ctx, lockRetryDelay)
	}
	if err != nil || !locked {
		return nil, &OperationError{Op: "lock", Target: path, Err: errors.Join(ErrStateLocked, err)}
	}
	return func() { _ = fl.Unlock() }, nil
}

func (s *Session) encodeState(prev []byte) ([]byte, error) {
	data := []byte(`{}`)
	data, err := sjson.SetBytes(data, "version", stateVersion)
	if err != nil {
		return nil, err
	}
	if pat := s.core.FindPattern(); pat != "" {
		if data, err = sjson.SetBytes(data, "find", pat); err != nil {
			return nil, err
		}
	}

	// Maps keep digit register names from being read as array indexes.
	regs := make(map[string][]stateFragment)
	for _, name := range s.regs.Names() {
		var frags []stateFragment
		for _, f := range s.regs.Fragments(name) {
			frags = append(frags, stateFragment{Text: f.Text, Line: f.LineUnit})
		}
		regs[string(name)] = frags
	}
	if data, err = sjson.SetBytes(data, "registers", regs); err != nil {
		return nil, err
	}

	macros, err := macro.Export(s.macros)
	if err != nil {
		return nil, err
	}
	if data, err = sjson.SetRawBytes(data, "macros", macros); err != nil {
		return nil, err
	}

	if data, err = sjson.SetBytes(data, "history", s.history.Recent(0)); err != nil {
		return nil, err
	}

	files := make(map[string]any)
	if gjson.ValidBytes(prev) {
		gjson.GetBytes(prev, "files").ForEach(func(k, v gjson.Result) bool {
			files[k.String()] = v.Value()
			return true
		})
	}
	if file := s.stateKey(); file != "" {
		marks := make(map[string]statePoint)
		for _, name := range s.marks.Names() {
			if p, ok := s.marks.Get(name).Get(); ok {
				marks[name] = statePoint{Line: p.Line, Col: p.Col}
			}
		}
		if len(marks) > 0 {
			files[file] = map[string]any{"marks": marks}
		} else {
			delete(files, file)
		}
	}
	return sjson.SetBytes(data, "files", files)
}

func (s *Session) decodeState(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if v := doc.Get("version").Int(); v > stateVersion {
		return fmt.Errorf("%w: %d", ErrStateVersion, v)
	}

	if pat := doc.Get("find").String(); pat != "" {
		s.core.SetFindPattern(pat)
		s.ed.SetFindPattern(pat)
	}

	var unnamed []register.Fragment
	var names []string
	regs := make(map[string][]register.Fragment)
	doc.Get("registers").ForEach(func(k, v gjson.Result) bool {
		name := k.String()
		if len(name) != 1 || !register.IsValid(name[0]) {
			s.logger.Warn("state: skipping register %q", name)
			return true
		}
		var frags []register.Fragment
		for _, f := range v.Array() {
			frags = append(frags, register.Fragment{Text: f.Get("text").String(), LineUnit: f.Get("line").Bool()})
		}
		if name[0] == register.Unnamed {
			unnamed = frags
			return true
		}
		regs[name] = frags
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	for _, name := range names {
		s.regs.Set(name[0], regs[name])
	}
	// Named registers mirror into the unnamed one, so it goes last.
	if unnamed != nil {
		s.regs.Set(register.Unnamed, unnamed)
	}

	if m := doc.Get("macros"); m.Exists() {
		if err := macro.Import(s.macros, []byte(m.Raw), false); err != nil {
			return err
		}
	}

	var hist []string
	for _, h := range doc.Get("history").Array() {
		hist = append(hist, h.String())
	}
	s.history.Load(hist)

	file := s.stateKey()
	if file == "" {
		return nil
	}
	doc.Get("files").ForEach(func(k, v gjson.Result) bool {
		if k.String() != file {
			return true
		}
		v.Get("marks").ForEach(func(name, p gjson.Result) bool {
			line, col := int(p.Get("line").Int()), int(p.Get("col").Int())
			if line >= 0 && line < s.buf.NumLines() {
				s.marks.Set(name.String(), Point{Line: line, Col: col})
			}
			return true
		})
		return false
	})
	return nil
}

// stateKey names the current file in the state file.
func (s *Session) stateKey() string {
	name := s.buf.FileName()
	if name == "" {
		return ""
	}
	if abs, err := filepath.Abs(name); err == nil {
		return abs
	}
	return name
}
