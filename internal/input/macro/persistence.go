package macro

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/ctext/internal/input/key"
)

const currentVersion = 1

// Export encodes every non-empty register as JSON.
func Export(r *Recorder) ([]byte, error) {
	data := []byte(`{}`)
	data, err := sjson.SetBytes(data, "version", currentVersion)
	if err != nil {
		return nil, err
	}
	if last := r.LastPlayed(); last != 0 {
		if data, err = sjson.SetBytes(data, "last", string(last)); err != nil {
			return nil, err
		}
	}
	macros := make(map[string]string)
	for _, name := range r.Registers() {
		macros[string(name)] = r.Get(name).String()
	}
	// A map avoids sjson reading digit register names as array indexes.
	if data, err = sjson.SetBytes(data, "macros", macros); err != nil {
		return nil, err
	}
	return data, nil
}

// Import loads registers from JSON produced by Export. Unless merge is
// set, registers not present in data are cleared.
func Import(r *Recorder, data []byte, merge bool) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("macros: invalid JSON")
	}
	doc := gjson.ParseBytes(data)
	if v := doc.Get("version").Int(); v > currentVersion {
		return fmt.Errorf("macros: unsupported version %d", v)
	}

	loaded := make(map[rune]key.Sequence)
	var err error
	doc.Get("macros").ForEach(func(k, v gjson.Result) bool {
		name := []rune(k.String())
		if len(name) != 1 || !IsValidRegister(name[0]) {
			err = fmt.Errorf("macros: %w: %q", ErrInvalidRegister, k.String())
			return false
		}
		seq, perr := key.ParseSequence(v.String())
		if perr != nil {
			err = fmt.Errorf("macros: register %c: %w", name[0], perr)
			return false
		}
		loaded[name[0]] = seq
		return true
	})
	if err != nil {
		return err
	}

	if !merge {
		for _, name := range r.Registers() {
			_ = r.Set(name, nil)
		}
	}
	for name, seq := range loaded {
		_ = r.Set(name, seq)
	}
	if last := []rune(doc.Get("last").String()); len(last) == 1 && IsValidRegister(last[0]) {
		r.SetLastPlayed(last[0])
	}
	return nil
}

// Save writes the registers to path, replacing it atomically.
func Save(r *Recorder, path string) error {
	data, err := Export(r)
	if err != nil {
		return fmt.Errorf("macros: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("macros: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("macros: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("macros: %w", err)
	}
	return nil
}

// Load replaces the registers with those saved at path. A missing file
// is not an error.
func Load(r *Recorder, path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("macros: %w", err)
	}
	return Import(r, data, false)
}
