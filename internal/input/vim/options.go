package vim

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// optionAliases maps short option names to their full names.
var optionAliases = map[string]string{
	"ic": "ignorecase",
	"nu": "number",
	"sw": "shiftwidth",
	"ts": "tabstop",
}

// Options holds the values set with :set. Values are kept as strings;
// boolean options are "1" or "0".
type Options struct {
	values map[string]string
}

// NewOptions returns an empty option set.
func NewOptions() *Options {
	return &Options{values: make(map[string]string)}
}

// parseOption splits one :set argument into a name and a value. "name=value"
// sets a value, "noname" sets "0" and a bare "name" sets "1".
func parseOption(arg string) (name, value string) {
	if n, v, ok := strings.Cut(arg, "="); ok {
		return canonicalOption(n), v
	}
	if n, ok := strings.CutPrefix(arg, "no"); ok && !isKnownOption(arg) {
		return canonicalOption(n), "0"
	}
	return canonicalOption(arg), "1"
}

// Set stores value under name.
func (o *Options) Set(name, value string) {
	o.values[canonicalOption(name)] = value
}

// Get returns the value of name.
func (o *Options) Get(name string) (string, bool) {
	v, ok := o.values[canonicalOption(name)]
	return v, ok
}

// Bool reports whether name is set to a true value.
func (o *Options) Bool(name string) bool {
	v, _ := o.Get(name)
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Int returns the integer value of name.
func (o *Options) Int(name string) (int, error) {
	v, ok := o.Get(name)
	if !ok {
		return 0, fmt.Errorf("unknown option: %s", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid number for %s: %q", name, v)
	}
	return n, nil
}

// String lists every option as name=value, one per line, sorted.
func (o *Options) String() string {
	names := make([]string, 0, len(o.values))
	for name := range o.values {
		names = append(names, name)
	}
	slices.Sort(names)
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(name + "=" + o.values[name])
	}
	return sb.String()
}

func canonicalOption(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if full, ok := optionAliases[name]; ok {
		return full
	}
	return name
}

func isKnownOption(name string) bool {
	name = strings.ToLower(name)
	if _, ok := optionAliases[name]; ok {
		return true
	}
	for _, full := range optionAliases {
		if full == name {
			return true
		}
	}
	return false
}
