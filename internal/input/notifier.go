package input

// Notifier carries the callbacks a processor uses to reach its host.
// Nil fields are skipped.
type Notifier struct {
	// EnterCmdLine asks the host to open a command line starting with
	// prefix, such as ":" or "/".
	EnterCmdLine func(prefix string)

	// Overlay shows a multi-line message over the text.
	Overlay func(msg string)

	// Status shows a one-line message.
	Status func(msg string)

	// Error reports a failed command or an unsupported key.
	Error func(msg string)

	ScrollTop    func()
	ScrollMiddle func()
	ScrollBottom func()

	// Overwrite reports a change of the overwrite flag.
	Overwrite func(on bool)

	// Number reports a change of the line number option.
	Number func(on bool)

	// Quit asks the host to exit. Force skips any unsaved-change check.
	Quit func(force bool)
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

func callString(fn func(string), s string) {
	if fn != nil {
		fn(s)
	}
}

func callBool(fn func(bool), b bool) {
	if fn != nil {
		fn(b)
	}
}
