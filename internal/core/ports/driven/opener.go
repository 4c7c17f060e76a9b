package driven

// FileOpener opens files with the platform default handler.
type FileOpener interface {
	// Open starts the handler for path without waiting for it.
	// A nil error only means the handler was started.
	Open(path string) error
}
