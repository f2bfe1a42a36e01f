package tui

// StartedMsg announces the publish target once files are listed.
type StartedMsg struct {
	Prefix string
	Files  int
	Bytes  int64
}

// UploadMsg reports one finished upload, successful or not.
type UploadMsg struct {
	Key  string
	Size int64
	Err  error
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error that ends the run.
type ErrMsg struct{ Err error }

// DoneMsg signals that the publish is complete.
type DoneMsg struct {
	Latest string
}
