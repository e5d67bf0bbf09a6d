package operation

// Result is the outcome of extracting one named image
type Result struct {
	Set        string
	Name       string
	Path       string
	Descriptor string
	Skipped    bool
	Err        error
}

// OK reports whether the image was handled without error
func (r Result) OK() bool {
	return r.Err == nil
}

// Reporter observes per-image outcomes as they complete
type Reporter interface {
	Report(r Result)
}

// ReporterFunc adapts a function to Reporter
type ReporterFunc func(Result)

func (f ReporterFunc) Report(r Result) {
	f(r)
}
