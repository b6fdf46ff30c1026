package generator

// Request is one generation submitted from the form or the JSON API.
type Request struct {
	Article string
	Tone    Tone
	Model   string
}

// Result is what the model produced for a Request, ready for display.
type Result struct {
	Titles []string
	Raw    string
	Model  string
	Tone   Tone
}
