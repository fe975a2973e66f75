package pipeline

// ProgressFunc is a callback for pipeline stage progress updates. The core
// is single-threaded and synchronous, so onProgress is called inline from
// the stage it reports on -- there is no background ticker or spinner.
type ProgressFunc func(stage string, detail string)

func noopProgress(string, string) {}
