package sampler

// Reporter receives progress events from a run, in pipeline order.
type Reporter interface {
	Downloading(url string)
	Probed(duration float64)
	ClipStarted(clip Clip, total int)
	ClipFailed(clip Clip, err error)
	ClipTagFailed(clip Clip, err error)
	Finished(res Result, dir string)
	SourceRemoved(path string)
}

// nopReporter discards all events.
type nopReporter struct{}

func (nopReporter) Downloading(string)        {}
func (nopReporter) Probed(float64)            {}
func (nopReporter) ClipStarted(Clip, int)     {}
func (nopReporter) ClipFailed(Clip, error)    {}
func (nopReporter) ClipTagFailed(Clip, error) {}
func (nopReporter) Finished(Result, string)   {}
func (nopReporter) SourceRemoved(string)      {}

var _ Reporter = nopReporter{}
