package collector

// termAggregator is the counting core shared by the pre-scan and the
// query-driven scan. The pipeline field doubles as the variant tag:
// nil selects the static fast path with no per-value work, so the hot
// loop pays for filtering only when a stage is configured.
type termAggregator struct {
	counts   map[string]int
	missing  int
	pipeline *valuePipeline
}

// onValue seeds term with a zero count without touching an existing one.
// Only the all-terms pre-scan calls it; the pipeline never runs here.
func (a *termAggregator) onValue(term string) {
	if _, ok := a.counts[term]; !ok {
		a.counts[term] = 0
	}
}

// onDocValue counts one value of one document, creating the term at 1
// when absent. With a pipeline configured the value is filtered and
// possibly substituted first.
func (a *termAggregator) onDocValue(docID uint32, term string) {
	if a.pipeline != nil {
		out, ok := a.pipeline.accept(docID, term)
		if !ok {
			return
		}
		term = out
	}
	a.counts[term]++
}

// onMissing records a document that yielded no raw value across all
// bound fields. Called at most once per document.
func (a *termAggregator) onMissing(docID uint32) {
	a.missing++
}
