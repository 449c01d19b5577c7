// Package trackprep prepares aligned, cleaned return series for a benchmark
// index and a panel of assets, ready for downstream tracking-error modeling.
//
// The pipeline fetches raw price histories, outer-joins them onto one date
// axis, forward-fills small gaps, optionally resamples to weekly or monthly
// frequency, intersects the asset panel with the index, converts prices to
// simple returns, and re-intersects the results into a fully defined
// dataset. See [Prepare] for the sequencing and the tep command for the CLI
// surface.
package trackprep
