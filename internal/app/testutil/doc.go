// Package testutil provides shared test doubles and fixtures.
//
//   - MockTranscriber: configurable api.Transcriber with per-file answers
//   - MockResultDAO: in-memory repository.ResultDAO
//   - fixtures: sample transcripts and helpers that lay out audio directories
//
// Example:
//
//	transcriber := testutil.NewMockTranscriber().
//	    WithResponse("a.wav", "one two three").
//	    WithError("b.wav", api.ErrUnintelligible)
//	dao := testutil.NewMockResultDAO().WithProcessedFile(filepath.Join(dir, "done.mav"))
package testutil
