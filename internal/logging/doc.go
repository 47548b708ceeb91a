// Package logging provides structured logging for ruleranger using slog.
//
// Loggers are created with [New] and travel through the call graph either as
// constructor arguments or inside a context ([NewContext], [FromContext]).
// Terminal output uses a colourised [Handler]; [FormatJSON] selects the
// standard JSON handler. When [Config.File] is set, records are additionally
// written as JSON to that writer through a [MultiHandler].
//
// # Levels
//
// The CLI maps its -v count onto levels with [LevelFromVerbosity]. [LevelTrace]
// sits below Debug and is used for per-rule tracing inside a session.
//
// # Testing
//
//	func TestSomething(t *testing.T) {
//		logger := logging.ForTest(t)
//		// logs appear in test output on failure
//	}
package logging
