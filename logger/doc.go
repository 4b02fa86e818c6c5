/*
Package logger provides logging functionality to a trellis app by defining the required behavior in [Logger]
and providing an implementation of it with [TrellisLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [TrellisLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*TrellisLogger.Warn], [*TrellisLogger.Error], and [*TrellisLogger.Fatal] produce messages.

# TrellisLogger

Log messages emitted by [TrellisLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example:

	2026/04/28 15:55:21 [ERROR] trellis/http/pipeline/response.go:143 'unhandled failure' log_context: {"error":"transport error: unexpected EOF"}

The log context is a JSON-encoded [LogContext].
It carries data inessential to the message proper,
but provides a fuller picture of the request at the time of logging.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.
*/
package logger
