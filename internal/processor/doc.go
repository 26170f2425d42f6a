// Package processor connects the command line to the translator. It takes
// text from arguments or a pipe, prints the translation, and hands every
// completed translation to a Recorder.
package processor
