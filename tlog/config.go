package tlog

// Format selects how log lines are encoded
type Format string

// Format values
const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// Color selects whether text logs use colored levels
type Color string

// Color values. ColorAuto colors the log only when it goes to a terminal.
const (
	ColorAuto Color = ""
	ColorYes  Color = "yes"
	ColorNo   Color = "no"
)

// Config describes the logger of a constmapper command, as set by the log
// flags of package run
type Config struct {
	Name    string // logger name, usually the command name
	Format  Format
	Color   Color
	Verbose bool   // also log table construction and retries
	Output  string // file path, "stdout" or "stderr"; stderr if empty
}
