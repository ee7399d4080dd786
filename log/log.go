package log

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

type Level logrus.Level

const (
	PanicLevel = Level(logrus.PanicLevel)
	FatalLevel = Level(logrus.FatalLevel)
	ErrorLevel = Level(logrus.ErrorLevel)
	WarnLevel  = Level(logrus.WarnLevel)
	InfoLevel  = Level(logrus.InfoLevel)
	DebugLevel = Level(logrus.DebugLevel)
	TraceLevel = Level(logrus.TraceLevel)
)

type Fields = logrus.Fields

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.Formatter = textFormatter()
}

func textFormatter() logrus.Formatter {
	return &logrus.TextFormatter{
		DisableLevelTruncation: true,
		PadLevelText:           true,
		TimestampFormat:        "2006/01/02 15:04:05",
		FullTimestamp:          true,
	}
}

func SetLevel(level Level) {
	Logger.SetLevel(logrus.Level(level))
}

// SetFormat switches the output between "text" (default) and "json".
func SetFormat(format string) error {
	switch format {
	case "", "text":
		Logger.SetFormatter(textFormatter())
	case "json":
		Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format %q", format)
	}
	return nil
}

func SetOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func WithFields(fields Fields) *logrus.Entry {
	return Logger.WithFields(fields)
}
func WithError(err error) *logrus.Entry {
	return Logger.WithError(err)
}

func Log(level Level, args ...any) {
	Logger.Logln(logrus.Level(level), args...)
}

func Debugf(fmt string, args ...any) {
	Logger.Debugf(fmt, args...)
}

func Infof(fmt string, args ...any) {
	Logger.Infof(fmt, args...)
}
func Info(args ...any) {
	Logger.Infoln(args...)
}

func Fatal(args ...any) {
	Logger.Fatalln(args...)
}
