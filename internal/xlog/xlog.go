// Copyright (C) 2022 NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package xlog is fixcat's logger: level-filtered output with the
// systemd-style priority prefixes the ambient stack of this module's
// teacher uses, so log lines read the same whether the process runs under
// a terminal or a service manager.
//
// https://www.freedesktop.org/software/systemd/man/sd-daemon.html
package xlog

import (
	"fmt"
	"io"
	"log"
	"os"
)

var logDateTime bool
var correlationID string

var (
	debugWriter io.Writer = os.Stderr
	infoWriter  io.Writer = os.Stderr
	warnWriter  io.Writer = os.Stderr
	errWriter   io.Writer = os.Stderr
)

const (
	debugPrefix = "<7>[DEBUG]   "
	infoPrefix  = "<6>[INFO]    "
	warnPrefix  = "<4>[WARNING] "
	errPrefix   = "<3>[ERROR]   "
)

var (
	debugLog = log.New(debugWriter, debugPrefix, 0)
	infoLog  = log.New(infoWriter, infoPrefix, 0)
	warnLog  = log.New(warnWriter, warnPrefix, log.Lshortfile)
	errLog   = log.New(errWriter, errPrefix, log.Llongfile)

	debugTimeLog = log.New(debugWriter, debugPrefix, log.LstdFlags)
	infoTimeLog  = log.New(infoWriter, infoPrefix, log.LstdFlags)
	warnTimeLog  = log.New(warnWriter, warnPrefix, log.LstdFlags|log.Lshortfile)
	errTimeLog   = log.New(errWriter, errPrefix, log.LstdFlags|log.Llongfile)
)

// SetLevel discards writers below lvl ("debug", "info", "warn", "err").
// Unknown values fall back to "debug".
func SetLevel(lvl string) {
	switch lvl {
	case "err", "fatal":
		warnWriter = io.Discard
		fallthrough
	case "warn":
		infoWriter = io.Discard
		fallthrough
	case "info":
		debugWriter = io.Discard
	case "debug":
	default:
		fmt.Fprintf(os.Stderr, "xlog: invalid log level %q, using debug\n", lvl)
		SetLevel("debug")
	}
}

// SetDateTime toggles whether log lines carry their own timestamp, for use
// under a process supervisor that does not already prepend one.
func SetDateTime(withDate bool) {
	logDateTime = withDate
}

// SetCorrelationID tags every subsequent log line with id, so a log sink
// fed by several concurrent invocations can tell them apart. An empty id
// disables tagging.
func SetCorrelationID(id string) {
	correlationID = id
}

func printStr(v ...interface{}) string {
	if correlationID == "" {
		return fmt.Sprint(v...)
	}
	return fmt.Sprintf("[%s] %s", correlationID, fmt.Sprint(v...))
}

func Debug(v ...interface{}) {
	if debugWriter == io.Discard {
		return
	}
	out := printStr(v...)
	if logDateTime {
		debugTimeLog.Output(2, out)
	} else {
		debugLog.Output(2, out)
	}
}

func Info(v ...interface{}) {
	if infoWriter == io.Discard {
		return
	}
	out := printStr(v...)
	if logDateTime {
		infoTimeLog.Output(2, out)
	} else {
		infoLog.Output(2, out)
	}
}

func Warn(v ...interface{}) {
	if warnWriter == io.Discard {
		return
	}
	out := printStr(v...)
	if logDateTime {
		warnTimeLog.Output(2, out)
	} else {
		warnLog.Output(2, out)
	}
}

func Error(v ...interface{}) {
	if errWriter == io.Discard {
		return
	}
	out := printStr(v...)
	if logDateTime {
		errTimeLog.Output(2, out)
	} else {
		errLog.Output(2, out)
	}
}

func Debugf(format string, v ...interface{}) { Debug(fmt.Sprintf(format, v...)) }
func Infof(format string, v ...interface{})  { Info(fmt.Sprintf(format, v...)) }
func Warnf(format string, v ...interface{})  { Warn(fmt.Sprintf(format, v...)) }
func Errorf(format string, v ...interface{}) { Error(fmt.Sprintf(format, v...)) }

// Fatalf logs an error and terminates the process; used at startup for
// unrecoverable configuration errors.
func Fatalf(format string, v ...interface{}) {
	Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}
