package sctp

import (
	"log/slog"

	"github.com/soypat/lsctp/internal"
)

type logger struct {
	log *slog.Logger
}

// SetLogger sets the logger used by the map. A nil logger disables logging.
func (m *TSNMap) SetLogger(log *slog.Logger) {
	m.logger = logger{log: log}
}

func (l *logger) logenabled(lvl slog.Level) bool {
	return internal.HeapAllocDebugging || internal.LogEnabled(l.log, lvl)
}

func (l *logger) logattrs(lvl slog.Level, msg string, attrs ...slog.Attr) {
	internal.LogAttrs(l.log, lvl, msg, attrs...)
}

func (l *logger) debug(msg string, attrs ...slog.Attr) {
	l.logattrs(slog.LevelDebug, msg, attrs...)
}

func (l *logger) trace(msg string, attrs ...slog.Attr) {
	l.logattrs(internal.LevelTrace, msg, attrs...)
}

func (l *logger) logerr(msg string, attrs ...slog.Attr) {
	l.logattrs(slog.LevelError, msg, attrs...)
}

func (m *TSNMap) traceState(msg string) {
	if m.logenabled(internal.LevelTrace) {
		m.trace(msg,
			slog.Uint64("cum", uint64(m.cumAck)),
			slog.Uint64("max", uint64(m.maxSeen)),
			slog.Int("len", m.bits.len()),
			slog.Uint64("dups", uint64(m.numDups)),
		)
	}
}
