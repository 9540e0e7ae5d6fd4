// Package logger configura el logging estructurado del API sobre zerolog.
// Todo el proceso comparte una sola instancia creada en el arranque e
// inyectada por constructor; el nivel y el formato salen de la configuración.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config parámetros de arranque del logger.
type Config struct {
	Env   string // development escribe consola legible, cualquier otro valor JSON
	Level string // trace | debug | info | warn | error (info si viene vacío)
}

// Logger envoltorio fino sobre zerolog. Mantiene la API fluida de eventos
// (l.Info().Str(...).Msg(...)) y permite pasar el logger como dependencia.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger del proceso y lo fija también como logger global
// de zerolog, para que las librerías que escriben por log.Logger salgan por
// el mismo destino con el mismo nivel.
func New(cfg Config) *Logger {
	var w io.Writer = os.Stdout
	if cfg.Env == "development" {
		w = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zl := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
	log.Logger = zl

	return &Logger{zl: zl}
}

// parseLevel traduce el nivel configurado; un valor vacío o desconocido cae a info.
func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// With abre un sublogger con campos fijos (p. ej. el componente que loguea).
func (l *Logger) With() zerolog.Context { return l.zl.With() }

// Zerolog expone la instancia interna para integraciones que piden zerolog.Logger.
func (l *Logger) Zerolog() zerolog.Logger { return l.zl }
