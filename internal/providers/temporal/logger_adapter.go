package temporal

import (
	"fmt"

	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
)

// ZapLoggerAdapter exposes a zap logger as a Temporal SDK logger
type ZapLoggerAdapter struct {
	logger *zap.Logger
}

var (
	_ log.Logger     = (*ZapLoggerAdapter)(nil)
	_ log.WithLogger = (*ZapLoggerAdapter)(nil)
)

// NewZapLoggerAdapter wraps logger, SDK caller frames are skipped
func NewZapLoggerAdapter(logger *zap.Logger) *ZapLoggerAdapter {
	return &ZapLoggerAdapter{logger: logger.WithOptions(zap.AddCallerSkip(1))}
}

func (z *ZapLoggerAdapter) Debug(msg string, keyvals ...interface{}) {
	z.logger.Debug(msg, fields(keyvals)...)
}

func (z *ZapLoggerAdapter) Info(msg string, keyvals ...interface{}) {
	z.logger.Info(msg, fields(keyvals)...)
}

func (z *ZapLoggerAdapter) Warn(msg string, keyvals ...interface{}) {
	z.logger.Warn(msg, fields(keyvals)...)
}

func (z *ZapLoggerAdapter) Error(msg string, keyvals ...interface{}) {
	z.logger.Error(msg, fields(keyvals)...)
}

// With returns an adapter that adds keyvals to every entry
func (z *ZapLoggerAdapter) With(keyvals ...interface{}) log.Logger {
	return &ZapLoggerAdapter{logger: z.logger.With(fields(keyvals)...)}
}

// fields turns Temporal's alternating key/value list into zap fields.
// A dangling key is kept with a nil value, non-string keys are formatted.
func fields(keyvals []interface{}) []zap.Field {
	out := make([]zap.Field, 0, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = fmt.Sprint(keyvals[i])
		}
		var val interface{}
		if i+1 < len(keyvals) {
			val = keyvals[i+1]
		}
		if err, ok := val.(error); ok {
			out = append(out, zap.NamedError(key, err))
			continue
		}
		out = append(out, zap.Any(key, val))
	}
	return out
}
