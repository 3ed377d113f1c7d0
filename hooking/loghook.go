package hooking

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// A LogHook logs every generation stage.
type LogHook struct {
	logger *logrus.Logger
	level  logrus.Level
}

// NewLogHook creates a hook that logs to the given logger at the given
// level. A nil logger uses the standard logrus logger.
func NewLogHook(logger *logrus.Logger, level logrus.Level) *LogHook {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	return &LogHook{logger: logger, level: level}
}

// Func logs the stage with the item and detail as fields.
func (h *LogHook) Func(ctx HookCtx) {
	entry := h.logger.WithField("stage", ctx.Pos.Name)

	if f, ok := ctx.Item.(interface{ Fields() logrus.Fields }); ok {
		entry = entry.WithFields(f.Fields())
	} else if ctx.Item != nil {
		entry = entry.WithField("item", fmt.Sprint(ctx.Item))
	}

	if ctx.Detail != nil {
		entry = entry.WithField("detail", fmt.Sprint(ctx.Detail))
	}

	entry.Log(h.level, "memory generation")
}
