package utils

import (
	"io"

	"github.com/zainmh-10/CreateAILab/internal/logger"
)

// CloseLogged closes c and logs a failure under name. A nil c is ignored.
func CloseLogged(log logger.Logger, name string, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		log.Warn("failed to close", logger.String("resource", name), logger.Error(err))
	}
}
