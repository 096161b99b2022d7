package utils

import (
	"log"
	"os"
)

// InitLogger builds the application logger. All request and error logs go
// through this instance so output can be redirected in one place.
func InitLogger(output ...*os.File) *log.Logger {
	out := os.Stdout
	if len(output) > 0 && output[0] != nil {
		out = output[0]
	}
	return log.New(out, "[LMS Admin] ", log.LstdFlags|log.LUTC)
}
