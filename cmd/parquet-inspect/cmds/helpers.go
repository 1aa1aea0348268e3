package cmds

import "log"

func fatalf(format string, args ...any) {
	log.Fatalf(format, args...)
}
