package compaction

import (
	"github.com/kaspanet/setsum/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CMPT")
