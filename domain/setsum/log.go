package setsum

import (
	"github.com/kaspanet/setsum/infrastructure/logger"
	"github.com/kaspanet/setsum/util/panics"
)

var log = logger.RegisterSubSystem("SSUM")
var spawn = panics.GoroutineWrapperFunc(log)
