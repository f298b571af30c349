package auxpow

import (
	"github.com/globaltoken/globaltoken-core-wallet/infrastructure/logger"
)

var log = logger.RegisterSubSystem("AUXP")
