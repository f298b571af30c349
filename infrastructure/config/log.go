package config

import (
	"github.com/globaltoken/globaltoken-core-wallet/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CNFG")
