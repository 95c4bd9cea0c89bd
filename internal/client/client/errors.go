package client

import (
	"fmt"

	"github.com/dmitrijs2005/savvysnip/internal/common"
)

// ErrUnavailable reports that the server could not be reached in time.
var ErrUnavailable = fmt.Errorf("server unavailable: %w", common.ErrNetwork)
