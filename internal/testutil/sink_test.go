package testutil

import (
	"github.com/mcoot/turnherald/internal/notify"
)

// Ensure RecordingSink implements Sink
var _ notify.Sink = (*RecordingSink)(nil)
