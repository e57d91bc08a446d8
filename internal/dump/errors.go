// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package dump

import (
	"fmt"
)

// tableError decorates a failure with the table that was being dumped.
type tableError struct {
	Table string
	Step  string
	Err   error
}

func (e *tableError) Error() string {
	return fmt.Sprintf("%s for table %q: %s", e.Step, e.Table, e.Err)
}

func (e *tableError) Unwrap() error {
	return e.Err
}
