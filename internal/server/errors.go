// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated is returned by NewServer when cfg enables neither
// transport or the matching handlers are missing.
var errNoServersAreCreated = errors.New("no servers are created")
