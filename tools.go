//go:build tools

// Tool dependencies invoked via go generate.
package main

import (
	_ "go.uber.org/mock/mockgen"
)
