//go:build tools

package client

import _ "github.com/matryer/moq"
