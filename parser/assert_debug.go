//go:build htmltok_debug

package parser

func init() {
	debugAssertions = true
}
