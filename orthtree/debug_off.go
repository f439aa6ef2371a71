//go:build !orthtreedebug

package orthtree

const debug = false
