//go:build orthtreedebug

package orthtree

// debug turns internal contract violations into panics.
const debug = true
