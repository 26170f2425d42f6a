// Package translation translates text word by word. Input is split on
// whitespace, every token is sent to a remote provider as its own request,
// and the per-token answers are joined back together in input order.
// Requests are dispatched in batches of at most ten concurrent calls.
package translation
